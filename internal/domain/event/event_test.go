package event

import (
	"reflect"
	"testing"
)

func TestValidRecipients(t *testing.T) {
	ev := &Event{RecipientEmails: []string{
		" alice@example.com ",
		"not-an-email",
		"",
		"Bob@Example.com",
		"bob@example.com",
		"carol@example.org",
	}}
	want := []string{"alice@example.com", "Bob@Example.com", "carol@example.org"}
	if got := ev.ValidRecipients(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ValidRecipients() = %v, want %v", got, want)
	}
}

func TestValidRecipientsEmpty(t *testing.T) {
	for _, list := range [][]string{nil, {}, {"nobody", "  "}} {
		ev := &Event{RecipientEmails: list}
		if got := ev.ValidRecipients(); len(got) != 0 {
			t.Errorf("ValidRecipients(%v) = %v, want none", list, got)
		}
	}
}

func TestParseRecipientList(t *testing.T) {
	raw := "a@example.com\r\nb@example.com, c@example.com\n\n  d@example.com  "
	want := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}
	if got := ParseRecipientList(raw); !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseRecipientList() = %v, want %v", got, want)
	}
}
