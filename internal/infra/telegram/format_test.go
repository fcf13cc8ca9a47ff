package telegram

import (
	"errors"
	"strings"
	"testing"

	"event_reminder/internal/app"
	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/notify"
	"event_reminder/internal/domain/reminder"
)

func TestParseEventIDArg(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int64
		wantErr bool
	}{
		{name: "valid", args: []string{"42"}, want: 42},
		{name: "missing", args: nil, wantErr: true},
		{name: "too many", args: []string{"1", "2"}, wantErr: true},
		{name: "not a number", args: []string{"abc"}, wantErr: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "negative", args: []string{"-5"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventIDArg(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEventIDArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("parseEventIDArg(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseSendCallback(t *testing.T) {
	if id, ok := parseSendCallback("send_17"); !ok || id != 17 {
		t.Fatalf("parseSendCallback(send_17) = %d, %v", id, ok)
	}
	for _, data := range []string{"", "send_", "send_x", "ans_yes_3", "send_-1"} {
		if _, ok := parseSendCallback(data); ok {
			t.Errorf("parseSendCallback(%q) should be rejected", data)
		}
	}
}

func TestFormatPassReport(t *testing.T) {
	r := &app.PassReport{
		RunID:            "0123456789abcdef",
		Date:             reminder.NewDate(2026, 6, 10),
		EventsConsidered: 4,
		EventsSkipped:    1,
		RemindersSent:    2,
		RemindersFailed:  1,
		Errors:           3,
	}
	got := formatPassReport(r)
	for _, want := range []string{"2026-06-10", "run 01234567", "considered: 4", "skipped: 1", "sent: 2", "failed: 1", "Errors: 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatPassReport() = %q, missing %q", got, want)
		}
	}
}

func TestFormatManualResultListsFailures(t *testing.T) {
	r := &app.ManualResult{
		EventID:    9,
		Occurrence: reminder.NewDate(2026, 6, 13),
		Label:      "3 days before the event",
		Delivered:  []string{"a@example.com"},
		Failures:   []notify.RecipientFailure{{Recipient: "b@example.com", Err: errors.New("550")}},
	}
	got := formatManualResult(r)
	if !strings.Contains(got, "sent to 1 recipient(s)") || !strings.Contains(got, "Failed: b@example.com (550)") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestFormatUpcoming(t *testing.T) {
	if got := formatUpcoming(nil); !strings.Contains(got, "No upcoming events") {
		t.Fatalf("unexpected empty text %q", got)
	}

	week := reminder.Interval7Days
	items := []app.UpcomingEvent{
		{Event: &event.Event{ID: 1, Title: "Gala"}, Occurrence: reminder.NewDate(2026, 6, 20), DaysUntil: 10, NextInterval: &week},
		{Event: &event.Event{ID: 2, Title: "Fair"}, Occurrence: reminder.NewDate(2026, 6, 10), DaysUntil: 0},
	}
	got := formatUpcoming(items)
	if !strings.Contains(got, "#1 Gala - 2026-06-20 (in 10 day(s), next: a week before the event)") {
		t.Errorf("missing first line in %q", got)
	}
	if !strings.Contains(got, "#2 Fair - 2026-06-10 (in 0 day(s), no reminders left)") {
		t.Errorf("missing second line in %q", got)
	}
}
