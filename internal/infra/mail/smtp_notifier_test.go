package mail

import (
	"context"
	"errors"
	"io"
	"testing"

	"event_reminder/internal/domain/notify"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	failFor map[string]bool
	sent    []*gomail.Message
}

func (f *fakeDialer) DialAndSend(msgs ...*gomail.Message) error {
	for _, m := range msgs {
		to := m.GetHeader("To")
		if len(to) == 1 && f.failFor[to[0]] {
			return errors.New("550 mailbox unavailable")
		}
		f.sent = append(f.sent, m)
	}
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestSendContinuesAfterRecipientFailure(t *testing.T) {
	d := &fakeDialer{failFor: map[string]bool{"bad@example.com": true}}
	n := newSMTPNotifier(d, "from@example.com", rate.NewLimiter(rate.Inf, 1), testLogger())

	msg := notify.Message{
		Subject:     "[Reminder] Gala - a week before the event",
		HTMLBody:    "<h2>Gala</h2>",
		Attachments: []notify.Attachment{{Filename: "event.ics", ContentType: "text/calendar", Data: []byte("BEGIN:VCALENDAR")}},
	}
	res := n.Send(context.Background(), []string{"a@example.com", "bad@example.com", "c@example.com"}, msg)

	if len(res.Delivered) != 2 || res.Delivered[0] != "a@example.com" || res.Delivered[1] != "c@example.com" {
		t.Fatalf("unexpected delivered list %v", res.Delivered)
	}
	if len(res.Failures) != 1 || res.Failures[0].Recipient != "bad@example.com" {
		t.Fatalf("unexpected failures %v", res.Failures)
	}
	if !res.OK() {
		t.Fatal("partial delivery should be OK")
	}
	if len(d.sent) != 2 {
		t.Fatalf("expected 2 messages sent, got %d", len(d.sent))
	}
	m := d.sent[0]
	if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != msg.Subject {
		t.Fatalf("unexpected subject header %v", got)
	}
	if got := m.GetHeader("From"); len(got) != 1 || got[0] != "from@example.com" {
		t.Fatalf("unexpected from header %v", got)
	}
}

func TestSendStopsDeliveringOnCancelledContext(t *testing.T) {
	d := &fakeDialer{}
	n := newSMTPNotifier(d, "from@example.com", rate.NewLimiter(rate.Limit(0.001), 1), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := n.Send(ctx, []string{"a@example.com", "b@example.com"}, notify.Message{Subject: "s"})

	if res.OK() {
		t.Fatalf("expected no deliveries, got %v", res.Delivered)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("expected both recipients to fail, got %v", res.Failures)
	}
}
