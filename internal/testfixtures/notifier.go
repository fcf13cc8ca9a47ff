package testfixtures

import (
	"context"
	"sync"

	"event_reminder/internal/domain/notify"
)

// SentMessage is one recorded Send call.
type SentMessage struct {
	Recipients []string
	Message    notify.Message
}

// Notifier records every Send call. Recipients listed in Fail are reported as
// failed; FailAll fails everyone.
type Notifier struct {
	mu      sync.Mutex
	Sent    []SentMessage
	Fail    map[string]bool
	FailAll bool
}

func NewNotifier() *Notifier {
	return &Notifier{Fail: make(map[string]bool)}
}

func (n *Notifier) Send(_ context.Context, recipients []string, msg notify.Message) notify.Result {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, SentMessage{Recipients: append([]string(nil), recipients...), Message: msg})

	var res notify.Result
	for _, r := range recipients {
		if n.FailAll || n.Fail[r] {
			res.Failures = append(res.Failures, notify.RecipientFailure{Recipient: r, Err: ErrInjected})
			continue
		}
		res.Delivered = append(res.Delivered, r)
	}
	return res
}

// Count returns the number of Send calls so far.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Sent)
}

// Subjects returns the subjects of every recorded message in order.
func (n *Notifier) Subjects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.Sent))
	for _, s := range n.Sent {
		out = append(out, s.Message.Subject)
	}
	return out
}
