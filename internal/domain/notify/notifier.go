package notify

import "context"

// Attachment is an in-memory file attached to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is the rendered reminder delivered to every recipient.
type Message struct {
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// RecipientFailure records a delivery failure for a single address.
type RecipientFailure struct {
	Recipient string
	Err       error
}

// Result reports per-recipient delivery outcomes of a single Send call.
type Result struct {
	Delivered []string
	Failures  []RecipientFailure
}

// OK reports whether at least one recipient accepted the message.
func (r Result) OK() bool { return len(r.Delivered) > 0 }

// Notifier delivers a message to each recipient independently. A failure for
// one recipient never prevents attempts for the rest.
type Notifier interface {
	Send(ctx context.Context, recipients []string, msg Message) Result
}
