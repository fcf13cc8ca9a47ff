package mail

import (
	"context"
	"fmt"
	"io"

	"event_reminder/internal/domain/notify"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

type dialSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier delivers each reminder as a separate mail per recipient,
// paced by a token-bucket limiter.
type SMTPNotifier struct {
	dialer  dialSender
	from    string
	limiter *rate.Limiter
	logger  *logrus.Entry
}

func NewSMTPNotifier(host string, port int, username, password, from string, ratePerSec int, logger *logrus.Entry) *SMTPNotifier {
	return newSMTPNotifier(
		gomail.NewDialer(host, port, username, password),
		from,
		rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		logger,
	)
}

func newSMTPNotifier(d dialSender, from string, limiter *rate.Limiter, logger *logrus.Entry) *SMTPNotifier {
	return &SMTPNotifier{dialer: d, from: from, limiter: limiter, logger: logger}
}

// Send attempts every recipient; failures are collected, not returned early.
func (n *SMTPNotifier) Send(ctx context.Context, recipients []string, msg notify.Message) notify.Result {
	var result notify.Result
	for _, to := range recipients {
		if err := n.limiter.Wait(ctx); err != nil {
			result.Failures = append(result.Failures, notify.RecipientFailure{Recipient: to, Err: fmt.Errorf("rate limiter: %w", err)})
			continue
		}
		if err := n.dialer.DialAndSend(n.buildMessage(to, msg)); err != nil {
			result.Failures = append(result.Failures, notify.RecipientFailure{Recipient: to, Err: err})
			continue
		}
		n.logger.WithField("recipient", to).Debug("Mail sent")
		result.Delivered = append(result.Delivered, to)
	}
	return result
}

func (n *SMTPNotifier) buildMessage(to string, msg notify.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}
	return m
}
