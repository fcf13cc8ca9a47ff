// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"event_reminder/internal/app"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter sends operator messages through gopkg.in/telebot.v3 and
// implements app.PassReporter.
type TelebotAdapter struct {
	bot         *telebot.Bot
	adminChatID int64
}

func NewTelebotAdapter(b *telebot.Bot, adminChatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, adminChatID: adminChatID}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// ReportPass posts the pass summary to the admin chat. Passes that sent and
// failed nothing are not reported.
func (tba *TelebotAdapter) ReportPass(_ context.Context, report *app.PassReport) error {
	if report.RemindersSent == 0 && report.RemindersFailed == 0 && report.Errors == 0 {
		return nil
	}
	if err := tba.SendMessage(tba.adminChatID, formatPassReport(report), nil); err != nil {
		return fmt.Errorf("failed to send pass report: %w", err)
	}
	return nil
}
