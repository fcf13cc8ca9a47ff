// internal/infra/telegram/callback_handlers.go
package telegram

import (
	"context"
	"fmt"

	"event_reminder/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterCallbackHandlers handles the "Send now" buttons attached to /events.
func RegisterCallbackHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, baseLogger *logrus.Entry) {
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data

		eventID, ok := parseSendCallback(data)
		if !ok {
			c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "callback_send",
			"sender_id": c.Sender().ID,
			"event_id":  eventID,
		})

		result, err := adminService.ForceSend(ctx, c.Sender().ID, eventID)
		if err != nil {
			text := describeSendError(handlerLogger, eventID, result, err)
			if respErr := c.Respond(&telebot.CallbackResponse{Text: "Not sent."}); respErr != nil {
				handlerLogger.WithError(respErr).Warn("Failed to answer callback")
			}
			return c.Send(text)
		}

		handlerLogger.WithField("delivered", len(result.Delivered)).Info("Manual reminder sent from button")
		if err := c.Respond(&telebot.CallbackResponse{Text: "Reminder sent."}); err != nil {
			handlerLogger.WithError(err).Warn("Failed to answer callback")
		}
		return c.Send(formatManualResult(result))
	})
}
