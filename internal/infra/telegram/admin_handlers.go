package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"event_reminder/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const unauthorizedText = "Error: you are not allowed to run this command."

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, admin service, and the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/reminder_send", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reminder_send",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedText)
		}

		// Expected format: /reminder_send <EventID>
		eventID, err := parseEventIDArg(c.Args())
		if err != nil {
			handlerLogger.WithError(err).Warn("Invalid command format")
			return c.Send("Invalid command format. Use: /reminder_send <EventID>")
		}
		handlerLogger = handlerLogger.WithField("event_id", eventID)

		result, err := adminService.ForceSend(ctx, c.Sender().ID, eventID)
		if err != nil {
			return c.Send(describeSendError(handlerLogger, eventID, result, err))
		}
		handlerLogger.WithField("delivered", len(result.Delivered)).Info("Manual reminder sent")
		return c.Send(formatManualResult(result))
	})

	b.Handle("/reminder_run", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reminder_run",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedText)
		}

		report, err := adminService.RunPass(ctx, c.Sender().ID)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrPassInProgress):
				logWithError.Info("Pass already running")
				return c.Send("A reminder pass is already running. Try again later.")
			default:
				logWithError.Error("Failed to run reminder pass")
				return c.Send(fmt.Sprintf("Reminder pass failed: %s", err.Error()))
			}
		}
		return c.Send(formatPassReport(report))
	})

	b.Handle("/reminder_reset", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reminder_reset",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedText)
		}

		// Expected format: /reminder_reset <EventID>
		eventID, err := parseEventIDArg(c.Args())
		if err != nil {
			handlerLogger.WithError(err).Warn("Invalid command format")
			return c.Send("Invalid command format. Use: /reminder_reset <EventID>")
		}
		handlerLogger = handlerLogger.WithField("event_id", eventID)

		occurrence, err := adminService.ResetReminders(ctx, c.Sender().ID, eventID)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrAdminNotAuthorized):
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send(unauthorizedText)
			case errors.Is(err, app.ErrEventNotFound):
				logWithError.Warn("Event not found")
				return c.Send(fmt.Sprintf("Event %d not found.", eventID))
			case errors.Is(err, app.ErrNoDate):
				logWithError.Warn("Event has no date")
				return c.Send(fmt.Sprintf("Event %d has no date set.", eventID))
			default:
				logWithError.Error("Failed to reset reminders")
				return c.Send(fmt.Sprintf("Failed to reset reminders: %s", err.Error()))
			}
		}

		handlerLogger.WithField("occurrence", occurrence.String()).Info("Reminders reset")
		return c.Send(fmt.Sprintf("Reminders for event %d on %s will be sent again.", eventID, occurrence))
	})

	b.Handle("/events", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/events",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(unauthorizedText)
		}

		items, err := adminService.ListUpcoming(ctx, c.Sender().ID)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to list upcoming events")
			return c.Send(fmt.Sprintf("Failed to list events: %s", err.Error()))
		}
		handlerLogger.WithField("events_count", len(items)).Info("Listed upcoming events")

		if len(items) == 0 {
			return c.Send(formatUpcoming(items))
		}
		markup := &telebot.ReplyMarkup{}
		for _, it := range items {
			markup.InlineKeyboard = append(markup.InlineKeyboard, []telebot.InlineButton{{
				Text: "Send now: #" + strconv.FormatInt(it.Event.ID, 10),
				Data: sendCallbackPrefix + strconv.FormatInt(it.Event.ID, 10),
			}})
		}
		return c.Send(formatUpcoming(items), markup)
	})
}

func describeSendError(l *logrus.Entry, eventID int64, result *app.ManualResult, err error) string {
	logWithError := l.WithError(err)
	switch {
	case errors.Is(err, app.ErrAdminNotAuthorized):
		logWithError.Warn("Admin not authorized (service level)")
		return unauthorizedText
	case errors.Is(err, app.ErrEventNotFound):
		logWithError.Warn("Event not found")
		return fmt.Sprintf("Event %d not found.", eventID)
	case errors.Is(err, app.ErrNoRecipients):
		logWithError.Warn("Event has no recipients")
		return fmt.Sprintf("Event %d has no valid recipient emails.", eventID)
	case errors.Is(err, app.ErrNoDate):
		logWithError.Warn("Event has no date")
		return fmt.Sprintf("Event %d has no date set.", eventID)
	case errors.Is(err, app.ErrSendFailed) && result != nil:
		logWithError.Error("Manual reminder failed for every recipient")
		return "Sending failed for every recipient.\n" + formatManualResult(result)
	default:
		logWithError.Error("Failed to send manual reminder")
		return fmt.Sprintf("Failed to send reminder: %s", err.Error())
	}
}
