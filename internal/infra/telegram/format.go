package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"event_reminder/internal/app"
)

const sendCallbackPrefix = "send_"

func formatPassReport(r *app.PassReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reminder pass %s (run %s)\n", r.Date, shortRunID(r.RunID))
	fmt.Fprintf(&b, "Events considered: %d, skipped: %d\n", r.EventsConsidered, r.EventsSkipped)
	fmt.Fprintf(&b, "Reminders sent: %d, failed: %d\n", r.RemindersSent, r.RemindersFailed)
	if r.Errors > 0 {
		fmt.Fprintf(&b, "Errors: %d (see logs)\n", r.Errors)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatManualResult(r *app.ManualResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event %d (%s, %s): sent to %d recipient(s).", r.EventID, r.Occurrence, r.Label, len(r.Delivered))
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "\nFailed: %s (%v)", f.Recipient, f.Err)
	}
	return b.String()
}

func formatUpcoming(items []app.UpcomingEvent) string {
	if len(items) == 0 {
		return "No upcoming events with reminders enabled."
	}
	var b strings.Builder
	b.WriteString("Upcoming events:\n")
	for _, it := range items {
		next := "no reminders left"
		if it.NextInterval != nil {
			next = "next: " + it.NextInterval.Label
		}
		fmt.Fprintf(&b, "#%d %s - %s (in %d day(s), %s)\n", it.Event.ID, it.Event.Title, it.Occurrence, it.DaysUntil, next)
	}
	return strings.TrimRight(b.String(), "\n")
}

func parseEventIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one event ID, got %d arguments", len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event ID %q", args[0])
	}
	return id, nil
}

func parseSendCallback(data string) (int64, bool) {
	if !strings.HasPrefix(data, sendCallbackPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, sendCallbackPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
