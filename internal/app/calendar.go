package app

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/reminder"
)

const calendarProductID = "-//event-reminder//reminders//EN"

// buildCalendar renders a single all-day VEVENT for the occurrence so that
// recipients can add it to their calendar.
func buildCalendar(ev *event.Event, occurrence reminder.Date, loc *time.Location, now time.Time) ([]byte, error) {
	if occurrence.IsZero() {
		return nil, fmt.Errorf("calendar for event %d: occurrence not set", ev.ID)
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	uid := fmt.Sprintf("event-%d-%s@event-reminder", ev.ID, occurrence)
	ve := cal.AddEvent(uid)
	ve.SetDtStampTime(now.UTC())
	ve.SetSummary(ev.Title)
	ve.SetAllDayStartAt(occurrence.In(loc))
	ve.SetAllDayEndAt(occurrence.AddDays(1).In(loc))
	if ev.IsRecurring {
		ve.AddRrule("FREQ=YEARLY")
	}
	return []byte(cal.Serialize()), nil
}
