package reminder

import (
	"time"

	"github.com/teambition/rrule-go"

	"event_reminder/internal/domain/event"
)

// occurrenceSearchYears bounds the yearly rule; Feb 29 needs at most 8.
const occurrenceSearchYears = 9

// ResolveInYear maps an event onto a concrete date anchored to year.
// One-time events ignore year. ok is false when the authoritative field is
// missing or unparseable, or when a recurring month-day does not exist in year.
func ResolveInYear(ev *event.Event, year int) (Date, bool) {
	if ev == nil {
		return Date{}, false
	}
	if !ev.IsRecurring {
		return resolveOneTime(ev)
	}
	md, err := ParseMonthDay(ev.MonthDay)
	if err != nil {
		return Date{}, false
	}
	return md.InYear(year)
}

// Resolve maps an event onto the occurrence relevant on today. A recurring
// event resolves to its next occurrence on or after today, rolling into the
// following year once this year's date has passed.
func Resolve(ev *event.Event, today Date) (Date, bool) {
	if ev == nil {
		return Date{}, false
	}
	if !ev.IsRecurring {
		return resolveOneTime(ev)
	}
	md, err := ParseMonthDay(ev.MonthDay)
	if err != nil {
		return Date{}, false
	}
	return nextOccurrence(md, today)
}

func resolveOneTime(ev *event.Event) (Date, bool) {
	d, err := ParseDate(ev.StartDate)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

func nextOccurrence(md MonthDay, today Date) (Date, bool) {
	dtstart := NewDate(today.Year, time.January, 1).utc()
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    dtstart,
		Bymonth:    []int{int(md.Month)},
		Bymonthday: []int{md.Day},
		Until:      dtstart.AddDate(occurrenceSearchYears, 0, 0),
	})
	if err != nil {
		return Date{}, false
	}
	next := r.After(today.utc(), true)
	if next.IsZero() {
		return Date{}, false
	}
	return DateOf(next), true
}
