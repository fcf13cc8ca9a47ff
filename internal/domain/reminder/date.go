package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone. Arithmetic on Date is
// calendar arithmetic, so daylight-saving transitions never shift a day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool { return d == Date{} }

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time { return d.In(time.UTC) }

func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.utc().Before(o.utc()) }

func (d Date) After(o Date) bool { return d.utc().After(o.utc()) }

func (d Date) String() string { return d.utc().Format(dateLayout) }

// DaysBetween returns to minus from in whole calendar days.
func DaysBetween(from, to Date) int {
	return int(to.utc().Sub(from.utc()).Hours() / 24)
}

var startLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseStart parses a stored start date. Both date-only and date+time values
// are accepted; hasClock reports whether a time of day was present. The result
// carries the wall clock as written, in UTC.
func ParseStart(raw string) (t time.Time, hasClock bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("empty start date")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, false, nil
	}
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Keep the written wall clock; the zone of the record is the
			// configured one, not whatever offset it was serialized with.
			y, m, d := t.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized start date %q", raw)
}

// ParseDate parses a stored start date into its calendar day.
func ParseDate(raw string) (Date, error) {
	t, _, err := ParseStart(raw)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// MonthDay is the anchor of an annually recurring event.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses "MM-DD". The day must exist in that month of a leap
// year, so "02-29" is accepted and "04-31" is not.
func ParseMonthDay(raw string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("month-day %q: want MM-DD", raw)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return MonthDay{}, fmt.Errorf("month-day %q: invalid month", raw)
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d < 1 || d > daysIn(time.Month(m), 2024) {
		return MonthDay{}, fmt.Errorf("month-day %q: invalid day", raw)
	}
	return MonthDay{Month: time.Month(m), Day: d}, nil
}

// InYear returns the occurrence in year, or false when the day does not exist
// that year (Feb 29 in a common year).
func (md MonthDay) InYear(year int) (Date, bool) {
	if md.Day > daysIn(md.Month, year) {
		return Date{}, false
	}
	return Date{Year: year, Month: md.Month, Day: md.Day}, true
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
