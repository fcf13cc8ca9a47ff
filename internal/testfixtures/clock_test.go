package testfixtures

import (
	"testing"
	"time"

	"event_reminder/internal/domain/reminder"
)

func TestClockAdvanceAndToday(t *testing.T) {
	c := At(2026, time.June, 10, 23, 30)
	if got := c.Today(); got != reminder.NewDate(2026, time.June, 10) {
		t.Fatalf("Today() = %s", got)
	}

	c.Advance(time.Hour)
	if got := c.Today(); got != reminder.NewDate(2026, time.June, 11) {
		t.Fatalf("Today() after an hour = %s", got)
	}

	c.AdvanceDays(365)
	if got := c.Today(); got != reminder.NewDate(2027, time.June, 11) {
		t.Fatalf("Today() after a year = %s", got)
	}
}

func TestClockLocationFollowsStart(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	c := NewClock(time.Date(2026, time.January, 1, 1, 0, 0, 0, loc))
	if c.Location() != loc {
		t.Fatalf("unexpected location %v", c.Location())
	}
	if got := c.Today(); got != reminder.NewDate(2026, time.January, 1) {
		t.Fatalf("Today() = %s", got)
	}
}
