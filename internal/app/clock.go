package app

import (
	"time"

	"event_reminder/internal/domain/reminder"
)

// Clock is the scheduler's only source of "today".
type Clock interface {
	Now() time.Time
	Today() reminder.Date
	Location() *time.Location
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time { return time.Now().In(c.loc) }

func (c *SystemClock) Today() reminder.Date { return reminder.DateOf(c.Now()) }

func (c *SystemClock) Location() *time.Location { return c.loc }
