package testfixtures

import (
	"sync"
	"time"

	"event_reminder/internal/domain/reminder"
)

// Clock provides a controllable time source for tests. It satisfies app.Clock.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to the supplied time. The clock's
// location is the location of start.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

// At is shorthand for a clock at the given wall time in UTC.
func At(year int, month time.Month, day, hour, min int) *Clock {
	return NewClock(time.Date(year, month, day, hour, min, 0, 0, time.UTC))
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Clock) Today() reminder.Date {
	return reminder.DateOf(c.Now())
}

func (c *Clock) Location() *time.Location {
	return c.Now().Location()
}

// Set updates the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by the provided duration and returns the
// updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// AdvanceDays moves the clock by whole calendar days.
func (c *Clock) AdvanceDays(n int) time.Time {
	c.mu.Lock()
	c.current = c.current.AddDate(0, 0, n)
	updated := c.current
	c.mu.Unlock()
	return updated
}
