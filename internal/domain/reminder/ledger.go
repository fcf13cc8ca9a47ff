package reminder

import (
	"context"
	"time"
)

// Ledger records which (event, interval, occurrence) reminders were delivered.
// Unmarking is an operator action and is not part of this interface.
type Ledger interface {
	HasSent(ctx context.Context, eventID int64, iv Interval, occurrence Date) (bool, error)
	MarkSent(ctx context.Context, eventID int64, iv Interval, occurrence Date, when time.Time) error
}
