package app

import (
	"context"
	"fmt"
	"time"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/reminder"
)

// MetaLedger stores sent markers as event meta entries.
type MetaLedger struct {
	meta event.MetaStore
}

func NewMetaLedger(meta event.MetaStore) *MetaLedger {
	return &MetaLedger{meta: meta}
}

func (l *MetaLedger) HasSent(ctx context.Context, eventID int64, iv reminder.Interval, occurrence reminder.Date) (bool, error) {
	value, ok, err := l.meta.GetMeta(ctx, eventID, reminder.MarkerKey(iv, occurrence))
	if err != nil {
		return false, fmt.Errorf("failed to read marker %s for event %d: %w", iv.Key, eventID, err)
	}
	return ok && value != "", nil
}

func (l *MetaLedger) MarkSent(ctx context.Context, eventID int64, iv reminder.Interval, occurrence reminder.Date, when time.Time) error {
	if err := l.meta.SetMeta(ctx, eventID, reminder.MarkerKey(iv, occurrence), when.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write marker %s for event %d: %w", iv.Key, eventID, err)
	}
	return nil
}

// Reset removes every interval marker of one occurrence so that its reminders
// fire again. Only operator surfaces call this.
func (l *MetaLedger) Reset(ctx context.Context, eventID int64, occurrence reminder.Date) error {
	for _, iv := range reminder.Intervals() {
		if err := l.meta.DeleteMeta(ctx, eventID, reminder.MarkerKey(iv, occurrence)); err != nil {
			return fmt.Errorf("failed to delete marker %s for event %d: %w", iv.Key, eventID, err)
		}
	}
	return nil
}
