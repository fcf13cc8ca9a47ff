package event

import (
	"context"
	"time"
)

// Repository defines the operations for retrieving events and their
// key/value metadata.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	// ListEligibleEvents returns published events with reminders enabled that
	// could plausibly need a reminder on asOf. The pre-filter is coarse.
	ListEligibleEvents(ctx context.Context, asOf time.Time) ([]*Event, error)

	MetaStore
}

// MetaStore exposes the opaque per-event key/value pairs.
// GetMeta returns ok=false when the key is absent.
type MetaStore interface {
	GetMeta(ctx context.Context, eventID int64, key string) (value string, ok bool, err error)
	SetMeta(ctx context.Context, eventID int64, key, value string) error
	DeleteMeta(ctx context.Context, eventID int64, key string) error
}
