package testfixtures

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"event_reminder/internal/domain/event"
	idb "event_reminder/internal/infra/database"
)

// EventStore is an in-memory event.Repository with the same eligibility
// pre-filter as the Postgres repository.
type EventStore struct {
	mu          sync.Mutex
	events      map[int64]*event.Event
	meta        map[int64]map[string]string
	HorizonDays int

	// Injected failures.
	GetMetaErr error
	SetMetaErr error
	ListErr    error
}

func NewEventStore(events ...*event.Event) *EventStore {
	s := &EventStore{
		events:      make(map[int64]*event.Event),
		meta:        make(map[int64]map[string]string),
		HorizonDays: 31,
	}
	for _, ev := range events {
		s.Put(ev)
	}
	return s
}

// Put inserts or replaces an event. A zero status is stored as published.
func (s *EventStore) Put(ev *event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.Status == "" {
		ev.Status = event.StatusPublish
	}
	s.events[ev.ID] = ev
}

func (s *EventStore) GetByID(_ context.Context, id int64) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || ev.Status != event.StatusPublish {
		return nil, idb.ErrEventNotFound
	}
	return ev, nil
}

func (s *EventStore) ListEligibleEvents(_ context.Context, asOf time.Time) ([]*event.Event, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from := asOf.Format("2006-01-02")
	until := asOf.AddDate(0, 0, s.HorizonDays+1).Format("2006-01-02")

	out := make([]*event.Event, 0)
	for _, ev := range s.events {
		if ev.Status != event.StatusPublish || !ev.RemindersEnabled {
			continue
		}
		if !ev.IsRecurring && (ev.StartDate < from || ev.StartDate >= until) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *EventStore) GetMeta(_ context.Context, eventID int64, key string) (string, bool, error) {
	if s.GetMetaErr != nil {
		return "", false, s.GetMetaErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.meta[eventID][key]
	return v, ok, nil
}

func (s *EventStore) SetMeta(_ context.Context, eventID int64, key, value string) error {
	if s.SetMetaErr != nil {
		return s.SetMetaErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta[eventID] == nil {
		s.meta[eventID] = make(map[string]string)
	}
	s.meta[eventID][key] = value
	return nil
}

func (s *EventStore) DeleteMeta(_ context.Context, eventID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.meta[eventID], key)
	return nil
}

// MetaKeys lists the stored keys of one event in sorted order.
func (s *EventStore) MetaKeys(eventID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.meta[eventID]))
	for k := range s.meta[eventID] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var ErrInjected = errors.New("injected failure")
