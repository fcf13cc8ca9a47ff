package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/reminder"
	idb "event_reminder/internal/infra/database"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")

// LedgerResetter clears the markers of one occurrence.
type LedgerResetter interface {
	Reset(ctx context.Context, eventID int64, occurrence reminder.Date) error
}

// UpcomingEvent is an eligible event with its resolved occurrence.
type UpcomingEvent struct {
	Event        *event.Event
	Occurrence   reminder.Date
	DaysUntil    int
	NextInterval *reminder.Interval // nil when no interval is still ahead
}

type AdminService struct {
	eventRepo       event.Repository
	reminders       ReminderService
	resetter        LedgerResetter
	clock           Clock
	adminTelegramID int64
}

func NewAdminService(er event.Repository, rs ReminderService, resetter LedgerResetter, clock Clock, adminID int64) *AdminService {
	return &AdminService{
		eventRepo:       er,
		reminders:       rs,
		resetter:        resetter,
		clock:           clock,
		adminTelegramID: adminID,
	}
}

func (s *AdminService) authorize(performingAdminID int64) error {
	if s.adminTelegramID == 0 || performingAdminID != s.adminTelegramID {
		return ErrAdminNotAuthorized
	}
	return nil
}

// ForceSend handles an operator's request for an immediate reminder.
func (s *AdminService) ForceSend(ctx context.Context, performingAdminID int64, eventID int64) (*ManualResult, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	return s.reminders.ForceSend(ctx, eventID)
}

// RunPass runs the daily pass out of schedule. Already-sent reminders are not
// repeated.
func (s *AdminService) RunPass(ctx context.Context, performingAdminID int64) (*PassReport, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}
	return s.reminders.RunDailyPass(ctx)
}

// ResetReminders re-arms every interval of the event's current occurrence and
// returns that occurrence.
func (s *AdminService) ResetReminders(ctx context.Context, performingAdminID int64, eventID int64) (reminder.Date, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return reminder.Date{}, err
	}

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, idb.ErrEventNotFound) {
			return reminder.Date{}, fmt.Errorf("%w: %d", ErrEventNotFound, eventID)
		}
		return reminder.Date{}, fmt.Errorf("failed to get event for reset: %w", err)
	}

	occurrence, ok := reminder.Resolve(ev, s.clock.Today())
	if !ok {
		return reminder.Date{}, ErrNoDate
	}
	if err := s.resetter.Reset(ctx, ev.ID, occurrence); err != nil {
		return reminder.Date{}, fmt.Errorf("failed to reset reminders: %w", err)
	}
	return occurrence, nil
}

// ListUpcoming returns eligible events ordered by their next occurrence.
// Events without a resolvable date are left out.
func (s *AdminService) ListUpcoming(ctx context.Context, performingAdminID int64) ([]UpcomingEvent, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}

	today := s.clock.Today()
	events, err := s.eventRepo.ListEligibleEvents(ctx, today.In(s.clock.Location()))
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible events: %w", err)
	}

	upcoming := make([]UpcomingEvent, 0, len(events))
	for _, ev := range events {
		occurrence, ok := reminder.Resolve(ev, today)
		if !ok {
			continue
		}
		item := UpcomingEvent{
			Event:      ev,
			Occurrence: occurrence,
			DaysUntil:  reminder.DaysBetween(today, occurrence),
		}
		for _, iv := range reminder.Intervals() {
			if !reminder.TriggerDate(occurrence, iv).Before(today) {
				iv := iv
				item.NextInterval = &iv
				break
			}
		}
		upcoming = append(upcoming, item)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Occurrence.Before(upcoming[j].Occurrence)
	})
	return upcoming, nil
}
