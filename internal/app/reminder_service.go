// internal/app/reminder_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/domain/notify"
	"event_reminder/internal/domain/reminder"
	idb "event_reminder/internal/infra/database"
)

// ReminderService defines the operations of the reminder engine.
type ReminderService interface {
	// RunDailyPass evaluates every eligible event against today and sends the
	// reminders whose trigger day it is, once per interval and occurrence.
	RunDailyPass(ctx context.Context) (*PassReport, error)
	// ForceSend sends an immediate reminder for one event, bypassing the ledger.
	ForceSend(ctx context.Context, eventID int64) (*ManualResult, error)
}

// PassLock serializes daily passes across processes. Acquire returns
// ErrPassInProgress when another holder owns key.
type PassLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// PassReporter receives a summary after each completed pass.
type PassReporter interface {
	ReportPass(ctx context.Context, report *PassReport) error
}

// PassReport summarizes one daily pass.
type PassReport struct {
	RunID            string
	Date             reminder.Date
	StartedAt        time.Time
	FinishedAt       time.Time
	EventsConsidered int
	EventsSkipped    int
	RemindersSent    int
	RemindersFailed  int
	Errors           int
}

// ManualResult describes a forced send.
type ManualResult struct {
	EventID    int64
	Occurrence reminder.Date
	Days       int
	Label      string
	Delivered  []string
	Failures   []notify.RecipientFailure
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	eventRepo event.Repository
	ledger    reminder.Ledger
	notifier  notify.Notifier
	composer  *MessageComposer
	clock     Clock
	lock      PassLock
	reporter  PassReporter
	logger    *logrus.Entry

	passMu sync.Mutex
}

func NewReminderServiceImpl(
	er event.Repository,
	ledger reminder.Ledger,
	notifier notify.Notifier,
	composer *MessageComposer,
	clock Clock,
	lock PassLock, // nil means in-process serialization only
	reporter PassReporter, // optional
	logger *logrus.Entry,
) *ReminderServiceImpl {
	if lock == nil {
		lock = noopLock{}
	}
	return &ReminderServiceImpl{
		eventRepo: er,
		ledger:    ledger,
		notifier:  notifier,
		composer:  composer,
		clock:     clock,
		lock:      lock,
		reporter:  reporter,
		logger:    logger,
	}
}

func passLockKey(day reminder.Date) string {
	return "event_reminder:daily_pass:" + day.String()
}

// RunDailyPass processes candidates sequentially. A failure on one event or
// interval is logged and never stops the rest of the pass.
func (s *ReminderServiceImpl) RunDailyPass(ctx context.Context) (*PassReport, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	today := s.clock.Today()
	report := &PassReport{
		RunID:     uuid.NewString(),
		Date:      today,
		StartedAt: s.clock.Now(),
	}
	passLogger := s.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"date":   today.String(),
	})

	release, err := s.lock.Acquire(ctx, passLockKey(today))
	if err != nil {
		if errors.Is(err, ErrPassInProgress) {
			passLogger.Warn("Another reminder pass holds the lock. Skipping.")
			return nil, err
		}
		passLogger.WithError(err).Error("Failed to acquire pass lock")
		return nil, fmt.Errorf("failed to acquire pass lock: %w", err)
	}
	defer release()

	events, err := s.eventRepo.ListEligibleEvents(ctx, today.In(s.clock.Location()))
	if err != nil {
		passLogger.WithError(err).Error("Failed to list eligible events")
		return nil, fmt.Errorf("failed to list eligible events: %w", err)
	}
	if len(events) == 0 {
		passLogger.Info("No events eligible for reminders.")
	}

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			passLogger.WithError(err).Warn("Reminder pass interrupted")
			report.FinishedAt = s.clock.Now()
			return report, err
		}
		report.EventsConsidered++
		s.processEvent(ctx, ev, today, report, passLogger)
	}

	report.FinishedAt = s.clock.Now()
	passLogger.WithFields(logrus.Fields{
		"events":  report.EventsConsidered,
		"skipped": report.EventsSkipped,
		"sent":    report.RemindersSent,
		"failed":  report.RemindersFailed,
		"errors":  report.Errors,
	}).Info("Reminder pass finished")

	if s.reporter != nil {
		if err := s.reporter.ReportPass(ctx, report); err != nil {
			passLogger.WithError(err).Warn("Failed to deliver pass report")
		}
	}
	return report, nil
}

func (s *ReminderServiceImpl) processEvent(ctx context.Context, ev *event.Event, today reminder.Date, report *PassReport, passLogger *logrus.Entry) {
	eventLogger := passLogger.WithField("event_id", ev.ID)

	recipients := ev.ValidRecipients()
	if len(recipients) == 0 {
		eventLogger.Debug("No valid recipients. Skipping event.")
		report.EventsSkipped++
		return
	}

	occurrence, ok := reminder.Resolve(ev, today)
	if !ok {
		eventLogger.Debug("Event date not set. Skipping event.")
		report.EventsSkipped++
		return
	}
	eventLogger = eventLogger.WithField("occurrence", occurrence.String())

	for _, iv := range reminder.Intervals() {
		ivLogger := eventLogger.WithField("interval", iv.Key)

		sent, err := s.ledger.HasSent(ctx, ev.ID, iv, occurrence)
		if err != nil {
			ivLogger.WithError(err).Error("Failed to read sent marker")
			report.Errors++
			continue
		}
		if sent {
			ivLogger.Debug("Reminder already sent for this occurrence")
			continue
		}
		if !reminder.IsTriggerDay(occurrence, iv.Key, today) {
			continue
		}

		msg, err := s.composer.Compose(ev, occurrence, iv.Label, s.clock.Now())
		if err != nil {
			ivLogger.WithError(err).Error("Failed to compose reminder")
			report.Errors++
			continue
		}

		result := s.notifier.Send(ctx, recipients, msg)
		logRecipientFailures(ivLogger, result)
		if !result.OK() {
			// Not marked, so the next pass on the same day retries.
			ivLogger.Warn("Reminder delivery failed for every recipient")
			report.RemindersFailed++
			continue
		}

		if err := s.ledger.MarkSent(ctx, ev.ID, iv, occurrence, s.clock.Now()); err != nil {
			ivLogger.WithError(err).Error("Reminder sent but marker could not be written")
			report.Errors++
		}
		report.RemindersSent++
		ivLogger.WithField("delivered", len(result.Delivered)).Info("Reminder sent")
	}
}

// ForceSend never reads or writes the ledger, so repeated calls send again and
// automatic reminders are unaffected.
func (s *ReminderServiceImpl) ForceSend(ctx context.Context, eventID int64) (*ManualResult, error) {
	manualLogger := s.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"manual":   true,
	})

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, idb.ErrEventNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrEventNotFound, eventID)
		}
		manualLogger.WithError(err).Error("Failed to load event")
		return nil, fmt.Errorf("failed to load event %d: %w", eventID, err)
	}

	recipients := ev.ValidRecipients()
	if len(recipients) == 0 {
		manualLogger.Warn("Manual send requested for event without recipients")
		return nil, ErrNoRecipients
	}

	today := s.clock.Today()
	occurrence, ok := reminder.Resolve(ev, today)
	if !ok {
		manualLogger.Warn("Manual send requested for event without date")
		return nil, ErrNoDate
	}

	days := reminder.DaysBetween(today, occurrence)
	label := RelativeDayLabel(days)
	result := &ManualResult{
		EventID:    ev.ID,
		Occurrence: occurrence,
		Days:       days,
		Label:      label,
	}

	msg, err := s.composer.Compose(ev, occurrence, label+manualLabelSuffix, s.clock.Now())
	if err != nil {
		return nil, err
	}

	sendResult := s.notifier.Send(ctx, recipients, msg)
	result.Delivered = sendResult.Delivered
	result.Failures = sendResult.Failures
	logRecipientFailures(manualLogger, sendResult)
	if !sendResult.OK() {
		return result, ErrSendFailed
	}

	manualLogger.WithFields(logrus.Fields{
		"label":     label,
		"delivered": len(sendResult.Delivered),
	}).Info("Manual reminder sent")
	return result, nil
}

func logRecipientFailures(l *logrus.Entry, result notify.Result) {
	for _, f := range result.Failures {
		l.WithError(f.Err).WithField("recipient", f.Recipient).Warn("Reminder delivery failed for recipient")
	}
}

type noopLock struct{}

func (noopLock) Acquire(context.Context, string) (func(), error) { return func() {}, nil }
