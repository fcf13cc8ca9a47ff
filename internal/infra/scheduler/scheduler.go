package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_reminder/internal/app" // For ReminderService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler is the daily trigger: it invokes RunDailyPass on a cron
// cadence in the configured location.
type ReminderScheduler struct {
	cronEngine    *cron.Cron
	reminders     app.ReminderService
	logger        *logrus.Entry
	cronSpecDaily string
	passTimeout   time.Duration
}

func NewReminderScheduler(
	reminders app.ReminderService,
	logger *logrus.Entry,
	location *time.Location,
	cronSpecDaily string, // e.g., "0 8 * * *" (8:00 AM daily)
	passTimeout time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:    cron.New(cron.WithLocation(location)),
		reminders:     reminders,
		logger:        logger,
		cronSpecDaily: cronSpecDaily,
		passTimeout:   passTimeout,
	}
}

// Start registers the daily job and starts the cron engine.
func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		s.logger.Info("Cron job triggered for daily reminder pass.")
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not add daily reminder cron job: %w", err)
	}

	s.cronEngine.Start()
	for _, entry := range s.cronEngine.Entries() {
		s.logger.WithField("next_run", entry.Next.Format(time.RFC3339)).Info("Reminder scheduler started.")
	}
	return nil
}

// RunOnce executes a single pass under the configured timeout.
func (s *ReminderScheduler) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.passTimeout)
	defer cancel()

	if _, err := s.reminders.RunDailyPass(ctx); err != nil {
		if errors.Is(err, app.ErrPassInProgress) {
			s.logger.Info("Daily reminder pass skipped: another pass is running.")
			return
		}
		s.logger.WithError(err).Error("Error during daily reminder pass")
	}
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
