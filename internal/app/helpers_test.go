package app

import (
	"context"
	"io"
	"time"

	"event_reminder/internal/domain/event"
	"event_reminder/internal/testfixtures"

	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type fixture struct {
	store    *testfixtures.EventStore
	notifier *testfixtures.Notifier
	clock    *testfixtures.Clock
	ledger   *MetaLedger
	service  *ReminderServiceImpl
}

func newFixture(clock *testfixtures.Clock, events ...*event.Event) *fixture {
	return newFixtureWith(clock, nil, nil, events...)
}

func newFixtureWith(clock *testfixtures.Clock, lock PassLock, reporter PassReporter, events ...*event.Event) *fixture {
	f := &fixture{
		store:    testfixtures.NewEventStore(events...),
		notifier: testfixtures.NewNotifier(),
		clock:    clock,
	}
	f.ledger = NewMetaLedger(f.store)
	f.service = NewReminderServiceImpl(
		f.store,
		f.ledger,
		f.notifier,
		NewMessageComposer(time.UTC, ""),
		clock,
		lock,
		reporter,
		discardLogger(),
	)
	return f
}

func gala(start string) *event.Event {
	return &event.Event{
		ID:               1,
		Title:            "Gala",
		StartDate:        start,
		RemindersEnabled: true,
		RecipientEmails:  []string{"a@example.com", "b@example.com"},
	}
}

func anniversary(monthDay string) *event.Event {
	return &event.Event{
		ID:               2,
		Title:            "Anniversary",
		IsRecurring:      true,
		MonthDay:         monthDay,
		RemindersEnabled: true,
		RecipientEmails:  []string{"a@example.com"},
	}
}

type busyLock struct{}

func (busyLock) Acquire(context.Context, string) (func(), error) { return nil, ErrPassInProgress }

type recordingLock struct {
	keys     []string
	released int
}

func (l *recordingLock) Acquire(_ context.Context, key string) (func(), error) {
	l.keys = append(l.keys, key)
	return func() { l.released++ }, nil
}

type recordingReporter struct {
	reports []*PassReport
}

func (r *recordingReporter) ReportPass(_ context.Context, report *PassReport) error {
	r.reports = append(r.reports, report)
	return nil
}
