package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"event_reminder/internal/domain/event"

	"github.com/lib/pq"
)

// Custom errors
var ErrEventNotFound = fmt.Errorf("event not found")

const eventColumns = `id, title, content, status, is_recurring, start_date, month_day,
               reminders_enabled, recipient_emails, created_at, updated_at`

// PostgresEventRepository reads events; meta access comes from the embedded
// PostgresMetaRepository.
type PostgresEventRepository struct {
	*PostgresMetaRepository
	db          *sql.DB
	horizonDays int
}

// NewPostgresEventRepository returns a repository whose eligibility pre-filter
// keeps one-time events starting within horizonDays of the reference day.
func NewPostgresEventRepository(db *sql.DB, horizonDays int) *PostgresEventRepository {
	if horizonDays <= 0 {
		horizonDays = 31
	}
	return &PostgresEventRepository{
		PostgresMetaRepository: NewPostgresMetaRepository(db),
		db:                     db,
		horizonDays:            horizonDays,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	e := &event.Event{}
	var status string
	var startDate, monthDay sql.NullString
	err := row.Scan(&e.ID, &e.Title, &e.Content, &status, &e.IsRecurring, &startDate, &monthDay,
		&e.RemindersEnabled, pq.Array(&e.RecipientEmails), &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = event.Status(status)
	e.StartDate = startDate.String
	e.MonthDay = monthDay.String
	return e, nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND status = $2`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id, event.StatusPublish))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}
	return e, nil
}

// ListEligibleEvents returns published events with reminders enabled. Stored
// start dates are ISO strings, so the window check compares them lexically.
func (r *PostgresEventRepository) ListEligibleEvents(ctx context.Context, asOf time.Time) ([]*event.Event, error) {
	from := asOf.Format("2006-01-02")
	until := asOf.AddDate(0, 0, r.horizonDays+1).Format("2006-01-02")

	query := `SELECT ` + eventColumns + `
               FROM events
               WHERE status = $1
                 AND reminders_enabled = TRUE
                 AND (is_recurring OR (start_date >= $2 AND start_date < $3))
               ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, event.StatusPublish, from, until)
	if err != nil {
		return nil, fmt.Errorf("error listing eligible events: %w", err)
	}
	defer rows.Close()

	events := make([]*event.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning eligible event: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating eligible events: %w", err)
	}
	return events, nil
}
