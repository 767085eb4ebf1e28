package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) calendar.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, start_at, end_at, all_day, location, category, is_done, client_name, created_at, updated_at`

func scanEvent(row pgx.Row) (calendar.Event, error) {
	var e calendar.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Start,
		&e.End,
		&e.AllDay,
		&e.Location,
		&e.Category,
		&e.IsDone,
		&e.ClientName,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if e.AllDay {
		e.Start = e.Start.UTC()
		e.End = e.End.UTC()
	}
	return e, nil
}

// Create implements calendar.EventRepository.
func (r *eventRepository) Create(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (id, title, description, start_at, end_at, all_day, location, category, is_done, client_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + eventColumns

	created, err := scanEvent(q.QueryRow(ctx, query,
		uuid.New().String(),
		e.Title,
		e.Description,
		e.Start,
		e.End,
		e.AllDay,
		e.Location,
		e.Category,
		e.IsDone,
		e.ClientName,
		time.Now(),
	))
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

// GetByID implements calendar.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEvent(q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Event{}, calendar.ErrEventNotFound
		}
		return calendar.Event{}, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return e, nil
}

// Update implements calendar.EventRepository.
func (r *eventRepository) Update(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET title = $1, description = $2, start_at = $3, end_at = $4, all_day = $5,
			location = $6, category = $7, is_done = $8, client_name = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + eventColumns

	updated, err := scanEvent(q.QueryRow(ctx, query,
		e.Title,
		e.Description,
		e.Start,
		e.End,
		e.AllDay,
		e.Location,
		e.Category,
		e.IsDone,
		e.ClientName,
		e.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Event{}, calendar.ErrEventNotFound
		}
		return calendar.Event{}, fmt.Errorf("failed to update event %s: %w", e.ID, err)
	}
	return updated, nil
}

// Delete implements calendar.EventRepository.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrEventNotFound
	}
	return nil
}

// SetDone implements calendar.EventRepository.
func (r *eventRepository) SetDone(ctx context.Context, id string, done bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE events SET is_done = $1, updated_at = NOW() WHERE id = $2`, done, id)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrEventNotFound
	}
	return nil
}

// ListOverlapping implements calendar.EventRepository. The range is widened by a day on
// both sides so all-day rows, stored at midnight UTC, are never missed in other zones;
// callers trim to the exact days.
func (r *eventRepository) ListOverlapping(ctx context.Context, filter calendar.EventFilter) ([]calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("end_at >= $%d::timestamptz - INTERVAL '1 day'", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_at < $%d::timestamptz + INTERVAL '1 day'", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.ClientName != nil {
		conditions = append(conditions, fmt.Sprintf("LOWER(client_name) = LOWER($%d)", argIdx))
		args = append(args, *filter.ClientName)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY start_at, title`, eventColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]calendar.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
