package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) reminder.Repository {
	return &reminderRepository{db: db}
}

const reminderColumns = `id, title, remind_at, created_at`

// Create implements reminder.Repository.
func (r *reminderRepository) Create(ctx context.Context, rem reminder.Reminder) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reminders (id, title, remind_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reminderColumns

	var created reminder.Reminder
	err := q.QueryRow(ctx, query, uuid.New().String(), rem.Title, rem.RemindAt, time.Now()).Scan(
		&created.ID,
		&created.Title,
		&created.RemindAt,
		&created.CreatedAt,
	)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}
	return created, nil
}

// List implements reminder.Repository.
func (r *reminderRepository) List(ctx context.Context) ([]reminder.Reminder, error) {
	return r.query(ctx, `SELECT `+reminderColumns+` FROM reminders ORDER BY remind_at, id`)
}

// Delete implements reminder.Repository.
func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderNotFound
	}
	return nil
}

// ClaimDue implements reminder.Repository. Rows locked by another dispatcher are skipped.
func (r *reminderRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]reminder.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE remind_at <= $1
		ORDER BY remind_at, id
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`
	return r.query(ctx, query, now, limit)
}

func (r *reminderRepository) query(ctx context.Context, query string, args ...interface{}) ([]reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	reminders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (reminder.Reminder, error) {
		var rem reminder.Reminder
		err := row.Scan(&rem.ID, &rem.Title, &rem.RemindAt, &rem.CreatedAt)
		return rem, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reminders: %w", err)
	}
	return reminders, nil
}
