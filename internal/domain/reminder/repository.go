package reminder

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Reminder) (Reminder, error)
	// List returns reminders ordered by RemindAt.
	List(ctx context.Context) ([]Reminder, error)
	Delete(ctx context.Context, id string) error
	// ClaimDue locks reminders with RemindAt <= now. Must run inside a transaction.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
}
