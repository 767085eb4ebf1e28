package bill

import (
	"context"
	"time"
)

type BillRepository interface {
	Create(ctx context.Context, b Bill) (Bill, error)
	GetByID(ctx context.Context, id string) (Bill, error)
	List(ctx context.Context, filter BillFilter) ([]Bill, error)
	Update(ctx context.Context, b Bill) (Bill, error)
	Delete(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	// ListUnsent returns bills not yet sent, by due date (bills without one last).
	ListUnsent(ctx context.Context) ([]Bill, error)
}
