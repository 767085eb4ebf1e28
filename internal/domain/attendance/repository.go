package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	// ListByRange returns every record with start <= date <= end ordered by date, time.
	ListByRange(ctx context.Context, start, end time.Time) ([]Record, error)
	ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]Record, error)
}
