package bill

import "context"

type BillService interface {
	Create(ctx context.Context, req CreateBillRequest) (BillResponse, error)
	GetByID(ctx context.Context, id string) (BillResponse, error)
	List(ctx context.Context, query ListBillsQuery) ([]BillResponse, error)
	Update(ctx context.Context, id string, req UpdateBillRequest) (BillResponse, error)
	Delete(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string) (BillResponse, error)

	// Reminders lists unsent bills with their due-date standing.
	Reminders(ctx context.Context) ([]ReminderResponse, error)
}
