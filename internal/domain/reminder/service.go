package reminder

import "context"

type Service interface {
	Create(ctx context.Context, req CreateReminderRequest) (ReminderResponse, error)
	List(ctx context.Context) ([]ReminderResponse, error)
	Delete(ctx context.Context, id string) error

	// Dispatch turns every due reminder into a notification and removes it. It returns
	// how many fired.
	Dispatch(ctx context.Context) (int, error)
}
