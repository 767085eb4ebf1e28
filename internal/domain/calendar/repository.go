package calendar

import "context"

type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id string) error
	SetDone(ctx context.Context, id string, done bool) error
	// ListOverlapping returns events whose span touches [filter.From, filter.To).
	ListOverlapping(ctx context.Context, filter EventFilter) ([]Event, error)
}
