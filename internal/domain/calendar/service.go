package calendar

import (
	"context"
)

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	GetByID(ctx context.Context, id string) (EventResponse, error)
	List(ctx context.Context, query ListEventsQuery) ([]EventResponse, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, id string) error
	SetDone(ctx context.Context, id string, req SetDoneRequest) error

	// MonthGrid lays out a month for display or printing.
	MonthGrid(ctx context.Context, query GridQuery) (Grid, error)
}
