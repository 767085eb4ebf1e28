package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	// List returns newest first, at most limit rows.
	List(ctx context.Context, unreadOnly bool, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
}
