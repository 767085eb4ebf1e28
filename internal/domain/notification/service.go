package notification

import "context"

type Service interface {
	List(ctx context.Context, req ListNotificationsRequest) (NotificationListResponse, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
}
