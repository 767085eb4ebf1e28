package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"golang.org/x/sync/errgroup"
)

type service struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) notification.Service {
	return &service{repo: repo}
}

// List returns the inbox together with the unread badge count.
func (s *service) List(ctx context.Context, req notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	unreadOnly, limit, err := req.Parse()
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	var (
		items  []notification.Notification
		unread int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, unreadOnly, limit)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = s.repo.UnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to load notifications", "error", err)
		return notification.NotificationListResponse{}, fmt.Errorf("failed to load notifications: %w", err)
	}

	resp := notification.NotificationListResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notification.ToResponse(n))
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.UnreadCount(ctx)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}
