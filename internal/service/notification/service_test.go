package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items     []notification.Notification
	countErr  error
	lastLimit int
}

func (f *fakeRepo) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	f.items = append(f.items, n)
	return n, nil
}

func (f *fakeRepo) List(ctx context.Context, unreadOnly bool, limit int) ([]notification.Notification, error) {
	f.lastLimit = limit
	var out []notification.Notification
	for _, n := range f.items {
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeRepo) UnreadCount(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	c := 0
	for _, n := range f.items {
		if !n.Read {
			c++
		}
	}
	return c, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeRepo) MarkAllRead(ctx context.Context) (int64, error) {
	var n int64
	for i := range f.items {
		if !f.items[i].Read {
			f.items[i].Read = true
			n++
		}
	}
	return n, nil
}

func seeded() *fakeRepo {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	return &fakeRepo{items: []notification.Notification{
		{ID: "1", Message: "It's time for: Call Dana", CreatedAt: now},
		{ID: "2", Message: "It's time for: Pay rent", Read: true, CreatedAt: now},
	}}
}

func TestList(t *testing.T) {
	repo := seeded()
	svc := NewNotificationService(repo)

	resp, err := svc.List(context.Background(), notification.ListNotificationsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 1, resp.UnreadCount)
	assert.Equal(t, notification.DefaultLimit, repo.lastLimit)

	resp, err = svc.List(context.Background(), notification.ListNotificationsRequest{Unread: "true", Limit: "10"})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "1", resp.Notifications[0].ID)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = svc.List(context.Background(), notification.ListNotificationsRequest{Limit: "0"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestListFailsWhenCountFails(t *testing.T) {
	repo := seeded()
	repo.countErr = errors.New("boom")

	_, err := NewNotificationService(repo).List(context.Background(), notification.ListNotificationsRequest{})
	assert.Error(t, err)
}

func TestMarkRead(t *testing.T) {
	repo := seeded()
	svc := NewNotificationService(repo)

	require.NoError(t, svc.MarkRead(context.Background(), "1"))
	count, err := svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "404"), notification.ErrNotificationNotFound)

	repo.items = append(repo.items, notification.Notification{ID: "3"}, notification.Notification{ID: "4"})
	n, err := svc.MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
