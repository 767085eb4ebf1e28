package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/repository/postgresql"
)

// dispatchBatch bounds how many reminders one run claims.
const dispatchBatch = 100

type ReminderServiceImpl struct {
	reminders     reminder.Repository
	notifications notification.Repository
	tx            postgresql.Transactor
	loc           *time.Location
	now           func() time.Time
}

func NewReminderService(
	reminders reminder.Repository,
	notifications notification.Repository,
	tx postgresql.Transactor,
	loc *time.Location,
) reminder.Service {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderServiceImpl{
		reminders:     reminders,
		notifications: notifications,
		tx:            tx,
		loc:           loc,
		now:           time.Now,
	}
}

// Create implements reminder.Service.
func (s *ReminderServiceImpl) Create(ctx context.Context, req reminder.CreateReminderRequest) (reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.ReminderResponse{}, err
	}

	created, err := s.reminders.Create(ctx, reminder.Reminder{
		Title:    strings.TrimSpace(req.Title),
		RemindAt: req.When(s.loc),
	})
	if err != nil {
		slog.Error("Failed to create reminder", "error", err)
		return reminder.ReminderResponse{}, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder.ToResponse(created, s.loc), nil
}

// List implements reminder.Service.
func (s *ReminderServiceImpl) List(ctx context.Context) ([]reminder.ReminderResponse, error) {
	items, err := s.reminders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	resp := make([]reminder.ReminderResponse, 0, len(items))
	for _, r := range items {
		resp = append(resp, reminder.ToResponse(r, s.loc))
	}
	return resp, nil
}

// Delete implements reminder.Service.
func (s *ReminderServiceImpl) Delete(ctx context.Context, id string) error {
	return s.reminders.Delete(ctx, id)
}

// Dispatch implements reminder.Service. A reminder and its notification are never seen
// together: the insert and the delete commit as one.
func (s *ReminderServiceImpl) Dispatch(ctx context.Context) (int, error) {
	fired := 0
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		due, err := s.reminders.ClaimDue(txCtx, s.now(), dispatchBatch)
		if err != nil {
			return fmt.Errorf("claim due reminders: %w", err)
		}

		for _, r := range due {
			id := r.ID
			if _, err := s.notifications.Create(txCtx, notification.Notification{
				Message:    r.Message(),
				ReminderID: &id,
			}); err != nil {
				return fmt.Errorf("notify reminder %s: %w", r.ID, err)
			}
			if err := s.reminders.Delete(txCtx, r.ID); err != nil {
				return fmt.Errorf("delete reminder %s: %w", r.ID, err)
			}
		}
		fired = len(due)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if fired > 0 {
		slog.Info("Reminders dispatched", "count", fired)
	}
	return fired, nil
}
