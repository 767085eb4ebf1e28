package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
)

const ReminderDispatchJob = "reminder_dispatch"

type ReminderJobs struct {
	reminders reminder.Service
}

func NewReminderJobs(reminders reminder.Service) *ReminderJobs {
	return &ReminderJobs{reminders: reminders}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(ReminderDispatchJob, interval, j.DispatchDue)
}

// DispatchDue turns due reminders into notifications.
func (j *ReminderJobs) DispatchDue(ctx context.Context) error {
	fired, err := j.reminders.Dispatch(ctx)
	if err != nil {
		return err
	}
	if fired > 0 {
		slog.Info("Reminders dispatched", "count", fired)
	}
	return nil
}
