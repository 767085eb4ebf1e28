package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler(context.Background())
	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		order = append(order, "broken")
		return errors.New("boom")
	})
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		order = append(order, "panics")
		panic("bad job")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Contains(t, err.Error(), "panics: panic: bad job")
	assert.Equal(t, []string{"first", "broken", "panics"}, order)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

type fakeReminders struct {
	reminder.Service
	fired int
	err   error
}

func (f *fakeReminders) Dispatch(ctx context.Context) (int, error) { return f.fired, f.err }

func TestReminderJobs(t *testing.T) {
	s := NewScheduler(context.Background())
	svc := &fakeReminders{fired: 2}
	NewReminderJobs(svc).RegisterJobs(s, time.Minute)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, ReminderDispatchJob, jobs[0].Name)
	assert.Equal(t, time.Minute, jobs[0].Interval)
	assert.NoError(t, s.RunOnce(context.Background()))

	svc.err = errors.New("db down")
	assert.ErrorContains(t, s.RunOnce(context.Background()), "reminder_dispatch: db down")
}
