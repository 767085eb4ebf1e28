// Package realtime relays Postgres change notifications to the SSE hub.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/sse"
	"github.com/jackc/pgx/v5"
)

// Channel is the NOTIFY channel the table triggers write to. Payloads are table names.
const Channel = "table_changes"

// ChangeEvent is the SSE event name published for every notification.
const ChangeEvent = "change"

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Publisher receives one event per change. *sse.Hub satisfies it.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type Listener struct {
	db  *database.DB
	hub Publisher
}

func NewListener(db *database.DB, hub Publisher) *Listener {
	return &Listener{db: db, hub: hub}
}

// Run holds one pooled connection in LISTEN mode until ctx is done, reconnecting with
// exponential backoff after failures.
func (l *Listener) Run(ctx context.Context) {
	backoff := minBackoff
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			slog.Info("Change listener stopped")
			return
		}
		slog.Error("Change listener disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	slog.Info("Change listener started", "channel", Channel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// The connection may be mid-wait; do not hand it back to the pool.
				conn.Hijack().Close(context.Background())
			}
			return err
		}
		l.Dispatch(n.Channel, n.Payload)
	}
}

// Dispatch publishes one notification to the hub. Notifications on other channels and
// empty payloads are dropped.
func (l *Listener) Dispatch(channel, payload string) {
	if channel != Channel || payload == "" {
		return
	}
	slog.Debug("Table changed", "table", payload)
	l.hub.Publish(payload, sse.Event{Event: ChangeEvent, Data: payload})
}
