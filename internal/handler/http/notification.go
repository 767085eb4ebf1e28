package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/session"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const keepaliveInterval = 30 * time.Second

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	// Notifications
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService    notification.Service
	reminderService reminder.Service
	jwtService      jwt.Service
	hub             *sse.Hub
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service, reminderService reminder.Service, jwtService jwt.Service, hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{
		notifService:    notifService,
		reminderService: reminderService,
		jwtService:      jwtService,
		hub:             hub,
	}
}

// List returns the inbox, newest first
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := notification.ListNotificationsRequest{
		Unread: r.URL.Query().Get("unread"),
		Limit:  r.URL.Query().Get("limit"),
	}

	result, err := h.notifService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UnreadCount returns the count of unread notifications
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifService.UnreadCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notification.UnreadCountResponse{UnreadCount: count})
}

// MarkRead marks one notification as read
func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllRead marks all notifications as read
func (h *notificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifService.MarkAllRead(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", map[string]int64{"updated": n})
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrSessionMissing)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(s.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, notification.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// streamTables parses the comma separated tables parameter. Empty means every table.
func streamTables(param string) ([]string, error) {
	if strings.TrimSpace(param) == "" {
		return []string{reminder.Table, notification.Table}, nil
	}

	var tables []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(param, ",") {
		t = strings.TrimSpace(t)
		if t != reminder.Table && t != notification.Table {
			return nil, fmt.Errorf("unknown table %q", t)
		}
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// snapshot loads the full current collection of table.
func (h *notificationHandlerImpl) snapshot(ctx context.Context, table string) (interface{}, error) {
	switch table {
	case reminder.Table:
		return h.reminderService.List(ctx)
	case notification.Table:
		return h.notifService.List(ctx, notification.ListNotificationsRequest{})
	}
	return nil, fmt.Errorf("unknown table %q", table)
}

// Stream sends each subscribed collection on connect and again after every change
// to its table. Payloads always replace the client's copy.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	tables, err := streamTables(r.URL.Query().Get("tables"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Subscribe before the first snapshot so no change slips between them.
	events, cleanup := h.hub.Subscribe(tables...)
	defer cleanup()

	ctx := r.Context()
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	h.sendSnapshots(ctx, w, tables)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			h.sendSnapshots(ctx, w, []string{event.Topic})
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}

// sendSnapshots loads the collections concurrently and writes one event per table in
// the given order. A table that fails to load is skipped.
func (h *notificationHandlerImpl) sendSnapshots(ctx context.Context, w http.ResponseWriter, tables []string) {
	payloads := make([][]byte, len(tables))

	var g errgroup.Group
	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			payloads[i] = h.encodeSnapshot(ctx, table)
			return nil
		})
	}
	_ = g.Wait()

	for i, table := range tables {
		if payloads[i] != nil {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", table, payloads[i])
		}
	}
}

func (h *notificationHandlerImpl) encodeSnapshot(ctx context.Context, table string) []byte {
	data, err := h.snapshot(ctx, table)
	if err != nil {
		slog.Error("Failed to load realtime snapshot", "table", table, "error", err)
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode realtime snapshot", "table", table, "error", err)
		return nil
	}
	return payload
}
