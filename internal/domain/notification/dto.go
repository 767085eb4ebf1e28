package notification

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

const (
	DefaultLimit = 50
	maxLimit     = 200
)

type ListNotificationsRequest struct {
	Unread string
	Limit  string
}

// Parse returns unread-only and limit, defaulting to all notifications and DefaultLimit.
func (r *ListNotificationsRequest) Parse() (bool, int, error) {
	var errs validator.ValidationErrors
	unreadOnly := false
	limit := DefaultLimit

	if r.Unread != "" {
		v, err := strconv.ParseBool(r.Unread)
		if err != nil {
			errs.Add("unread", "unread must be true or false")
		}
		unreadOnly = v
	}
	if r.Limit != "" {
		v, err := strconv.Atoi(r.Limit)
		if err != nil || v < 1 || v > maxLimit {
			errs.Add("limit", "limit must be between 1 and 200")
		}
		limit = v
	}

	if len(errs) > 0 {
		return false, 0, errs
	}
	return unreadOnly, limit, nil
}

type NotificationResponse struct {
	ID         string  `json:"id"`
	Message    string  `json:"message"`
	ReminderID *string `json:"reminder_id,omitempty"`
	Read       bool    `json:"read"`
	ReadAt     *string `json:"read_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

func ToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID,
		Message:    n.Message,
		ReminderID: n.ReminderID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		s := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &s
	}
	return resp
}

// SSETokenResponse carries a short-lived token for the realtime stream.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
