package notification

import "time"

// Table names the store table and its change-feed topic.
const Table = "notifications"

// Notification is an in-app message. There is one shared inbox for the business.
type Notification struct {
	ID         string
	Message    string
	ReminderID *string
	Read       bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
