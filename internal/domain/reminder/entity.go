package reminder

import "time"

const Table = "reminders"

type Reminder struct {
	ID        string
	Title     string
	RemindAt  time.Time
	CreatedAt time.Time
}

// Message is the notification text raised when the reminder fires.
func (r Reminder) Message() string {
	return "It's time for: " + r.Title
}
