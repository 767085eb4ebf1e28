package reminder

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

// CreateReminderRequest takes either RemindAt (RFC3339) or a local Date and Time.
type CreateReminderRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	RemindAt string `json:"remind_at"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (r *CreateReminderRequest) Validate() error {
	errs := validator.StructErrors(r)
	if validator.IsEmpty(r.Title) && !errs.Has("title") {
		errs.Add("title", "title is required")
	}

	switch {
	case r.RemindAt != "":
		if _, ok := validator.IsValidDateTime(r.RemindAt); !ok {
			errs.Add("remind_at", "remind_at must be an RFC3339 timestamp")
		}
	case r.Date != "" || r.Time != "":
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
		if _, err := time.Parse("15:04", r.Time); err != nil {
			errs.Add("time", "time must be in HH:MM format")
		}
	default:
		errs.Add("remind_at", "remind_at or date and time is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// When resolves the reminder instant, reading Date and Time in loc. Call after Validate.
func (r *CreateReminderRequest) When(loc *time.Location) time.Time {
	if r.RemindAt != "" {
		t, _ := validator.IsValidDateTime(r.RemindAt)
		return t
	}
	t, _ := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.Time, loc)
	return t
}

type ReminderResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RemindAt  string `json:"remind_at"`
	Display   string `json:"display"`
	CreatedAt string `json:"created_at"`
}

// ToResponse renders RemindAt in loc, with Display as "dd/MM/yyyy HH:mm".
func ToResponse(r Reminder, loc *time.Location) ReminderResponse {
	local := r.RemindAt.In(loc)
	return ReminderResponse{
		ID:        r.ID,
		Title:     r.Title,
		RemindAt:  local.Format(time.RFC3339),
		Display:   local.Format("02/01/2006 15:04"),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
