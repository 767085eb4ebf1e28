package calendar

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateEventRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Start       string  `json:"start" validate:"required"`
	End         string  `json:"end" validate:"required"`
	AllDay      bool    `json:"all_day"`
	Location    string  `json:"location" validate:"max=255"`
	Category    string  `json:"category" validate:"required,oneof=meeting shoot deadline payment personal other"`
	ClientName  *string `json:"client_name,omitempty" validate:"omitempty,max=255"`
}

// Validate checks required fields and returns the parsed span.
func (r *CreateEventRequest) Validate() error {
	errs := validator.StructErrors(r)
	if validator.IsEmpty(r.Title) && !errs.Has("title") {
		errs.Add("title", "title is required")
	}
	errs = append(errs, ValidateSpan(r.Start, r.End, r.AllDay)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Span parses Start and End. Call after Validate.
func (r *CreateEventRequest) Span() (time.Time, time.Time) {
	start, _ := ParseEventTime(r.Start, r.AllDay)
	end, _ := ParseEventTime(r.End, r.AllDay)
	return start, end
}

// UpdateEventRequest patches an event. Moving an event on the calendar sends only
// start and end.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Start       *string `json:"start,omitempty"`
	End         *string `json:"end,omitempty"`
	AllDay      *bool   `json:"all_day,omitempty"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=meeting shoot deadline payment personal other"`
	ClientName  *string `json:"client_name,omitempty" validate:"omitempty,max=255"`
}

func (r *UpdateEventRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title cannot be empty")
	}
	if (r.Start == nil) != (r.End == nil) {
		errs.Add("start", "start and end must be changed together")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetDoneRequest struct {
	IsDone bool `json:"is_done"`
}

// ListEventsQuery filters events by an optional [start, end] date range and client.
type ListEventsQuery struct {
	Start      string
	End        string
	ClientName string
}

// Filter validates the query and turns its dates into instants in loc. End is
// inclusive, so To is the midnight after it.
func (q *ListEventsQuery) Filter(loc *time.Location) (EventFilter, error) {
	var (
		errs   validator.ValidationErrors
		filter EventFilter
	)
	if q.Start != "" {
		d, ok := validator.IsValidDate(q.Start)
		if !ok {
			errs.Add("start", "start must be in YYYY-MM-DD format")
		}
		from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		filter.From = &from
	}
	if q.End != "" {
		d, ok := validator.IsValidDate(q.End)
		if !ok {
			errs.Add("end", "end must be in YYYY-MM-DD format")
		}
		to := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
		filter.To = &to
	}
	if len(errs) == 0 && filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		errs.Add("end", "end must not be before start")
	}
	if name := strings.TrimSpace(q.ClientName); name != "" {
		filter.ClientName = &name
	}

	if len(errs) > 0 {
		return EventFilter{}, errs
	}
	return filter, nil
}

type EventFilter struct {
	From       *time.Time
	To         *time.Time
	ClientName *string
}

// GridQuery selects a month (YYYY-MM) and optionally a single client's events.
type GridQuery struct {
	Month      string
	ClientName string
}

func (q *GridQuery) Validate() error {
	if q.Month == "" {
		return nil
	}
	if _, ok := validator.IsValidMonth(q.Month); !ok {
		return validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return nil
}

type EventResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	AllDay      bool     `json:"all_day"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	IsDone      bool     `json:"is_done"`
	ClientName  *string  `json:"client_name,omitempty"`
}

func ToResponse(e Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       FormatEventTime(e.Start, e.AllDay),
		End:         FormatEventTime(e.End, e.AllDay),
		AllDay:      e.AllDay,
		Location:    e.Location,
		Category:    e.Category,
		IsDone:      e.IsDone,
		ClientName:  e.ClientName,
	}
}

// ParseEventTime reads a date (all-day) or an RFC3339 timestamp. All-day values may
// also be given as timestamps; only their calendar date is kept.
func ParseEventTime(s string, allDay bool) (time.Time, error) {
	if allDay {
		if d, err := time.Parse(dateLayout, s); err == nil {
			return d, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(time.RFC3339, s)
}

func FormatEventTime(t time.Time, allDay bool) string {
	if allDay {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// ValidateSpan checks both ends parse and end is not before start.
func ValidateSpan(startStr, endStr string, allDay bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if startStr == "" || endStr == "" {
		return errs
	}

	format := "an RFC3339 timestamp"
	if allDay {
		format = "a YYYY-MM-DD date"
	}
	start, err := ParseEventTime(startStr, allDay)
	if err != nil {
		errs.Add("start", "start must be "+format)
	}
	end, err2 := ParseEventTime(endStr, allDay)
	if err2 != nil {
		errs.Add("end", "end must be "+format)
	}
	if err == nil && err2 == nil && end.Before(start) {
		errs.Add("end", "end must not be before start")
	}
	return errs
}
