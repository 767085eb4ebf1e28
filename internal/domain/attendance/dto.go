package attendance

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK EVENTS
// ========================================

// RecordRequest registers one clock event. Date and time default to "now".
type RecordRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
}

func (r *RecordRequest) Validate() error {
	errs := validator.StructErrors(r)

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	if r.Time != "" {
		if _, err := timeofday.Parse(r.Time); err != nil {
			errs.Add("time", "time must be in HH:MM format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordFilter struct {
	StaffID   *string
	StartDate string
	EndDate   string
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.StartDate); !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if _, ok := validator.IsValidDate(f.EndDate); !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"created_at"`
}

func ToRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		StaffID:   r.StaffID,
		Date:      r.Date.Format("2006-01-02"),
		Time:      r.Time,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// ========================================
// REPORTS
// ========================================

// ReportQuery selects a period either by month (YYYY-MM) or by explicit dates.
// An empty query means the current month.
type ReportQuery struct {
	Month     string
	StartDate string
	EndDate   string
}

func (q *ReportQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Month != "" {
		if _, ok := validator.IsValidMonth(q.Month); !ok {
			errs.Add("month", "month must be in YYYY-MM format")
		}
		if q.StartDate != "" || q.EndDate != "" {
			errs.Add("month", "month cannot be combined with start_date/end_date")
		}
	}
	if (q.StartDate == "") != (q.EndDate == "") {
		errs.Add("start_date", "start_date and end_date must be given together")
	}
	if q.StartDate != "" {
		if _, ok := validator.IsValidDate(q.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if q.EndDate != "" {
		if _, ok := validator.IsValidDate(q.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalendarMark is one cell of the individual report's month strip.
type CalendarMark struct {
	Day    int    `json:"day"`
	Date   string `json:"date"`
	Status string `json:"status"` // present, late, absent or future
}

type StaffReportResponse struct {
	Month    string         `json:"month"`
	Summary  Summary        `json:"summary"`
	Calendar []CalendarMark `json:"calendar"`
}

type HoursWorkedResponse struct {
	Date        string  `json:"date"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	HoursWorked float64 `json:"hours_worked"`
}
