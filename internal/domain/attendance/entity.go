package attendance

import "time"

// Status is the derived classification of one staff member on one day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

// NoCheckIn is shown in place of an average when there is nothing to average.
const NoCheckIn = "—"

// AbsentPolicy decides which days before a member joined count as absences.
type AbsentPolicy string

const (
	// AbsentFullPeriod counts every day of the period.
	AbsentFullPeriod AbsentPolicy = "full_period"
	// AbsentSinceJoined starts counting on the member's joined_on date.
	AbsentSinceJoined AbsentPolicy = "since_joined"
)

// Record is a single clock event. Records are append-only.
type Record struct {
	ID        string
	StaffID   string
	Date      time.Time // calendar day, midnight UTC
	Time      string    // wall clock HH:MM
	CreatedAt time.Time
}

// Day is the derived attendance of one member on one date. Never persisted.
type Day struct {
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   Status  `json:"status"`
}

// Summary aggregates one member's days over a period.
type Summary struct {
	StaffID           string `json:"staff_id"`
	Name              string `json:"name"`
	Department        string `json:"department"`
	Position          string `json:"position"`
	DaysPresent       int    `json:"days_present"`
	DaysLate          int    `json:"days_late"`
	DaysAbsent        int    `json:"days_absent"`
	AverageCheckIn    string `json:"average_check_in"`
	AverageCheckIn12h string `json:"average_check_in_12h"`
	Today             *Day   `json:"today,omitempty"`
	Days              []Day  `json:"days"`
}

// Rollup counts the roster by status on a single day. Present includes late.
type Rollup struct {
	Date       *string `json:"date"`
	TotalStaff int     `json:"total_staff"`
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	Absent     int     `json:"absent"`
}

type Report struct {
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	AsOf        string    `json:"as_of"`
	Summaries   []Summary `json:"summaries"`
	Rollup      Rollup    `json:"rollup"`
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the first through last day of the month containing t.
func MonthPeriod(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// DayPeriod returns the single-day period of t.
func DayPeriod(t time.Time) Period {
	d := DateOf(t)
	return Period{Start: d, End: d}
}

// DateOf drops the clock and zone of t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
