package calendar

import "time"

type Category string

const (
	CategoryMeeting  Category = "meeting"
	CategoryShoot    Category = "shoot"
	CategoryDeadline Category = "deadline"
	CategoryPayment  Category = "payment"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

func AllCategories() []Category {
	return []Category{
		CategoryMeeting,
		CategoryShoot,
		CategoryDeadline,
		CategoryPayment,
		CategoryPersonal,
		CategoryOther,
	}
}

// Event is a calendar entry. All-day events keep only the calendar date of Start and
// End (stored at midnight UTC) and End is inclusive. Timed events span [Start, End).
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Location    string
	Category    Category
	IsDone      bool
	ClientName  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cell is one square of the month grid. Blank cells (outside the month) have Day 0.
type Cell struct {
	Day     int            `json:"day"`
	Date    *string        `json:"date"`
	InMonth bool           `json:"in_month"`
	Events  []EventSummary `json:"events"`
}

type Grid struct {
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	Title      string   `json:"title"`
	Weekdays   []string `json:"weekdays"`
	Weeks      [][]Cell `json:"weeks"`
	EventCount int      `json:"event_count"`
}

// EventSummary is what a grid cell shows about an event.
type EventSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	IsDone   bool     `json:"is_done"`
	AllDay   bool     `json:"all_day"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
}
