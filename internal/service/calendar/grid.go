package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
)

const dateLayout = "2006-01-02"

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildMonthGrid lays out month as rows of seven cells starting on Sunday. Cells
// outside the month are blank. Every in-month cell lists the events covering that day,
// ordered by start and then title.
func BuildMonthGrid(year int, month time.Month, events []calendar.Event, loc *time.Location) calendar.Grid {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())
	rows := (daysInMonth + leading + 6) / 7

	sorted := make([]calendar.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sortKey(sorted[i], loc), sortKey(sorted[j], loc)
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return sorted[i].Title < sorted[j].Title
	})

	byDay := make([][]calendar.EventSummary, daysInMonth+1)
	placed := make(map[string]struct{})
	lastDay := first.AddDate(0, 0, daysInMonth-1)
	for i, e := range sorted {
		from, to := DaySpan(e, loc)
		if to.Before(first) || from.After(lastDay) {
			continue
		}
		if from.Before(first) {
			from = first
		}
		if to.After(lastDay) {
			to = lastDay
		}
		summary := summarize(e, loc)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			byDay[d.Day()] = append(byDay[d.Day()], summary)
		}
		key := e.ID
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		placed[key] = struct{}{}
	}

	weeks := make([][]calendar.Cell, rows)
	for r := 0; r < rows; r++ {
		week := make([]calendar.Cell, 7)
		for c := 0; c < 7; c++ {
			day := r*7 + c - leading + 1
			if day < 1 || day > daysInMonth {
				week[c] = calendar.Cell{Events: []calendar.EventSummary{}}
				continue
			}
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
			cellEvents := byDay[day]
			if cellEvents == nil {
				cellEvents = []calendar.EventSummary{}
			}
			week[c] = calendar.Cell{
				Day:     day,
				Date:    &date,
				InMonth: true,
				Events:  cellEvents,
			}
		}
		weeks[r] = week
	}

	return calendar.Grid{
		Year:       year,
		Month:      int(month),
		Title:      first.Format("January 2006"),
		Weekdays:   weekdays,
		Weeks:      weeks,
		EventCount: len(placed),
	}
}

// DaySpan returns the first and last calendar day (midnight UTC) an event covers. All-day
// events use their stored dates with an inclusive end. Timed events are read in loc and
// cover every day their [Start, End) interval touches; a zero-length event covers the
// day it starts.
func DaySpan(e calendar.Event, loc *time.Location) (time.Time, time.Time) {
	if e.AllDay {
		from, to := dateOf(e.Start), dateOf(e.End)
		if to.Before(from) {
			to = from
		}
		return from, to
	}

	start := e.Start.In(loc)
	from := dateOf(start)
	if !e.End.After(e.Start) {
		return from, from
	}
	return from, dateOf(e.End.In(loc).Add(-time.Nanosecond))
}

func sortKey(e calendar.Event, loc *time.Location) time.Time {
	if e.AllDay {
		return time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), 0, 0, 0, 0, loc)
	}
	return e.Start
}

func summarize(e calendar.Event, loc *time.Location) calendar.EventSummary {
	start, end := e.Start, e.End
	if !e.AllDay {
		start, end = start.In(loc), end.In(loc)
	}
	return calendar.EventSummary{
		ID:       e.ID,
		Title:    e.Title,
		Category: e.Category,
		IsDone:   e.IsDone,
		AllDay:   e.AllDay,
		Start:    calendar.FormatEventTime(start, e.AllDay),
		End:      calendar.FormatEventTime(end, e.AllDay),
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
