package report

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
)

const missing = "-"

var (
	AttendanceHeader  = []string{"Name", "Check-In", "Check-Out", "Status", "Days Present", "Days Absent", "Days Late", "Avg Check-in"}
	TransactionHeader = []string{"Date", "Title", "Category", "Type", "Amount", "Notes"}
)

// AttendanceRows projects summaries onto AttendanceHeader. Check-in, check-out and
// status are those of the report's as-of day.
func AttendanceRows(summaries []attendance.Summary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		checkIn, checkOut, status := missing, missing, missing
		if s.Today != nil {
			status = string(s.Today.Status)
			if s.Today.CheckIn != nil {
				checkIn = *s.Today.CheckIn
			}
			if s.Today.CheckOut != nil {
				checkOut = *s.Today.CheckOut
			}
		}
		rows = append(rows, []string{
			s.Name,
			checkIn,
			checkOut,
			status,
			strconv.Itoa(s.DaysPresent),
			strconv.Itoa(s.DaysAbsent),
			strconv.Itoa(s.DaysLate),
			s.AverageCheckIn,
		})
	}
	return rows
}

// TransactionRows projects transactions onto TransactionHeader with dd/MM/yyyy dates
// and two-decimal amounts.
func TransactionRows(txs []ledger.Transaction) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			t.Date.Format("02/01/2006"),
			t.Title,
			string(t.Category),
			string(t.Type),
			t.Amount.StringFixed(2),
			t.Description,
		})
	}
	return rows
}

// CalendarRows renders one row per week. A cell reads "5: Shoot; Call" and is empty
// outside the month.
func CalendarRows(g calendar.Grid) [][]string {
	rows := make([][]string, 0, len(g.Weeks))
	for _, week := range g.Weeks {
		row := make([]string, len(week))
		for i, c := range week {
			if !c.InMonth {
				continue
			}
			text := strconv.Itoa(c.Day)
			if len(c.Events) > 0 {
				titles := make([]string, 0, len(c.Events))
				for _, e := range c.Events {
					title := e.Title
					if e.IsDone {
						title += " (done)"
					}
					titles = append(titles, title)
				}
				text += ": " + strings.Join(titles, "; ")
			}
			row[i] = text
		}
		rows = append(rows, row)
	}
	return rows
}
