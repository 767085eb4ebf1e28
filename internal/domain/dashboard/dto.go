package dashboard

import (
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// OverviewResponse is the landing view. Sections the caller's role may not see are nil.
type OverviewResponse struct {
	Date                string                   `json:"date"`
	Attendance          *attendance.Rollup       `json:"attendance,omitempty"`
	Events              []calendar.EventResponse `json:"events"`
	UnreadNotifications int                      `json:"unread_notifications"`
	Bills               *BillStanding            `json:"bills,omitempty"`
	Ledger              *LedgerMonth             `json:"ledger,omitempty"`
}

type BillStanding struct {
	Unsent      int             `json:"unsent"`
	Overdue     int             `json:"overdue"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type LedgerMonth struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
