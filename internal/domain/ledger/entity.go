package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTravel    Category = "travel"
	CategoryFood      Category = "food"
	CategorySalary    Category = "salary"
	CategoryUtilities Category = "utilities"
	CategoryOther     Category = "other"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is one ledger entry. The sign of Amount is not meaningful; Type decides
// which side it lands on.
type Transaction struct {
	ID          string
	Title       string
	Description string
	Amount      decimal.Decimal
	Date        time.Time // calendar day, midnight UTC
	Category    Category
	Type        Type
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type MonthTotal struct {
	Month   string          `json:"month"` // YYYY-MM
	Label   string          `json:"label"` // Jan 2024
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type Summary struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
	Count      int             `json:"count"`
	Categories []CategoryTotal `json:"categories"`
	Trend      []MonthTotal    `json:"trend"`
}
