package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	dateLayout           = "2006-01-02"
	DefaultTrendMonths   = 4
	maxTrendMonths       = 24
	categoryOneOf        = "travel food salary utilities other"
	transactionTypeOneOf = "income expense"
)

type CreateTransactionRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=travel food salary utilities other"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
}

func (r *CreateTransactionRequest) Validate() error {
	errs := validator.StructErrors(r)
	if validator.IsEmpty(r.Title) && !errs.Has("title") {
		errs.Add("title", "title is required")
	}
	if r.Amount.IsZero() {
		errs.Add("amount", "amount must not be zero")
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTransactionRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,oneof=travel food salary utilities other"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
}

func (r *UpdateTransactionRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title cannot be empty")
	}
	if r.Amount != nil && r.Amount.IsZero() {
		errs.Add("amount", "amount must not be zero")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListTransactionsQuery holds the raw query string filters.
type ListTransactionsQuery struct {
	Search    string
	Category  string
	Type      string
	StartDate string
	EndDate   string
}

// Filter validates the query and converts it. "all" or empty means no filter.
func (q *ListTransactionsQuery) Filter() (TransactionFilter, error) {
	var (
		errs   validator.ValidationErrors
		filter TransactionFilter
	)

	if s := strings.TrimSpace(q.Search); s != "" {
		filter.Search = &s
	}
	if q.Category != "" && q.Category != "all" {
		if !validator.IsInSlice(q.Category, strings.Fields(categoryOneOf)) {
			errs.Add("category", "category must be one of: "+strings.ReplaceAll(categoryOneOf, " ", ", "))
		}
		c := Category(q.Category)
		filter.Category = &c
	}
	if q.Type != "" && q.Type != "all" {
		if !validator.IsInSlice(q.Type, strings.Fields(transactionTypeOneOf)) {
			errs.Add("type", "type must be one of: "+strings.ReplaceAll(transactionTypeOneOf, " ", ", "))
		}
		t := Type(q.Type)
		filter.Type = &t
	}
	if q.StartDate != "" {
		d, ok := validator.IsValidDate(q.StartDate)
		if !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
		filter.From = &d
	}
	if q.EndDate != "" {
		d, ok := validator.IsValidDate(q.EndDate)
		if !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
		filter.To = &d
	}
	if len(errs) == 0 && filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if len(errs) > 0 {
		return TransactionFilter{}, errs
	}
	return filter, nil
}

// DateRangeLabel renders the selected range for report headers, empty when unbounded.
func (q *ListTransactionsQuery) DateRangeLabel() string {
	if q.StartDate == "" && q.EndDate == "" {
		return ""
	}
	format := func(s string) string {
		d, ok := validator.IsValidDate(s)
		if !ok {
			return "..."
		}
		return d.Format("02/01/2006")
	}
	from, to := "...", "..."
	if q.StartDate != "" {
		from = format(q.StartDate)
	}
	if q.EndDate != "" {
		to = format(q.EndDate)
	}
	return "Date Range: " + from + " - " + to
}

type TransactionFilter struct {
	Search   *string
	Category *Category
	Type     *Type
	From     *time.Time
	To       *time.Time
}

type SummaryQuery struct {
	ListTransactionsQuery
	Months string
}

// TrendMonths returns the requested trailing month count.
func (q *SummaryQuery) TrendMonths() (int, error) {
	if q.Months == "" {
		return DefaultTrendMonths, nil
	}
	n, err := strconv.Atoi(q.Months)
	if err != nil || n < 1 || n > maxTrendMonths {
		return 0, validator.ValidationErrors{{Field: "months", Message: "months must be between 1 and 24"}}
	}
	return n, nil
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    Category        `json:"category"`
	Type        Type            `json:"type"`
	CreatedAt   string          `json:"created_at"`
}

func ToResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date.Format(dateLayout),
		Category:    t.Category,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
