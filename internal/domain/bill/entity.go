package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount is quantity times unit price.
func (i Item) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Charge is a flat amount added on top of the items, e.g. travel or GST-exempt expenses.
type Charge struct {
	Label  string          `json:"label" validate:"required,max=255"`
	Amount decimal.Decimal `json:"amount"`
}

type Bill struct {
	ID                string
	ClientID          *string
	ClientDetails     string
	BillDate          time.Time  // calendar day, midnight UTC
	DueDate           *time.Time // calendar day, midnight UTC
	Items             []Item
	AdditionalCharges []Charge
	TaxPercent        decimal.Decimal
	Notes             string
	IsSent            bool
	SentAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Totals sums items and additional charges, then adds tax rounded to cents.
func (b Bill) Totals() Totals {
	subtotal := decimal.Zero
	for _, it := range b.Items {
		subtotal = subtotal.Add(it.Amount())
	}
	for _, c := range b.AdditionalCharges {
		subtotal = subtotal.Add(c.Amount)
	}
	tax := subtotal.Mul(b.TaxPercent).Div(decimal.NewFromInt(100)).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
