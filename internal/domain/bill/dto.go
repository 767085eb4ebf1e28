package bill

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateBillRequest struct {
	ClientID          *string         `json:"client_id,omitempty" validate:"omitempty,uuid"`
	ClientDetails     string          `json:"client_details" validate:"max=1000"`
	BillDate          string          `json:"bill_date" validate:"required"`
	DueDate           *string         `json:"due_date,omitempty"`
	Items             []Item          `json:"items" validate:"min=1,dive"`
	AdditionalCharges []Charge        `json:"additional_charges" validate:"dive"`
	TaxPercent        decimal.Decimal `json:"tax_percent"`
	Notes             string          `json:"notes"`
}

func (r *CreateBillRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.ClientID == nil && validator.IsEmpty(r.ClientDetails) {
		errs.Add("client_details", "client_id or client_details is required")
	}
	errs = append(errs, validateDates(&r.BillDate, r.DueDate)...)
	errs = append(errs, validateAmounts(r.Items, r.AdditionalCharges, &r.TaxPercent)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBillRequest struct {
	ClientID          *string          `json:"client_id,omitempty" validate:"omitempty,uuid"`
	ClientDetails     *string          `json:"client_details,omitempty" validate:"omitempty,max=1000"`
	BillDate          *string          `json:"bill_date,omitempty"`
	DueDate           *string          `json:"due_date,omitempty"`
	Items             []Item           `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	AdditionalCharges []Charge         `json:"additional_charges,omitempty" validate:"omitempty,dive"`
	TaxPercent        *decimal.Decimal `json:"tax_percent,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

func (r *UpdateBillRequest) Validate() error {
	errs := validator.StructErrors(r)
	errs = append(errs, validateDates(r.BillDate, r.DueDate)...)
	errs = append(errs, validateAmounts(r.Items, r.AdditionalCharges, r.TaxPercent)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDates(billDate, dueDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	var bd, dd time.Time
	var bdOK, ddOK bool
	if billDate != nil && *billDate != "" {
		if bd, bdOK = validator.IsValidDate(*billDate); !bdOK {
			errs.Add("bill_date", "bill_date must be in YYYY-MM-DD format")
		}
	}
	if dueDate != nil && *dueDate != "" {
		if dd, ddOK = validator.IsValidDate(*dueDate); !ddOK {
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		}
	}
	if bdOK && ddOK && dd.Before(bd) {
		errs.Add("due_date", "due_date must not be before bill_date")
	}
	return errs
}

func validateAmounts(items []Item, charges []Charge, taxPercent *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, it := range items {
		if !it.Quantity.IsPositive() {
			errs.Add(fmt.Sprintf("items[%d].quantity", i), "quantity must be greater than 0")
		}
		if it.UnitPrice.IsNegative() {
			errs.Add(fmt.Sprintf("items[%d].unit_price", i), "unit_price must not be negative")
		}
	}
	for i, c := range charges {
		if c.Amount.IsNegative() {
			errs.Add(fmt.Sprintf("additional_charges[%d].amount", i), "amount must not be negative")
		}
	}
	if taxPercent != nil && (taxPercent.IsNegative() || taxPercent.GreaterThan(decimal.NewFromInt(100))) {
		errs.Add("tax_percent", "tax_percent must be between 0 and 100")
	}
	return errs
}

// ListBillsQuery filters bills. Sent is "true", "false" or empty.
type ListBillsQuery struct {
	ClientID string
	Sent     string
}

type BillFilter struct {
	ClientID *string
	IsSent   *bool
}

func (q *ListBillsQuery) Filter() (BillFilter, error) {
	var f BillFilter
	if q.ClientID != "" {
		id := q.ClientID
		f.ClientID = &id
	}
	switch q.Sent {
	case "":
	case "true", "false":
		sent := q.Sent == "true"
		f.IsSent = &sent
	default:
		return BillFilter{}, validator.ValidationErrors{{Field: "sent", Message: "sent must be true or false"}}
	}
	return f, nil
}

type BillResponse struct {
	ID                string          `json:"id"`
	ClientID          *string         `json:"client_id,omitempty"`
	ClientDetails     string          `json:"client_details"`
	BillDate          string          `json:"bill_date"`
	DueDate           *string         `json:"due_date,omitempty"`
	Items             []Item          `json:"items"`
	AdditionalCharges []Charge        `json:"additional_charges"`
	TaxPercent        decimal.Decimal `json:"tax_percent"`
	Notes             string          `json:"notes"`
	IsSent            bool            `json:"is_sent"`
	SentAt            *string         `json:"sent_at,omitempty"`
	Totals
	CreatedAt string `json:"created_at"`
}

func ToResponse(b Bill) BillResponse {
	resp := BillResponse{
		ID:                b.ID,
		ClientID:          b.ClientID,
		ClientDetails:     b.ClientDetails,
		BillDate:          b.BillDate.Format(dateLayout),
		Items:             b.Items,
		AdditionalCharges: b.AdditionalCharges,
		TaxPercent:        b.TaxPercent,
		Notes:             b.Notes,
		IsSent:            b.IsSent,
		Totals:            b.Totals(),
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
	}
	if resp.Items == nil {
		resp.Items = []Item{}
	}
	if resp.AdditionalCharges == nil {
		resp.AdditionalCharges = []Charge{}
	}
	if b.DueDate != nil {
		d := b.DueDate.Format(dateLayout)
		resp.DueDate = &d
	}
	if b.SentAt != nil {
		s := b.SentAt.Format(time.RFC3339)
		resp.SentAt = &s
	}
	return resp
}

type ReminderResponse struct {
	BillResponse
	DaysUntilDue *int `json:"days_until_due"`
	Overdue      bool `json:"overdue"`
}
