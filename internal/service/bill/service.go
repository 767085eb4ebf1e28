package bill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/client"
)

const dateLayout = "2006-01-02"

type BillServiceImpl struct {
	bill.BillRepository
	client.ClientRepository
	loc *time.Location
	now func() time.Time
}

func NewBillService(billRepo bill.BillRepository, clientRepo client.ClientRepository, loc *time.Location) bill.BillService {
	if loc == nil {
		loc = time.UTC
	}
	return &BillServiceImpl{
		BillRepository:   billRepo,
		ClientRepository: clientRepo,
		loc:              loc,
		now:              time.Now,
	}
}

func (s *BillServiceImpl) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// clientDetails falls back to the linked client's card when no details were typed in.
func (s *BillServiceImpl) clientDetails(ctx context.Context, clientID *string, details string) (string, error) {
	if clientID == nil {
		return strings.TrimSpace(details), nil
	}
	c, err := s.ClientRepository.GetByID(ctx, *clientID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(details) != "" {
		return strings.TrimSpace(details), nil
	}
	parts := []string{c.Name}
	for _, p := range []string{c.CompanyName, c.Location, c.PhoneNumber} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Create implements bill.BillService.
func (s *BillServiceImpl) Create(ctx context.Context, req bill.CreateBillRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}

	details, err := s.clientDetails(ctx, req.ClientID, req.ClientDetails)
	if err != nil {
		return bill.BillResponse{}, err
	}

	b := bill.Bill{
		ClientID:          req.ClientID,
		ClientDetails:     details,
		Items:             req.Items,
		AdditionalCharges: req.AdditionalCharges,
		TaxPercent:        req.TaxPercent,
		Notes:             req.Notes,
	}
	b.BillDate, _ = time.Parse(dateLayout, req.BillDate)
	if req.DueDate != nil && *req.DueDate != "" {
		d, _ := time.Parse(dateLayout, *req.DueDate)
		b.DueDate = &d
	}

	created, err := s.BillRepository.Create(ctx, b)
	if err != nil {
		slog.Error("Failed to create bill", "error", err)
		return bill.BillResponse{}, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill.ToResponse(created), nil
}

// GetByID implements bill.BillService.
func (s *BillServiceImpl) GetByID(ctx context.Context, id string) (bill.BillResponse, error) {
	b, err := s.BillRepository.GetByID(ctx, id)
	if err != nil {
		return bill.BillResponse{}, err
	}
	return bill.ToResponse(b), nil
}

// List implements bill.BillService.
func (s *BillServiceImpl) List(ctx context.Context, query bill.ListBillsQuery) ([]bill.BillResponse, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	bills, err := s.BillRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	resp := make([]bill.BillResponse, 0, len(bills))
	for _, b := range bills {
		resp = append(resp, bill.ToResponse(b))
	}
	return resp, nil
}

// Update implements bill.BillService.
func (s *BillServiceImpl) Update(ctx context.Context, id string, req bill.UpdateBillRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}

	b, err := s.BillRepository.GetByID(ctx, id)
	if err != nil {
		return bill.BillResponse{}, err
	}

	if req.ClientID != nil {
		b.ClientID = req.ClientID
	}
	if req.ClientDetails != nil || req.ClientID != nil {
		details := b.ClientDetails
		if req.ClientDetails != nil {
			details = *req.ClientDetails
		}
		if b.ClientDetails, err = s.clientDetails(ctx, b.ClientID, details); err != nil {
			return bill.BillResponse{}, err
		}
	}
	if req.BillDate != nil {
		b.BillDate, _ = time.Parse(dateLayout, *req.BillDate)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			b.DueDate = nil
		} else {
			d, _ := time.Parse(dateLayout, *req.DueDate)
			b.DueDate = &d
		}
	}
	if b.DueDate != nil && b.DueDate.Before(b.BillDate) {
		return bill.BillResponse{}, bill.ErrDueBeforeBillDate
	}
	if req.Items != nil {
		b.Items = req.Items
	}
	if req.AdditionalCharges != nil {
		b.AdditionalCharges = req.AdditionalCharges
	}
	if req.TaxPercent != nil {
		b.TaxPercent = *req.TaxPercent
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	updated, err := s.BillRepository.Update(ctx, b)
	if err != nil {
		return bill.BillResponse{}, err
	}
	return bill.ToResponse(updated), nil
}

// Delete implements bill.BillService.
func (s *BillServiceImpl) Delete(ctx context.Context, id string) error {
	return s.BillRepository.Delete(ctx, id)
}

// MarkSent implements bill.BillService.
func (s *BillServiceImpl) MarkSent(ctx context.Context, id string) (bill.BillResponse, error) {
	b, err := s.BillRepository.GetByID(ctx, id)
	if err != nil {
		return bill.BillResponse{}, err
	}
	if b.IsSent {
		return bill.BillResponse{}, bill.ErrBillAlreadySent
	}

	sentAt := s.now()
	if err := s.BillRepository.MarkSent(ctx, id, sentAt); err != nil {
		return bill.BillResponse{}, err
	}
	b.IsSent = true
	b.SentAt = &sentAt
	return bill.ToResponse(b), nil
}

// Reminders implements bill.BillService.
func (s *BillServiceImpl) Reminders(ctx context.Context) ([]bill.ReminderResponse, error) {
	bills, err := s.BillRepository.ListUnsent(ctx)
	if err != nil {
		slog.Error("Failed to list unsent bills", "error", err)
		return nil, fmt.Errorf("failed to list unsent bills: %w", err)
	}
	return Standing(bills, s.today()), nil
}

// Standing attaches days-until-due to each unsent bill. Bills are expected in due
// date order.
func Standing(bills []bill.Bill, today time.Time) []bill.ReminderResponse {
	out := make([]bill.ReminderResponse, 0, len(bills))
	for _, b := range bills {
		r := bill.ReminderResponse{BillResponse: bill.ToResponse(b)}
		if b.DueDate != nil {
			days := int(b.DueDate.Sub(today).Hours() / 24)
			r.DaysUntilDue = &days
			r.Overdue = days < 0
		}
		out = append(out, r)
	}
	return out
}
