package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

type TransactionServiceImpl struct {
	ledger.TransactionRepository
	loc *time.Location
	now func() time.Time
}

func NewTransactionService(repo ledger.TransactionRepository, loc *time.Location) ledger.TransactionService {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionServiceImpl{
		TransactionRepository: repo,
		loc:                   loc,
		now:                   time.Now,
	}
}

// Create implements ledger.TransactionService.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ledger.CreateTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	date, _ := time.Parse(dateLayout, req.Date)
	created, err := s.TransactionRepository.Create(ctx, ledger.Transaction{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Category:    ledger.Category(req.Category),
		Type:        ledger.Type(req.Type),
	})
	if err != nil {
		slog.Error("Failed to create transaction", "error", err)
		return ledger.TransactionResponse{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return ledger.ToResponse(created), nil
}

// GetByID implements ledger.TransactionService.
func (s *TransactionServiceImpl) GetByID(ctx context.Context, id string) (ledger.TransactionResponse, error) {
	t, err := s.TransactionRepository.GetByID(ctx, id)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	return ledger.ToResponse(t), nil
}

// List implements ledger.TransactionService.
func (s *TransactionServiceImpl) List(ctx context.Context, query ledger.ListTransactionsQuery) ([]ledger.TransactionResponse, error) {
	txs, err := s.Matching(ctx, query)
	if err != nil {
		return nil, err
	}
	resp := make([]ledger.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, ledger.ToResponse(t))
	}
	return resp, nil
}

// Matching implements ledger.TransactionService.
func (s *TransactionServiceImpl) Matching(ctx context.Context, query ledger.ListTransactionsQuery) ([]ledger.Transaction, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	txs, err := s.TransactionRepository.List(ctx, filter)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Update implements ledger.TransactionService.
func (s *TransactionServiceImpl) Update(ctx context.Context, id string, req ledger.UpdateTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	t, err := s.TransactionRepository.GetByID(ctx, id)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Date != nil {
		t.Date, _ = time.Parse(dateLayout, *req.Date)
	}
	if req.Category != nil {
		t.Category = ledger.Category(*req.Category)
	}
	if req.Type != nil {
		t.Type = ledger.Type(*req.Type)
	}

	updated, err := s.TransactionRepository.Update(ctx, t)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	return ledger.ToResponse(updated), nil
}

// Delete implements ledger.TransactionService.
func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) error {
	return s.TransactionRepository.Delete(ctx, id)
}

// Summary implements ledger.TransactionService.
func (s *TransactionServiceImpl) Summary(ctx context.Context, query ledger.SummaryQuery) (ledger.Summary, error) {
	months, err := query.TrendMonths()
	if err != nil {
		return ledger.Summary{}, err
	}
	txs, err := s.Matching(ctx, query.ListTransactionsQuery)
	if err != nil {
		return ledger.Summary{}, err
	}
	return Summarize(txs, s.now().In(s.loc), months), nil
}
