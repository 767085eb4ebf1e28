package ledger

import "context"

type TransactionService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	GetByID(ctx context.Context, id string) (TransactionResponse, error)
	List(ctx context.Context, query ListTransactionsQuery) ([]TransactionResponse, error)
	Update(ctx context.Context, id string, req UpdateTransactionRequest) (TransactionResponse, error)
	Delete(ctx context.Context, id string) error

	Summary(ctx context.Context, query SummaryQuery) (Summary, error)
	// Matching returns the filtered entities, for exports.
	Matching(ctx context.Context, query ListTransactionsQuery) ([]Transaction, error)
}
