package ledger

import "context"

type TransactionRepository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Update(ctx context.Context, t Transaction) (Transaction, error)
	Delete(ctx context.Context, id string) error
	// List returns matching transactions, newest date first.
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
}
