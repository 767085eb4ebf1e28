package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) ledger.TransactionRepository {
	return &transactionRepository{db: db}
}

// Amounts are NUMERIC and travel as text so no precision is lost on either side.
const transactionColumns = `id, title, description, amount::text, date, category, type, created_at, updated_at`

func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var (
		t      ledger.Transaction
		amount string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&amount,
		&t.Date,
		&t.Category,
		&t.Type,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	if err := t.Amount.Scan(amount); err != nil {
		return t, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	t.Date = time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
	return t, nil
}

// Create implements ledger.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transactions (id, title, description, amount, date, category, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $8)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(q.QueryRow(ctx, query,
		uuid.New().String(),
		t.Title,
		t.Description,
		t.Amount.String(),
		t.Date.Format("2006-01-02"),
		t.Category,
		t.Type,
		time.Now(),
	))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

// GetByID implements ledger.TransactionRepository.
func (r *transactionRepository) GetByID(ctx context.Context, id string) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTransaction(q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Transaction{}, ledger.ErrTransactionNotFound
		}
		return ledger.Transaction{}, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return t, nil
}

// Update implements ledger.TransactionRepository.
func (r *transactionRepository) Update(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE transactions
		SET title = $1, description = $2, amount = $3::numeric, date = $4, category = $5, type = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + transactionColumns

	updated, err := scanTransaction(q.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Amount.String(),
		t.Date.Format("2006-01-02"),
		t.Category,
		t.Type,
		t.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Transaction{}, ledger.ErrTransactionNotFound
		}
		return ledger.Transaction{}, fmt.Errorf("failed to update transaction %s: %w", t.ID, err)
	}
	return updated, nil
}

// Delete implements ledger.TransactionRepository.
func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

// List implements ledger.TransactionRepository.
func (r *transactionRepository) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, filter.From.Format("2006-01-02"))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, filter.To.Format("2006-01-02"))
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY date DESC, created_at DESC`, transactionColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]ledger.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
