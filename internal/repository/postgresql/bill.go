package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type billRepository struct {
	db *database.DB
}

func NewBillRepository(db *database.DB) bill.BillRepository {
	return &billRepository{db: db}
}

// Items and additional charges live in JSONB columns; decimals marshal as strings.
const billColumns = `id, client_id, client_details, bill_date, due_date, items, additional_charges,
	tax_percent::text, notes, is_sent, sent_at, created_at, updated_at`

func scanBill(row pgx.Row) (bill.Bill, error) {
	var (
		b          bill.Bill
		itemsJSON  []byte
		chargeJSON []byte
		taxPercent string
	)
	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.ClientDetails,
		&b.BillDate,
		&b.DueDate,
		&itemsJSON,
		&chargeJSON,
		&taxPercent,
		&b.Notes,
		&b.IsSent,
		&b.SentAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}

	if err := json.Unmarshal(itemsJSON, &b.Items); err != nil {
		return b, fmt.Errorf("failed to decode bill items: %w", err)
	}
	if err := json.Unmarshal(chargeJSON, &b.AdditionalCharges); err != nil {
		return b, fmt.Errorf("failed to decode additional charges: %w", err)
	}
	if err := b.TaxPercent.Scan(taxPercent); err != nil {
		return b, fmt.Errorf("invalid tax percent %q: %w", taxPercent, err)
	}
	b.BillDate = b.BillDate.UTC()
	if b.DueDate != nil {
		due := b.DueDate.UTC()
		b.DueDate = &due
	}
	return b, nil
}

func encodeLines(b bill.Bill) ([]byte, []byte, error) {
	items := b.Items
	if items == nil {
		items = []bill.Item{}
	}
	charges := b.AdditionalCharges
	if charges == nil {
		charges = []bill.Charge{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode bill items: %w", err)
	}
	chargeJSON, err := json.Marshal(charges)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode additional charges: %w", err)
	}
	return itemsJSON, chargeJSON, nil
}

func dateArg(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// Create implements bill.BillRepository.
func (r *billRepository) Create(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, chargeJSON, err := encodeLines(b)
	if err != nil {
		return bill.Bill{}, err
	}

	query := `
		INSERT INTO bills (id, client_id, client_details, bill_date, due_date, items, additional_charges,
			tax_percent, notes, is_sent, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8::numeric, $9, $10, $11, $12, $12)
		RETURNING ` + billColumns

	created, err := scanBill(q.QueryRow(ctx, query,
		uuid.New().String(),
		b.ClientID,
		b.ClientDetails,
		b.BillDate.Format("2006-01-02"),
		dateArg(b.DueDate),
		itemsJSON,
		chargeJSON,
		b.TaxPercent.String(),
		b.Notes,
		b.IsSent,
		b.SentAt,
		time.Now(),
	))
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to create bill: %w", err)
	}
	return created, nil
}

// GetByID implements bill.BillRepository.
func (r *billRepository) GetByID(ctx context.Context, id string) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBill(q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return bill.Bill{}, bill.ErrBillNotFound
		}
		return bill.Bill{}, fmt.Errorf("failed to get bill %s: %w", id, err)
	}
	return b, nil
}

// List implements bill.BillRepository.
func (r *billRepository) List(ctx context.Context, filter bill.BillFilter) ([]bill.Bill, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, *filter.ClientID)
		argIdx++
	}
	if filter.IsSent != nil {
		conditions = append(conditions, fmt.Sprintf("is_sent = $%d", argIdx))
		args = append(args, *filter.IsSent)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM bills WHERE %s ORDER BY bill_date DESC, created_at DESC`, billColumns, strings.Join(conditions, " AND "))
	return r.list(ctx, query, args...)
}

// ListUnsent implements bill.BillRepository.
func (r *billRepository) ListUnsent(ctx context.Context) ([]bill.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE NOT is_sent ORDER BY due_date ASC NULLS LAST, bill_date, id`
	return r.list(ctx, query)
}

func (r *billRepository) list(ctx context.Context, query string, args ...interface{}) ([]bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]bill.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// Update implements bill.BillRepository.
func (r *billRepository) Update(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, chargeJSON, err := encodeLines(b)
	if err != nil {
		return bill.Bill{}, err
	}

	query := `
		UPDATE bills
		SET client_id = $1, client_details = $2, bill_date = $3, due_date = $4::date, items = $5,
			additional_charges = $6, tax_percent = $7::numeric, notes = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING ` + billColumns

	updated, err := scanBill(q.QueryRow(ctx, query,
		b.ClientID,
		b.ClientDetails,
		b.BillDate.Format("2006-01-02"),
		dateArg(b.DueDate),
		itemsJSON,
		chargeJSON,
		b.TaxPercent.String(),
		b.Notes,
		b.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return bill.Bill{}, bill.ErrBillNotFound
		}
		return bill.Bill{}, fmt.Errorf("failed to update bill %s: %w", b.ID, err)
	}
	return updated, nil
}

// Delete implements bill.BillRepository.
func (r *billRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}

// MarkSent implements bill.BillRepository. Only an unsent bill changes; a bill that is
// already sent reports ErrBillAlreadySent.
func (r *billRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE bills
		SET is_sent = TRUE, sent_at = $1, updated_at = NOW()
		WHERE id = $2 AND NOT is_sent
	`, sentAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark bill %s as sent: %w", id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bills WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check bill %s: %w", id, err)
	}
	if !exists {
		return bill.ErrBillNotFound
	}
	return bill.ErrBillAlreadySent
}
