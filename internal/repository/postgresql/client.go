package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type clientRepository struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, client_name, company_name, phone_number, location, created_at, updated_at`

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ClientName,
		&c.CompanyName,
		&c.PhoneNumber,
		&c.Location,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements client.ClientRepository.
func (r *clientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (id, name, client_name, company_name, phone_number, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + clientColumns

	created, err := scanClient(q.QueryRow(ctx, query,
		uuid.New().String(),
		c.Name,
		c.ClientName,
		c.CompanyName,
		c.PhoneNumber,
		c.Location,
		time.Now(),
	))
	if err != nil {
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

// GetByID implements client.ClientRepository.
func (r *clientRepository) GetByID(ctx context.Context, id string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanClient(q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client %s: %w", id, err)
	}
	return c, nil
}

// List implements client.ClientRepository.
func (r *clientRepository) List(ctx context.Context, search string) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR client_name ILIKE '%' || $1 || '%' OR company_name ILIKE '%' || $1 || '%'
		ORDER BY name, id
	`
	rows, err := q.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]client.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Update implements client.ClientRepository.
func (r *clientRepository) Update(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clients
		SET name = $1, client_name = $2, company_name = $3, phone_number = $4, location = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + clientColumns

	updated, err := scanClient(q.QueryRow(ctx, query,
		c.Name,
		c.ClientName,
		c.CompanyName,
		c.PhoneNumber,
		c.Location,
		c.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to update client %s: %w", c.ID, err)
	}
	return updated, nil
}

// Delete implements client.ClientRepository. Bills keep their copied client details and
// lose only the link.
func (r *clientRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}
