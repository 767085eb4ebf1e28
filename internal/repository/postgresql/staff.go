package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, department, position, email, phone, joined_on, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.StaffMember, error) {
	var m staff.StaffMember
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Department,
		&m.Position,
		&m.Email,
		&m.Phone,
		&m.JoinedOn,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (id, name, department, position, email, phone, joined_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + staffColumns

	created, err := scanStaff(q.QueryRow(ctx, query,
		uuid.New().String(),
		m.Name,
		m.Department,
		m.Position,
		m.Email,
		m.Phone,
		m.JoinedOn,
		time.Now(),
	))
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("failed to create staff member: %w", err)
	}
	return created, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanStaff(q.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member %s: %w", id, err)
	}
	return m, nil
}

// List implements staff.StaffRepository.
func (r *staffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR position ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, filter.Department)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM staff WHERE %s ORDER BY name, id`, staffColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	members := make([]staff.StaffMember, 0)
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET name = $1, department = $2, position = $3, email = $4, phone = $5, joined_on = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + staffColumns

	updated, err := scanStaff(q.QueryRow(ctx, query,
		m.Name,
		m.Department,
		m.Position,
		m.Email,
		m.Phone,
		m.JoinedOn,
		m.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to update staff member %s: %w", m.ID, err)
	}
	return updated, nil
}

// Delete implements staff.StaffRepository. The attendance foreign key has no cascade, so
// a referenced member is reported as ErrStaffHasAttendance.
func (r *staffRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return staff.ErrStaffHasAttendance
		}
		return fmt.Errorf("failed to delete staff member %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// HasAttendance implements staff.StaffRepository.
func (r *staffRepository) HasAttendance(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendance_records WHERE staff_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
