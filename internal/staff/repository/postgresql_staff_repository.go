// Package repository implements staff persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
)

// PostgreSQLStaffRepository handles staff persistence for PostgreSQL.
type PostgreSQLStaffRepository struct {
	db *sql.DB
}

// NewPostgreSQLStaffRepository creates a new PostgreSQLStaffRepository.
func NewPostgreSQLStaffRepository(db *sql.DB) *PostgreSQLStaffRepository {
	return &PostgreSQLStaffRepository{db: db}
}

// Create inserts a new staff member.
func (r *PostgreSQLStaffRepository) Create(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO staff (id, display_name, email, role, locked_out, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		staff.ID,
		staff.DisplayName,
		staff.Email,
		staff.Role,
		staff.LockedOut,
		staff.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create staff member")
	}
	return nil
}

// Get retrieves a staff member by ID. Returns ErrStaffNotFound if not found.
func (r *PostgreSQLStaffRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, display_name, email, role, locked_out, created_at
			  FROM staff WHERE id = $1`

	var staff staffDomain.Staff
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&staff.ID,
		&staff.DisplayName,
		&staff.Email,
		&staff.Role,
		&staff.LockedOut,
		&staff.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, staffDomain.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get staff member")
	}

	return &staff, nil
}

// List returns staff members ordered by creation time.
func (r *PostgreSQLStaffRepository) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, display_name, email, role, locked_out, created_at
			  FROM staff ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff")
	}
	defer func() { _ = rows.Close() }()

	var result []*staffDomain.Staff
	for rows.Next() {
		var staff staffDomain.Staff
		err := rows.Scan(
			&staff.ID,
			&staff.DisplayName,
			&staff.Email,
			&staff.Role,
			&staff.LockedOut,
			&staff.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan staff member")
		}
		result = append(result, &staff)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate staff")
	}

	return result, nil
}

// SetLockout updates the lockout flag. Returns ErrStaffNotFound when the
// staff member does not exist.
func (r *PostgreSQLStaffRepository) SetLockout(
	ctx context.Context,
	id uuid.UUID,
	lockedOut bool,
) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE staff SET locked_out = $2 WHERE id = $1`,
		id,
		lockedOut,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to set lockout")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read lockout result")
	}
	if affected == 0 {
		return staffDomain.ErrStaffNotFound
	}
	return nil
}

// Delete removes a staff member. Returns ErrStaffNotFound when the staff
// member does not exist. Attendance events are kept; only assigned unredeemed
// tokens cascade away.
func (r *PostgreSQLStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete staff member")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read delete result")
	}
	if affected == 0 {
		return staffDomain.ErrStaffNotFound
	}
	return nil
}
