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

// MySQLStaffRepository handles staff persistence for MySQL with BINARY(16) UUIDs.
type MySQLStaffRepository struct {
	db *sql.DB
}

// NewMySQLStaffRepository creates a new MySQLStaffRepository.
func NewMySQLStaffRepository(db *sql.DB) *MySQLStaffRepository {
	return &MySQLStaffRepository{db: db}
}

// Create inserts a new staff member.
func (r *MySQLStaffRepository) Create(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, r.db)

	id, err := staff.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	query := `INSERT INTO staff (id, display_name, email, role, locked_out, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (r *MySQLStaffRepository) Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal staff id")
	}

	query := `SELECT id, display_name, email, role, locked_out, created_at
			  FROM staff WHERE id = ?`

	return scanMySQLStaff(querier.QueryRowContext(ctx, query, idBytes))
}

// List returns staff members ordered by creation time.
func (r *MySQLStaffRepository) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, display_name, email, role, locked_out, created_at
			  FROM staff ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff")
	}
	defer func() { _ = rows.Close() }()

	var result []*staffDomain.Staff
	for rows.Next() {
		staff, err := scanMySQLStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate staff")
	}

	return result, nil
}

// SetLockout updates the lockout flag. Returns ErrStaffNotFound when the
// staff member does not exist.
func (r *MySQLStaffRepository) SetLockout(ctx context.Context, id uuid.UUID, lockedOut bool) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	result, err := querier.ExecContext(
		ctx,
		`UPDATE staff SET locked_out = ? WHERE id = ?`,
		lockedOut,
		idBytes,
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
// member does not exist.
func (r *MySQLStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, idBytes)
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

// mysqlRowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type mysqlRowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLStaff scans staff columns with BINARY(16) UUID decoding.
func scanMySQLStaff(scanner mysqlRowScanner) (*staffDomain.Staff, error) {
	var staff staffDomain.Staff
	var idBytes []byte

	err := scanner.Scan(
		&idBytes,
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
		return nil, apperrors.Wrap(err, "failed to scan staff member")
	}

	if err := staff.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal staff id")
	}

	return &staff, nil
}
