package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new Token into the MySQL database using BINARY(16) for UUIDs.
// Returns an error if UUID marshaling or database insertion fails.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *tokenDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (id, value, kind, expires_at, assigned_staff_id, used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	assignedStaffID, err := binaryUUIDOrNil(token.AssignedStaffID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal assigned staff id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.Value,
		token.Kind,
		token.ExpiresAt,
		assignedStaffID,
		token.UsedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByValue retrieves a Token by its exact wire value. Returns ErrTokenNotFound
// if no token with that value exists.
func (m *MySQLTokenRepository) GetByValue(
	ctx context.Context,
	value string,
) (*tokenDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens WHERE value = ?`

	token, err := scanMySQLToken(querier.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

// Consume atomically marks a token as used via the same check-and-set UPDATE
// as the PostgreSQL repository. Returns false when the token is absent or
// already consumed.
func (m *MySQLTokenRepository) Consume(
	ctx context.Context,
	value string,
	usedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tokens SET used_at = ? WHERE value = ? AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, usedAt, value)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to consume token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read consume result")
	}

	return affected == 1, nil
}

// DeleteOlderThan removes tokens created before the cutoff.
func (m *MySQLTokenRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete old tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read delete result")
	}

	return affected, nil
}

// CountOlderThan counts tokens created before the cutoff without deleting them.
func (m *MySQLTokenRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE created_at < ?`, cutoff).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count old tokens")
	}

	return count, nil
}

// ListActiveKiosk returns unexpired, unconsumed kiosk-family tokens, newest first.
func (m *MySQLTokenRepository) ListActiveKiosk(
	ctx context.Context,
	now time.Time,
) ([]*tokenDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens
			  WHERE kind IN (?, ?) AND expires_at > ? AND used_at IS NULL
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(
		ctx,
		query,
		tokenDomain.KindKioskCheckIn,
		tokenDomain.KindKioskCheckOut,
		now,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active kiosk tokens")
	}
	defer func() { _ = rows.Close() }()

	var tokens []*tokenDomain.Token
	for rows.Next() {
		token, err := scanMySQLToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate kiosk tokens")
	}

	return tokens, nil
}

// scanMySQLToken scans token columns with BINARY(16) UUID decoding.
func scanMySQLToken(scanner rowScanner) (*tokenDomain.Token, error) {
	var token tokenDomain.Token
	var idBytes []byte
	var assignedStaffBytes []byte

	err := scanner.Scan(
		&idBytes,
		&token.Value,
		&token.Kind,
		&token.ExpiresAt,
		&assignedStaffBytes,
		&token.UsedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan token")
	}

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}

	if len(assignedStaffBytes) > 0 {
		var assignedStaffID uuid.UUID
		if err := assignedStaffID.UnmarshalBinary(assignedStaffBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal assigned staff id")
		}
		token.AssignedStaffID = &assignedStaffID
	}

	return &token, nil
}

// binaryUUIDOrNil converts an optional UUID reference to a BINARY(16) driver value.
func binaryUUIDOrNil(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}
