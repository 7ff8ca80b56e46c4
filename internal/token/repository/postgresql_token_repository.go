// Package repository implements token persistence for PostgreSQL and MySQL.
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

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new Token into the PostgreSQL database. Uses transaction support
// via database.GetTx(). Returns an error if database insertion fails.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *tokenDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, value, kind, expires_at, assigned_staff_id, used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.Value,
		token.Kind,
		token.ExpiresAt,
		uuidOrNil(token.AssignedStaffID),
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
func (p *PostgreSQLTokenRepository) GetByValue(
	ctx context.Context,
	value string,
) (*tokenDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens WHERE value = $1`

	return scanToken(querier.QueryRowContext(ctx, query, value))
}

// Consume atomically marks a token as used. The WHERE clause is the check-and-set:
// of two concurrent presentations of the same value, exactly one sees a row
// affected. Returns false when the token is absent or already consumed.
func (p *PostgreSQLTokenRepository) Consume(
	ctx context.Context,
	value string,
	usedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens SET used_at = $2 WHERE value = $1 AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, value, usedAt)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to consume token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read consume result")
	}

	return affected == 1, nil
}

// DeleteOlderThan removes tokens created before the cutoff. Deleting when
// nothing matches is a no-op, never an error.
func (p *PostgreSQLTokenRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE created_at < $1`, cutoff)
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
// Used for dry-run cleanup.
func (p *PostgreSQLTokenRepository) CountOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE created_at < $1`, cutoff).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count old tokens")
	}

	return count, nil
}

// ListActiveKiosk returns unexpired, unconsumed kiosk-family tokens, newest
// first. Used to resolve manual fallback codes to full token values.
func (p *PostgreSQLTokenRepository) ListActiveKiosk(
	ctx context.Context,
	now time.Time,
) ([]*tokenDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens
			  WHERE kind IN ($1, $2) AND expires_at > $3 AND used_at IS NULL
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
		token, err := scanTokenRow(rows)
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

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanToken scans a single-row query result into a Token.
func scanToken(row *sql.Row) (*tokenDomain.Token, error) {
	token, err := scanTokenRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

// scanTokenRow scans token columns in select order, handling the nullable
// assigned staff reference.
func scanTokenRow(scanner rowScanner) (*tokenDomain.Token, error) {
	var token tokenDomain.Token
	var assignedStaffID uuid.NullUUID

	err := scanner.Scan(
		&token.ID,
		&token.Value,
		&token.Kind,
		&token.ExpiresAt,
		&assignedStaffID,
		&token.UsedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan token")
	}

	if assignedStaffID.Valid {
		id := assignedStaffID.UUID
		token.AssignedStaffID = &id
	}

	return &token, nil
}

// uuidOrNil converts an optional UUID reference to a driver value.
func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
