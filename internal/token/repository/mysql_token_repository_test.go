package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

func newMockDB(t *testing.T) (*MySQLTokenRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewMySQLTokenRepository(db), mock
}

func TestMySQLTokenRepository_Consume_FirstUse(t *testing.T) {
	repo, mock := newMockDB(t)

	usedAt := time.Now().UTC()
	value := "re_entry:1700000000000:123456:abcdefgh23456789"

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE tokens SET used_at = ? WHERE value = ? AND used_at IS NULL`,
	)).
		WithArgs(usedAt, value).
		WillReturnResult(sqlmock.NewResult(0, 1))

	consumed, err := repo.Consume(context.Background(), value, usedAt)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTokenRepository_Consume_AlreadyUsed(t *testing.T) {
	repo, mock := newMockDB(t)

	usedAt := time.Now().UTC()
	value := "re_entry:1700000000000:123456:abcdefgh23456789"

	// The used_at IS NULL guard means a second presentation affects zero rows
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE tokens SET used_at = ? WHERE value = ? AND used_at IS NULL`,
	)).
		WithArgs(usedAt, value).
		WillReturnResult(sqlmock.NewResult(0, 0))

	consumed, err := repo.Consume(context.Background(), value, usedAt)
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTokenRepository_GetByValue(t *testing.T) {
	repo, mock := newMockDB(t)

	id := uuid.Must(uuid.NewV7())
	idBytes, err := id.MarshalBinary()
	require.NoError(t, err)

	staffID := uuid.Must(uuid.NewV7())
	staffBytes, err := staffID.MarshalBinary()
	require.NoError(t, err)

	now := time.Now().UTC()
	value := "admin_reentry:1700000000000:654321:abcdefgh23456789"

	rows := sqlmock.NewRows([]string{
		"id", "value", "kind", "expires_at", "assigned_staff_id", "used_at", "created_at",
	}).AddRow(idBytes, value, string(tokenDomain.KindAdminReentry), now.Add(5*time.Minute), staffBytes, nil, now)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens WHERE value = ?`,
	)).
		WithArgs(value).
		WillReturnRows(rows)

	token, err := repo.GetByValue(context.Background(), value)
	require.NoError(t, err)
	assert.Equal(t, id, token.ID)
	assert.Equal(t, tokenDomain.KindAdminReentry, token.Kind)
	require.NotNil(t, token.AssignedStaffID)
	assert.Equal(t, staffID, *token.AssignedStaffID)
	assert.Nil(t, token.UsedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTokenRepository_GetByValue_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, value, kind, expires_at, assigned_staff_id, used_at, created_at
			  FROM tokens WHERE value = ?`,
	)).
		WithArgs("kiosk:check_in:0:000000:missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "value", "kind", "expires_at", "assigned_staff_id", "used_at", "created_at",
		}))

	token, err := repo.GetByValue(context.Background(), "kiosk:check_in:0:000000:missing")
	assert.Nil(t, token)
	assert.ErrorIs(t, err, tokenDomain.ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLTokenRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := newMockDB(t)

	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tokens WHERE created_at < ?`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
