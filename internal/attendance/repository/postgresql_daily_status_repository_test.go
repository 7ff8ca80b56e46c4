package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/testutil"
)

func TestPostgreSQLDailyStatusRepository_Get_OpenByDefault(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLDailyStatusRepository(db)

	status, err := repo.Get(context.Background(), "2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", status.Date)
	assert.False(t, status.IsClosed)
	assert.Nil(t, status.ClosedBy)
	assert.Nil(t, status.ClosedAt)
}

func TestPostgreSQLDailyStatusRepository_Close(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLDailyStatusRepository(db)

	closedBy := uuid.Must(uuid.NewV7())
	closedAt := time.Now().UTC()

	require.NoError(t, repo.Close(ctx, "2026-03-10", &closedBy, closedAt))

	status, err := repo.Get(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, status.IsClosed)
	require.NotNil(t, status.ClosedBy)
	assert.Equal(t, closedBy, *status.ClosedBy)
	require.NotNil(t, status.ClosedAt)
	assert.WithinDuration(t, closedAt, *status.ClosedAt, time.Second)

	closed, err := repo.IsDayClosed(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, closed)

	// Other days stay open
	closed, err = repo.IsDayClosed(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestPostgreSQLDailyStatusRepository_Close_Twice(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLDailyStatusRepository(db)

	require.NoError(t, repo.Close(ctx, "2026-03-10", nil, time.Now().UTC()))

	err := repo.Close(ctx, "2026-03-10", nil, time.Now().UTC())
	assert.ErrorIs(t, err, attendanceDomain.ErrDayAlreadyClosed)
}
