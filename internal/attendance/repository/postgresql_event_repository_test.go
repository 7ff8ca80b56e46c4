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

func newTestEvent(
	staffID uuid.UUID,
	direction attendanceDomain.Direction,
	occurredAt time.Time,
	fingerprint string,
) *attendanceDomain.Event {
	return &attendanceDomain.Event{
		ID:                uuid.Must(uuid.NewV7()),
		StaffID:           staffID,
		Direction:         direction,
		OccurredAt:        occurredAt,
		DeviceFingerprint: fingerprint,
		SourceToken:       "kiosk:check_in:1700000000000:123456:abcdefgh23456789",
		Status:            attendanceDomain.StatusApproved,
		CreatedAt:         time.Now().UTC(),
	}
}

func TestPostgreSQLEventRepository_CreateAndListForStaff(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLEventRepository(db)

	staffA := uuid.Must(uuid.NewV7())
	staffB := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	eventA := newTestEvent(staffA, attendanceDomain.DirectionCheckIn, now, "device-a")
	require.NoError(t, repo.Create(ctx, eventA))

	eventB := newTestEvent(staffB, attendanceDomain.DirectionCheckIn, now, "device-b")
	require.NoError(t, repo.Create(ctx, eventB))

	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	// Queries are isolated per staff member
	events, err := repo.ListForStaff(ctx, staffA, from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, eventA.ID, events[0].ID)
	assert.Equal(t, staffA, events[0].StaffID)
	assert.Equal(t, attendanceDomain.DirectionCheckIn, events[0].Direction)
	assert.Equal(t, "device-a", events[0].DeviceFingerprint)
	assert.Equal(t, attendanceDomain.StatusApproved, events[0].Status)
	assert.WithinDuration(t, eventA.OccurredAt, events[0].OccurredAt, time.Second)
}

func TestPostgreSQLEventRepository_ListForStaff_DateIsolation(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLEventRepository(db)

	staffID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	today := newTestEvent(staffID, attendanceDomain.DirectionCheckIn, now, "device-a")
	require.NoError(t, repo.Create(ctx, today))

	yesterday := newTestEvent(staffID, attendanceDomain.DirectionCheckIn, now.Add(-24*time.Hour), "device-a")
	require.NoError(t, repo.Create(ctx, yesterday))

	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	events, err := repo.ListForStaff(ctx, staffID, from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, today.ID, events[0].ID)
}

func TestPostgreSQLEventRepository_ListForDevice(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLEventRepository(db)

	staffA := uuid.Must(uuid.NewV7())
	staffB := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	shared := newTestEvent(staffA, attendanceDomain.DirectionCheckIn, now, "shared-device")
	require.NoError(t, repo.Create(ctx, shared))

	other := newTestEvent(staffB, attendanceDomain.DirectionCheckIn, now, "other-device")
	require.NoError(t, repo.Create(ctx, other))

	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	events, err := repo.ListForDevice(ctx, "shared-device", from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, staffA, events[0].StaffID)
}

func TestPostgreSQLEventRepository_ListBetween_Ordering(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLEventRepository(db)

	staffID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	checkOut := newTestEvent(staffID, attendanceDomain.DirectionCheckOut, now, "device-a")
	require.NoError(t, repo.Create(ctx, checkOut))

	checkIn := newTestEvent(staffID, attendanceDomain.DirectionCheckIn, now.Add(-8*time.Hour), "device-a")
	require.NoError(t, repo.Create(ctx, checkIn))

	events, err := repo.ListBetween(ctx, now.Add(-12*time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Oldest first regardless of insertion order
	assert.Equal(t, checkIn.ID, events[0].ID)
	assert.Equal(t, checkOut.ID, events[1].ID)
}
