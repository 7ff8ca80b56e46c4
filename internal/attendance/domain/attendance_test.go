package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinichq/attend/internal/errors"
)

func TestDirection_Valid(t *testing.T) {
	assert.True(t, DirectionCheckIn.Valid())
	assert.True(t, DirectionCheckOut.Valid())
	assert.False(t, Direction("sideways").Valid())
	assert.False(t, Direction("").Valid())
}

func TestDateKey(t *testing.T) {
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	// 23:30 UTC is already the next civil day in Istanbul (UTC+3)
	at := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-11", DateKey(at, istanbul))
	assert.Equal(t, "2026-03-10", DateKey(at, time.UTC))
}

func TestDayBounds(t *testing.T) {
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := DayBounds(at, istanbul)

	// Istanbul midnight is 21:00 UTC the previous day
	assert.Equal(t, time.Date(2026, 3, 9, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC), end)
	assert.True(t, !at.Before(start) && at.Before(end))
}

func TestBoundsForDate(t *testing.T) {
	t.Run("ValidDate", func(t *testing.T) {
		start, end, err := BoundsForDate("2026-03-10", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("InvalidDate", func(t *testing.T) {
		_, _, err := BoundsForDate("10/03/2026", time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestAttendanceErrors(t *testing.T) {
	assert.ErrorIs(t, ErrDeviceReuse, apperrors.ErrForbidden)
	assert.ErrorIs(t, ErrDuplicateCheckIn, apperrors.ErrForbidden)
	assert.ErrorIs(t, ErrDayAlreadyClosed, apperrors.ErrConflict)
	assert.ErrorIs(t, ErrInvalidDirection, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, ErrInvalidDate, apperrors.ErrInvalidInput)
}
