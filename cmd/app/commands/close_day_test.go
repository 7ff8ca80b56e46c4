package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
)

func TestRunCloseDay(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	adminID := uuid.Must(uuid.NewV7())

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &MockCloseDayUseCase{}
		mockUseCase.On("CloseDay", ctx, "2026-08-30", &adminID).
			Return(&attendanceUseCase.CloseDayOutput{Date: "2026-08-30", AutoCheckoutCount: 3}, nil)

		var out bytes.Buffer
		err := RunCloseDay(ctx, mockUseCase, logger, &out, "2026-08-30", adminID.String(), "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Day 2026-08-30 closed")
		require.Contains(t, out.String(), "3 staff member(s) auto-checked-out")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("default-date-json", func(t *testing.T) {
		mockUseCase := &MockCloseDayUseCase{}
		mockUseCase.On("CloseDay", ctx, "", (*uuid.UUID)(nil)).
			Return(&attendanceUseCase.CloseDayOutput{Date: "2026-08-30", AutoCheckoutCount: 0}, nil)

		var out bytes.Buffer
		err := RunCloseDay(ctx, mockUseCase, logger, &out, "", "", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"date": "2026-08-30"`)
		require.Contains(t, out.String(), `"auto_checkout_count": 0`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-closed-by", func(t *testing.T) {
		mockUseCase := &MockCloseDayUseCase{}
		err := RunCloseDay(ctx, mockUseCase, logger, &bytes.Buffer{}, "2026-08-30", "not-a-uuid", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid closed-by ID")
		mockUseCase.AssertNotCalled(t, "CloseDay")
	})

	t.Run("already-closed", func(t *testing.T) {
		mockUseCase := &MockCloseDayUseCase{}
		mockUseCase.On("CloseDay", ctx, "2026-08-30", (*uuid.UUID)(nil)).
			Return(nil, attendanceDomain.ErrDayAlreadyClosed)

		err := RunCloseDay(ctx, mockUseCase, logger, &bytes.Buffer{}, "2026-08-30", "", "text")

		require.Error(t, err)
		require.ErrorIs(t, err, attendanceDomain.ErrDayAlreadyClosed)
	})
}
