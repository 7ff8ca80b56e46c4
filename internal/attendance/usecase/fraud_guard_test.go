package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/attend/internal/attendance/domain"
)

func TestFraudGuard_CheckDevice(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 8, 29, 21, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	t.Run("Success_NoPriorEvents", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		guard := NewFraudGuard(eventRepo)
		staffID := uuid.Must(uuid.NewV7())

		eventRepo.On("ListForDevice", ctx, "fp", from, to).
			Return([]*domain.Event{}, nil).Once()

		err := guard.CheckDevice(ctx, "fp", staffID, domain.DirectionCheckIn, from, to)
		require.NoError(t, err)
	})

	t.Run("Success_SameStaffOppositeDirection", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		guard := NewFraudGuard(eventRepo)
		staffID := uuid.Must(uuid.NewV7())

		eventRepo.On("ListForDevice", ctx, "fp", from, to).
			Return([]*domain.Event{
				{StaffID: staffID, Direction: domain.DirectionCheckIn},
			}, nil).Once()

		err := guard.CheckDevice(ctx, "fp", staffID, domain.DirectionCheckOut, from, to)
		require.NoError(t, err)
	})

	t.Run("Error_OtherStaffOnSameDevice", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		guard := NewFraudGuard(eventRepo)

		eventRepo.On("ListForDevice", ctx, "fp", from, to).
			Return([]*domain.Event{
				{StaffID: uuid.Must(uuid.NewV7()), Direction: domain.DirectionCheckIn},
			}, nil).Once()

		err := guard.CheckDevice(ctx, "fp", uuid.Must(uuid.NewV7()), domain.DirectionCheckIn, from, to)
		assert.ErrorIs(t, err, domain.ErrDeviceReuse)
	})

	t.Run("Error_SameDirectionTwice", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		guard := NewFraudGuard(eventRepo)
		staffID := uuid.Must(uuid.NewV7())

		eventRepo.On("ListForDevice", ctx, "fp", from, to).
			Return([]*domain.Event{
				{StaffID: staffID, Direction: domain.DirectionCheckOut},
			}, nil).Once()

		err := guard.CheckDevice(ctx, "fp", staffID, domain.DirectionCheckOut, from, to)
		assert.ErrorIs(t, err, domain.ErrDuplicateCheckIn)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		eventRepo := &MockEventRepository{}
		guard := NewFraudGuard(eventRepo)

		eventRepo.On("ListForDevice", ctx, "fp", from, to).
			Return(nil, assert.AnError).Once()

		err := guard.CheckDevice(ctx, "fp", uuid.Must(uuid.NewV7()), domain.DirectionCheckIn, from, to)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
