package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/config"
	"github.com/clinichq/attend/internal/database"
)

// systemFingerprint marks events written by the system rather than a device.
const systemFingerprint = "system"

// closeDayUseCase implements CloseDayUseCase.
type closeDayUseCase struct {
	config     *config.Config
	txManager  database.TxManager
	eventRepo  EventRepository
	statusRepo DailyStatusRepository
	logger     *slog.Logger
}

// NewCloseDayUseCase creates a new CloseDayUseCase with the provided dependencies.
func NewCloseDayUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	eventRepo EventRepository,
	statusRepo DailyStatusRepository,
	logger *slog.Logger,
) CloseDayUseCase {
	return &closeDayUseCase{
		config:     cfg,
		txManager:  txManager,
		eventRepo:  eventRepo,
		statusRepo: statusRepo,
		logger:     logger,
	}
}

// CloseDay marks the date closed and force-checks-out everyone still in.
//
// An empty date means today in the clinic timezone. The status flip and the
// forced system_checkout events commit together: a close can never leave some
// staff auto-checked-out on a day that is still open. The second close of the
// same date fails with ErrDayAlreadyClosed and writes nothing.
func (c *closeDayUseCase) CloseDay(
	ctx context.Context,
	date string,
	closedBy *uuid.UUID,
) (*CloseDayOutput, error) {
	now := time.Now().UTC()
	loc := c.config.Location()

	if date == "" {
		date = attendanceDomain.DateKey(now, loc)
	}

	from, to, err := attendanceDomain.BoundsForDate(date, loc)
	if err != nil {
		return nil, err
	}

	var count int64

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.statusRepo.Close(ctx, date, closedBy, now); err != nil {
			return err
		}

		events, err := c.eventRepo.ListBetween(ctx, from, to)
		if err != nil {
			return err
		}

		for _, staffID := range openCheckIns(events) {
			event := &attendanceDomain.Event{
				ID:                uuid.Must(uuid.NewV7()),
				StaffID:           staffID,
				Direction:         attendanceDomain.DirectionCheckOut,
				OccurredAt:        now,
				DeviceFingerprint: systemFingerprint,
				SourceToken:       "",
				Status:            attendanceDomain.StatusSystemCheckout,
				CreatedAt:         now,
			}
			if err := c.eventRepo.Create(ctx, event); err != nil {
				return err
			}
			count++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("day closed",
		slog.String("date", date),
		slog.Int64("auto_checkouts", count),
	)

	return &CloseDayOutput{Date: date, AutoCheckoutCount: count}, nil
}

// DayStatus returns the open/closed state of a civil date.
func (c *closeDayUseCase) DayStatus(
	ctx context.Context,
	date string,
) (*attendanceDomain.DailyStatus, error) {
	if _, _, err := attendanceDomain.BoundsForDate(date, c.config.Location()); err != nil {
		return nil, err
	}
	return c.statusRepo.Get(ctx, date)
}

// openCheckIns returns the staff whose last event in the list is a check-in,
// in first-seen order. Events must be ordered oldest first.
func openCheckIns(events []*attendanceDomain.Event) []uuid.UUID {
	last := make(map[uuid.UUID]attendanceDomain.Direction)
	var order []uuid.UUID

	for _, event := range events {
		if _, seen := last[event.StaffID]; !seen {
			order = append(order, event.StaffID)
		}
		last[event.StaffID] = event.Direction
	}

	var open []uuid.UUID
	for _, staffID := range order {
		if last[staffID] == attendanceDomain.DirectionCheckIn {
			open = append(open, staffID)
		}
	}
	return open
}
