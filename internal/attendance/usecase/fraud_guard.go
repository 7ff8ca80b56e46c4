package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
)

// FraudGuard checks a scan against the current day's event log before it is
// recorded. The read-then-write window between the check and the insert is an
// accepted race: the worst case is one extra event from the same device, which
// the audit log makes visible.
type FraudGuard struct {
	eventRepo EventRepository
}

// NewFraudGuard creates a new FraudGuard.
func NewFraudGuard(eventRepo EventRepository) *FraudGuard {
	return &FraudGuard{eventRepo: eventRepo}
}

// CheckDevice inspects the device's events in [from, to) and rejects:
//   - ErrDeviceReuse when the device already recorded attendance for a
//     different staff member (one phone cannot clock in the whole team)
//   - ErrDuplicateCheckIn when the same staff member already recorded the
//     same direction from this device
func (g *FraudGuard) CheckDevice(
	ctx context.Context,
	fingerprint string,
	staffID uuid.UUID,
	direction attendanceDomain.Direction,
	from, to time.Time,
) error {
	events, err := g.eventRepo.ListForDevice(ctx, fingerprint, from, to)
	if err != nil {
		return err
	}

	for _, event := range events {
		if event.StaffID != staffID {
			return attendanceDomain.ErrDeviceReuse
		}
		if event.Direction == direction {
			return attendanceDomain.ErrDuplicateCheckIn
		}
	}

	return nil
}
