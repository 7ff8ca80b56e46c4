// Package usecase implements the attendance business logic: scan recording
// with anti-fraud checks, re-entry recording and the close-day operation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// EventRepository defines persistence operations for the append-only
// attendance event log.
type EventRepository interface {
	// Create appends a new attendance event.
	Create(ctx context.Context, event *attendanceDomain.Event) error

	// ListForStaff returns the staff member's events in [from, to), oldest first.
	ListForStaff(
		ctx context.Context,
		staffID uuid.UUID,
		from, to time.Time,
	) ([]*attendanceDomain.Event, error)

	// ListForDevice returns the device's events in [from, to), oldest first.
	ListForDevice(
		ctx context.Context,
		fingerprint string,
		from, to time.Time,
	) ([]*attendanceDomain.Event, error)

	// ListBetween returns all events in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]*attendanceDomain.Event, error)
}

// DailyStatusRepository defines persistence operations for the per-day
// open/closed state.
type DailyStatusRepository interface {
	// Get retrieves the status for a civil date. Days without a row are open.
	Get(ctx context.Context, date string) (*attendanceDomain.DailyStatus, error)

	// IsDayClosed reports whether the date has been closed.
	IsDayClosed(ctx context.Context, date string) (bool, error)

	// Close marks the date closed. Returns ErrDayAlreadyClosed on a second close.
	Close(ctx context.Context, date string, closedBy *uuid.UUID, closedAt time.Time) error
}

// TokenResolver validates presented token values and resolves manual fallback
// codes. Implemented by the token usecase.
type TokenResolver interface {
	Validate(ctx context.Context, value string) (*tokenDomain.Token, error)
	ResolveCode(ctx context.Context, code string) (*tokenDomain.Token, error)
}

// StaffDirectory looks up staff members. Implemented by the staff repository.
type StaffDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error)
}

// RecordInput contains the input data for recording an attendance scan.
// Exactly one of TokenValue and Code must be set.
type RecordInput struct {
	StaffID     uuid.UUID
	Direction   attendanceDomain.Direction
	TokenValue  string
	Code        string
	Fingerprint string
}

// CloseDayOutput reports the result of closing a day.
type CloseDayOutput struct {
	Date             string
	AutoCheckoutCount int64
}

// AttendanceUseCase defines business logic operations for recording attendance.
type AttendanceUseCase interface {
	// Record validates a scan end to end and appends the attendance event.
	Record(ctx context.Context, input RecordInput) (*attendanceDomain.Event, error)

	// RecordReentry appends the approved_reentry check-in that marks a
	// successful re-entry token redemption.
	RecordReentry(ctx context.Context, staffID uuid.UUID, sourceToken, fingerprint string) error

	// ListForStaffOnDate returns a staff member's events for a civil date.
	ListForStaffOnDate(
		ctx context.Context,
		staffID uuid.UUID,
		date string,
	) ([]*attendanceDomain.Event, error)
}

// CloseDayUseCase defines the end-of-day operation.
type CloseDayUseCase interface {
	// CloseDay force-checks-out everyone still in, marks the day closed and
	// returns the number of forced check-outs. Second close: ErrDayAlreadyClosed.
	CloseDay(ctx context.Context, date string, closedBy *uuid.UUID) (*CloseDayOutput, error)

	// DayStatus returns the open/closed state of a civil date.
	DayStatus(ctx context.Context, date string) (*attendanceDomain.DailyStatus, error)
}
