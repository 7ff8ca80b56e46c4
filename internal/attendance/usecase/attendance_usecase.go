package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/config"
	"github.com/clinichq/attend/internal/database"
	apperrors "github.com/clinichq/attend/internal/errors"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// attendanceUseCase implements AttendanceUseCase.
type attendanceUseCase struct {
	config        *config.Config
	txManager     database.TxManager
	eventRepo     EventRepository
	tokenResolver TokenResolver
	staffDir      StaffDirectory
	fraudGuard    *FraudGuard
}

// NewAttendanceUseCase creates a new AttendanceUseCase with the provided dependencies.
func NewAttendanceUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	eventRepo EventRepository,
	tokenResolver TokenResolver,
	staffDir StaffDirectory,
	fraudGuard *FraudGuard,
) AttendanceUseCase {
	return &attendanceUseCase{
		config:        cfg,
		txManager:     txManager,
		eventRepo:     eventRepo,
		tokenResolver: tokenResolver,
		staffDir:      staffDir,
		fraudGuard:    fraudGuard,
	}
}

// directionForKind maps a kiosk token kind to the direction it authorizes.
func directionForKind(kind tokenDomain.Kind) (attendanceDomain.Direction, bool) {
	switch kind {
	case tokenDomain.KindKioskCheckIn:
		return attendanceDomain.DirectionCheckIn, true
	case tokenDomain.KindKioskCheckOut:
		return attendanceDomain.DirectionCheckOut, true
	}
	return "", false
}

// Record validates a scan end to end and appends the attendance event.
//
// The pipeline short-circuits in this order: token validation (expiry,
// consumption), token kind vs requested direction, staff existence (a staff
// member deleted mid-session gets a distinct not-found, never a token error),
// lockout, device anti-fraud. Everything from token consumption to the event
// insert runs in one transaction, so a single-use token is never burned on a
// scan that did not record.
func (a *attendanceUseCase) Record(
	ctx context.Context,
	input RecordInput,
) (*attendanceDomain.Event, error) {
	if !input.Direction.Valid() {
		return nil, attendanceDomain.ErrInvalidDirection
	}
	if input.Fingerprint == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "device fingerprint is required")
	}

	var event *attendanceDomain.Event

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := a.resolveToken(ctx, input)
		if err != nil {
			return err
		}

		kindDirection, ok := directionForKind(token.Kind)
		if !ok || kindDirection != input.Direction {
			return tokenDomain.ErrTokenKindMismatch
		}

		staff, err := a.staffDir.Get(ctx, input.StaffID)
		if err != nil {
			return err
		}

		if staff.LockedOut && !staff.Exempt(a.config.AdminLockoutExempt) {
			return staffDomain.ErrStaffLockedOut
		}

		now := time.Now().UTC()
		from, to := attendanceDomain.DayBounds(now, a.config.Location())

		err = a.fraudGuard.CheckDevice(ctx, input.Fingerprint, staff.ID, input.Direction, from, to)
		if err != nil {
			return err
		}

		event = &attendanceDomain.Event{
			ID:                uuid.Must(uuid.NewV7()),
			StaffID:           staff.ID,
			Direction:         input.Direction,
			OccurredAt:        now,
			DeviceFingerprint: input.Fingerprint,
			SourceToken:       token.Value,
			Status:            attendanceDomain.StatusApproved,
			CreatedAt:         now,
		}

		return a.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// resolveToken turns the scan input into a validated token, through either the
// full scanned value or the manual fallback code.
func (a *attendanceUseCase) resolveToken(
	ctx context.Context,
	input RecordInput,
) (*tokenDomain.Token, error) {
	switch {
	case input.TokenValue != "":
		return a.tokenResolver.Validate(ctx, input.TokenValue)
	case input.Code != "":
		return a.tokenResolver.ResolveCode(ctx, input.Code)
	}
	return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token or fallback code is required")
}

// RecordReentry appends the approved_reentry check-in written when a re-entry
// token is redeemed. The caller has already validated and consumed the token;
// no anti-fraud check applies, the admin-issued token is the authorization.
func (a *attendanceUseCase) RecordReentry(
	ctx context.Context,
	staffID uuid.UUID,
	sourceToken string,
	fingerprint string,
) error {
	now := time.Now().UTC()

	return a.eventRepo.Create(ctx, &attendanceDomain.Event{
		ID:                uuid.Must(uuid.NewV7()),
		StaffID:           staffID,
		Direction:         attendanceDomain.DirectionCheckIn,
		OccurredAt:        now,
		DeviceFingerprint: fingerprint,
		SourceToken:       sourceToken,
		Status:            attendanceDomain.StatusApprovedReentry,
		CreatedAt:         now,
	})
}

// ListForStaffOnDate returns a staff member's events for a civil date.
func (a *attendanceUseCase) ListForStaffOnDate(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*attendanceDomain.Event, error) {
	from, to, err := attendanceDomain.BoundsForDate(date, a.config.Location())
	if err != nil {
		return nil, err
	}
	return a.eventRepo.ListForStaff(ctx, staffID, from, to)
}
