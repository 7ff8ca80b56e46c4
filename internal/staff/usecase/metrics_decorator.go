package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/metrics"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
)

// staffUseCaseWithMetrics decorates StaffUseCase with metrics instrumentation.
type staffUseCaseWithMetrics struct {
	next    StaffUseCase
	metrics metrics.BusinessMetrics
}

// NewStaffUseCaseWithMetrics wraps a StaffUseCase with metrics recording.
func NewStaffUseCaseWithMetrics(useCase StaffUseCase, m metrics.BusinessMetrics) StaffUseCase {
	return &staffUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *staffUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	s.metrics.RecordOperation(ctx, "staff", operation, status)
	s.metrics.RecordDuration(ctx, "staff", operation, time.Since(start), status)
}

// Create records metrics for staff registration.
func (s *staffUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateStaffInput,
) (*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "create", status, start)

	return staff, err
}

// Get records metrics for staff lookups.
func (s *staffUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "get", status, start)

	return staff, err
}

// List records metrics for staff listing.
func (s *staffUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "list", status, start)

	return staff, err
}

// Delete records metrics for staff removal.
func (s *staffUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "delete", status, start)

	return err
}

// SignOut records metrics for sign-out lockouts.
func (s *staffUseCaseWithMetrics) SignOut(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.SignOut(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "sign_out", status, start)

	return err
}

// Unlock records metrics for re-entry token redemptions.
func (s *staffUseCaseWithMetrics) Unlock(
	ctx context.Context,
	id uuid.UUID,
	tokenValue, fingerprint string,
) error {
	start := time.Now()
	err := s.next.Unlock(ctx, id, tokenValue, fingerprint)

	status := "success"
	if err != nil {
		status = "error"
	}
	s.record(ctx, "unlock", status, start)

	return err
}
