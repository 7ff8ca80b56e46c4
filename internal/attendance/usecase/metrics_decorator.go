package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/metrics"
)

// attendanceUseCaseWithMetrics decorates AttendanceUseCase with metrics instrumentation.
type attendanceUseCaseWithMetrics struct {
	next    AttendanceUseCase
	metrics metrics.BusinessMetrics
}

// NewAttendanceUseCaseWithMetrics wraps an AttendanceUseCase with metrics recording.
func NewAttendanceUseCaseWithMetrics(useCase AttendanceUseCase, m metrics.BusinessMetrics) AttendanceUseCase {
	return &attendanceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for attendance scan operations.
func (a *attendanceUseCaseWithMetrics) Record(
	ctx context.Context,
	input RecordInput,
) (*attendanceDomain.Event, error) {
	start := time.Now()
	event, err := a.next.Record(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "attendance", "record", status)
	a.metrics.RecordDuration(ctx, "attendance", "record", time.Since(start), status)

	return event, err
}

// RecordReentry records metrics for re-entry event appends.
func (a *attendanceUseCaseWithMetrics) RecordReentry(
	ctx context.Context,
	staffID uuid.UUID,
	sourceToken, fingerprint string,
) error {
	start := time.Now()
	err := a.next.RecordReentry(ctx, staffID, sourceToken, fingerprint)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "attendance", "record_reentry", status)
	a.metrics.RecordDuration(ctx, "attendance", "record_reentry", time.Since(start), status)

	return err
}

// ListForStaffOnDate records metrics for attendance history queries.
func (a *attendanceUseCaseWithMetrics) ListForStaffOnDate(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*attendanceDomain.Event, error) {
	start := time.Now()
	events, err := a.next.ListForStaffOnDate(ctx, staffID, date)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "attendance", "list_for_staff", status)
	a.metrics.RecordDuration(ctx, "attendance", "list_for_staff", time.Since(start), status)

	return events, err
}

// closeDayUseCaseWithMetrics decorates CloseDayUseCase with metrics instrumentation.
type closeDayUseCaseWithMetrics struct {
	next    CloseDayUseCase
	metrics metrics.BusinessMetrics
}

// NewCloseDayUseCaseWithMetrics wraps a CloseDayUseCase with metrics recording.
func NewCloseDayUseCaseWithMetrics(useCase CloseDayUseCase, m metrics.BusinessMetrics) CloseDayUseCase {
	return &closeDayUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CloseDay records metrics for close-day operations.
func (c *closeDayUseCaseWithMetrics) CloseDay(
	ctx context.Context,
	date string,
	closedBy *uuid.UUID,
) (*CloseDayOutput, error) {
	start := time.Now()
	output, err := c.next.CloseDay(ctx, date, closedBy)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "attendance", "close_day", status)
	c.metrics.RecordDuration(ctx, "attendance", "close_day", time.Since(start), status)

	return output, err
}

// DayStatus records metrics for day status queries.
func (c *closeDayUseCaseWithMetrics) DayStatus(
	ctx context.Context,
	date string,
) (*attendanceDomain.DailyStatus, error) {
	start := time.Now()
	status, err := c.next.DayStatus(ctx, date)

	result := "success"
	if err != nil {
		result = "error"
	}

	c.metrics.RecordOperation(ctx, "attendance", "day_status", result)
	c.metrics.RecordDuration(ctx, "attendance", "day_status", time.Since(start), result)

	return status, err
}
