package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	staffUseCase "github.com/clinichq/attend/internal/staff/usecase"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	kind tokenDomain.Kind,
	ttl time.Duration,
	assignedStaffID *uuid.UUID,
) (*tokenDomain.Token, error) {
	args := m.Called(ctx, kind, ttl, assignedStaffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Token), args.Error(1)
}

func (m *MockTokenUseCase) Validate(ctx context.Context, value string) (*tokenDomain.Token, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Token), args.Error(1)
}

func (m *MockTokenUseCase) ResolveCode(ctx context.Context, code string) (*tokenDomain.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Token), args.Error(1)
}

func (m *MockTokenUseCase) CleanupExpired(
	ctx context.Context,
	olderThan time.Duration,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

type MockStaffUseCase struct {
	mock.Mock
}

func (m *MockStaffUseCase) Create(
	ctx context.Context,
	input staffUseCase.CreateStaffInput,
) (*staffDomain.Staff, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

func (m *MockStaffUseCase) Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

func (m *MockStaffUseCase) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staffDomain.Staff), args.Error(1)
}

func (m *MockStaffUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStaffUseCase) SignOut(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStaffUseCase) Unlock(ctx context.Context, id uuid.UUID, tokenValue, fingerprint string) error {
	args := m.Called(ctx, id, tokenValue, fingerprint)
	return args.Error(0)
}

type MockAttendanceUseCase struct {
	mock.Mock
}

func (m *MockAttendanceUseCase) Record(
	ctx context.Context,
	input attendanceUseCase.RecordInput,
) (*attendanceDomain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceDomain.Event), args.Error(1)
}

func (m *MockAttendanceUseCase) RecordReentry(
	ctx context.Context,
	staffID uuid.UUID,
	sourceToken, fingerprint string,
) error {
	args := m.Called(ctx, staffID, sourceToken, fingerprint)
	return args.Error(0)
}

func (m *MockAttendanceUseCase) ListForStaffOnDate(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*attendanceDomain.Event, error) {
	args := m.Called(ctx, staffID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Event), args.Error(1)
}

type MockCloseDayUseCase struct {
	mock.Mock
}

func (m *MockCloseDayUseCase) CloseDay(
	ctx context.Context,
	date string,
	closedBy *uuid.UUID,
) (*attendanceUseCase.CloseDayOutput, error) {
	args := m.Called(ctx, date, closedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceUseCase.CloseDayOutput), args.Error(1)
}

func (m *MockCloseDayUseCase) DayStatus(
	ctx context.Context,
	date string,
) (*attendanceDomain.DailyStatus, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceDomain.DailyStatus), args.Error(1)
}
