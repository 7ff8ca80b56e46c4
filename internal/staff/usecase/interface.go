// Package usecase implements the staff business logic: CRUD and the
// sign-out/re-entry lockout state machine.
package usecase

import (
	"context"

	"github.com/google/uuid"

	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// StaffRepository defines persistence operations for staff members.
// Implementations must support transaction-aware operations via context propagation.
type StaffRepository interface {
	// Create stores a new staff member.
	Create(ctx context.Context, staff *staffDomain.Staff) error

	// Get retrieves a staff member by ID. Returns ErrStaffNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error)

	// List returns staff members ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error)

	// SetLockout updates the lockout flag. Returns ErrStaffNotFound if not found.
	SetLockout(ctx context.Context, id uuid.UUID, lockedOut bool) error

	// Delete removes a staff member. Returns ErrStaffNotFound if not found.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenValidator validates and consumes presented token values. Implemented by
// the token usecase.
type TokenValidator interface {
	Validate(ctx context.Context, value string) (*tokenDomain.Token, error)
}

// ReentryRecorder appends the approved_reentry check-in event that marks a
// successful unlock. Implemented by the attendance recorder.
type ReentryRecorder interface {
	RecordReentry(ctx context.Context, staffID uuid.UUID, sourceToken, fingerprint string) error
}

// CreateStaffInput contains the input data for registering a staff member.
type CreateStaffInput struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// StaffUseCase defines business logic operations for staff management and the
// lockout state machine.
type StaffUseCase interface {
	// Create registers a new staff member.
	Create(ctx context.Context, input CreateStaffInput) (*staffDomain.Staff, error)

	// Get retrieves a staff member by ID.
	Get(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error)

	// List returns staff members.
	List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error)

	// Delete removes a staff member. Attendance history is preserved.
	Delete(ctx context.Context, id uuid.UUID) error

	// SignOut ends the staff member's session and locks the account.
	// Admins are exempt when the deployment opts in.
	SignOut(ctx context.Context, id uuid.UUID) error

	// Unlock redeems a re-entry token for a locked-out staff member and
	// records the approved re-entry.
	Unlock(ctx context.Context, id uuid.UUID, tokenValue, fingerprint string) error
}
