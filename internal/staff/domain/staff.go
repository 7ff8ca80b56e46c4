// Package domain defines the staff domain model: clinic workers who check in
// and out, and the lockout state that gates their access between sessions.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/errors"
)

// Role classifies a staff member for access policy purposes.
type Role string

const (
	// RoleAdmin can manage staff, issue re-entry tokens and close the day.
	RoleAdmin Role = "admin"

	// RoleAssistant is a front-desk or clinical assistant.
	RoleAssistant Role = "assistant"

	// RolePhysician is a treating physician.
	RolePhysician Role = "physician"

	// RoleStaff is any other clinic worker.
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAssistant, RolePhysician, RoleStaff:
		return true
	}
	return false
}

// Staff represents a clinic worker tracked by the attendance system.
type Staff struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	Role        Role
	LockedOut   bool
	CreatedAt   time.Time
}

// Exempt reports whether the lockout state machine skips this staff member.
// Only admins can be exempt, and only when the deployment opts in.
func (s *Staff) Exempt(adminExempt bool) bool {
	return adminExempt && s.Role == RoleAdmin
}

// Domain-specific errors for staff operations.
var (
	// ErrStaffNotFound indicates the requested staff member does not exist.
	ErrStaffNotFound = errors.Wrap(errors.ErrNotFound, "staff member not found")

	// ErrStaffLockedOut indicates the staff member signed out and has not
	// redeemed a re-entry token yet.
	ErrStaffLockedOut = errors.Wrap(errors.ErrLocked, "staff member is locked out, re-entry token required")

	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid staff role")

	// ErrTokenStaffMismatch indicates a re-entry token assigned to a
	// different staff member was presented.
	ErrTokenStaffMismatch = errors.Wrap(errors.ErrForbidden, "token is not assigned to this staff member")
)
