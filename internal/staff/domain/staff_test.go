package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/clinichq/attend/internal/errors"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"Admin", RoleAdmin, true},
		{"Assistant", RoleAssistant, true},
		{"Physician", RolePhysician, true},
		{"Staff", RoleStaff, true},
		{"Unknown", Role("janitor"), false},
		{"Empty", Role(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Valid())
		})
	}
}

func TestStaff_Exempt(t *testing.T) {
	admin := &Staff{Role: RoleAdmin}
	assistant := &Staff{Role: RoleAssistant}

	assert.True(t, admin.Exempt(true))
	assert.False(t, admin.Exempt(false))
	assert.False(t, assistant.Exempt(true))
	assert.False(t, assistant.Exempt(false))
}

func TestStaffErrors(t *testing.T) {
	assert.ErrorIs(t, ErrStaffNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrStaffLockedOut, apperrors.ErrLocked)
	assert.ErrorIs(t, ErrInvalidRole, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, ErrTokenStaffMismatch, apperrors.ErrForbidden)
}
