// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/clinichq/attend/internal/validation"
)

// CreateStaffRequest contains the parameters for registering a staff member.
type CreateStaffRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// Validate checks if the create staff request is valid.
func (r *CreateStaffRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DisplayName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != "",
				customValidation.Email,
				validation.Length(3, 255),
			),
		),
		validation.Field(&r.Role,
			validation.Required,
		),
	)
}

// UnlockRequest contains the parameters for redeeming a re-entry token.
type UnlockRequest struct {
	StaffID           string `json:"staff_id"`
	Token             string `json:"token"`
	DeviceFingerprint string `json:"device_fingerprint"`
}

// Validate checks if the unlock request is valid.
func (r *UnlockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.Required),
		validation.Field(&r.Token, validation.Required, customValidation.NoWhitespace),
		validation.Field(&r.DeviceFingerprint, validation.Required, customValidation.NotBlank),
	)
}
