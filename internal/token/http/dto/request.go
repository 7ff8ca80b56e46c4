// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// IssueKioskTokenRequest contains the parameters for issuing a rotating kiosk token.
type IssueKioskTokenRequest struct {
	Direction string `json:"direction"`
}

// Validate checks if the issue kiosk token request is valid.
func (r *IssueKioskTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Direction,
			validation.Required,
			validation.In("check_in", "check_out"),
		),
	)
}

// IssueReentryTokenRequest contains the parameters for issuing a re-entry token
// bound to a locked-out staff member.
type IssueReentryTokenRequest struct {
	StaffID string `json:"staff_id"`
	Admin   bool   `json:"admin"`
}

// Validate checks if the issue re-entry token request is valid.
func (r *IssueReentryTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.Required),
	)
}
