// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/clinichq/attend/internal/validation"
)

// ScanRequest contains the parameters for recording an attendance scan.
// Either the full scanned token value or the manual fallback code is required.
type ScanRequest struct {
	StaffID           string `json:"staff_id"`
	Direction         string `json:"direction"`
	Token             string `json:"token"`
	Code              string `json:"code"`
	DeviceFingerprint string `json:"device_fingerprint"`
}

// Validate checks if the scan request is valid.
func (r *ScanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.Required),
		validation.Field(&r.Direction,
			validation.Required,
			validation.In("check_in", "check_out"),
		),
		validation.Field(&r.Code,
			validation.When(r.Code != "", customValidation.DigitCode),
		),
		validation.Field(&r.DeviceFingerprint,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// CloseDayRequest contains the parameters for closing a clinic day.
// An empty date closes today in the clinic timezone.
type CloseDayRequest struct {
	Date     string `json:"date"`
	ClosedBy string `json:"closed_by"`
}

// Validate checks if the close day request is valid.
func (r *CloseDayRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Date,
			validation.When(r.Date != "", validation.Date("2006-01-02")),
		),
	)
}
