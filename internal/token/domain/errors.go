package domain

import (
	"github.com/clinichq/attend/internal/errors"
)

// Token validation errors. Each one names the specific rejection reason so
// clients can show actionable text instead of a generic failure.
var (
	// ErrTokenNotFound indicates no token with the presented value exists.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenExpired indicates the token's validity window has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrInvalidInput, "token expired, wait for the code to refresh")

	// ErrTokenConsumed indicates a single-use token has already been used.
	ErrTokenConsumed = errors.Wrap(errors.ErrInvalidInput, "token already used")

	// ErrTokenKindMismatch indicates the token exists but does not authorize
	// the requested action.
	ErrTokenKindMismatch = errors.Wrap(errors.ErrInvalidInput, "token does not authorize this action")

	// ErrMalformedToken indicates the scanned value is not a recognized token format.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token value")

	// ErrDayClosed indicates kiosk token issuance was refused because the day
	// has been administratively closed.
	ErrDayClosed = errors.Wrap(errors.ErrConflict, "day is closed, no further kiosk tokens")
)
