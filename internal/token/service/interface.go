// Package service provides token value generation for the attendance system.
package service

import (
	"time"

	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// ValueGenerator builds unguessable token wire values. The random suffix is the
// unpredictable part; the embedded numeric code is only a manual-entry
// convenience and never authorizes on its own.
type ValueGenerator interface {
	NewValue(kind tokenDomain.Kind, issuedAt time.Time) (string, error)
}
