// Package domain defines the token domain model for the attendance system.
// Tokens are short-lived bearer credentials: rotating kiosk tokens authorize
// check-in/check-out scans, re-entry tokens unlock a locked-out staff account.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the purpose of a token and its consumption policy.
type Kind string

const (
	// KindKioskCheckIn is a rotating kiosk token authorizing a check-in scan.
	KindKioskCheckIn Kind = "kiosk_checkin"

	// KindKioskCheckOut is a rotating kiosk token authorizing a check-out scan.
	KindKioskCheckOut Kind = "kiosk_checkout"

	// KindReentry is a single-use token unlocking one specific staff account.
	KindReentry Kind = "re_entry"

	// KindAdminReentry is a single-use token issued by an admin that both
	// assigns and unlocks a specific staff account.
	KindAdminReentry Kind = "admin_reentry"
)

// Kiosk reports whether the kind belongs to the rotating kiosk token family.
func (k Kind) Kiosk() bool {
	return k == KindKioskCheckIn || k == KindKioskCheckOut
}

// Reentry reports whether the kind belongs to the re-entry token family.
// Re-entry tokens are always single-use.
func (k Kind) Reentry() bool {
	return k == KindReentry || k == KindAdminReentry
}

// Valid reports whether the kind is one of the known token kinds.
func (k Kind) Valid() bool {
	return k.Kiosk() || k.Reentry()
}

// Token is a bearer credential for one attendance action or one re-entry unlock.
type Token struct {
	ID              uuid.UUID
	Value           string
	Kind            Kind
	ExpiresAt       time.Time
	AssignedStaffID *uuid.UUID
	UsedAt          *time.Time
	CreatedAt       time.Time
}

// Expired reports whether the token's validity window has passed at now.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Consumed reports whether the token has been used at least once.
func (t *Token) Consumed() bool {
	return t.UsedAt != nil
}

// SingleUse reports whether the token must be invalidated on first use.
// Re-entry tokens always are; kiosk tokens only when the deployment opts in
// (the default shared-screen model lets several staff scan the same code).
func (t *Token) SingleUse(kioskSingleUse bool) bool {
	if t.Kind.Reentry() {
		return true
	}
	return kioskSingleUse
}
