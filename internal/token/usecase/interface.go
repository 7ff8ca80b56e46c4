// Package usecase defines business logic interfaces for token issuance and validation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// TokenRepository defines persistence operations for tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *tokenDomain.Token) error

	// GetByValue retrieves a token by its exact wire value.
	// Returns ErrTokenNotFound if not found.
	GetByValue(ctx context.Context, value string) (*tokenDomain.Token, error)

	// Consume atomically marks the token as used. Returns false when the
	// token is absent or was already consumed.
	Consume(ctx context.Context, value string, usedAt time.Time) (bool, error)

	// DeleteOlderThan removes tokens created before the cutoff and returns
	// the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// CountOlderThan counts tokens created before the cutoff without removing them.
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// ListActiveKiosk returns unexpired, unconsumed kiosk tokens, newest first.
	ListActiveKiosk(ctx context.Context, now time.Time) ([]*tokenDomain.Token, error)
}

// DayStatusChecker reports whether a clinic day has been administratively
// closed. Implemented by the attendance daily status repository; declared here
// so token issuance does not depend on the attendance package.
type DayStatusChecker interface {
	IsDayClosed(ctx context.Context, date string) (bool, error)
}

// TokenUseCase defines business logic operations for the token lifecycle.
type TokenUseCase interface {
	// Issue generates and persists a fresh token of the given kind. Kiosk
	// kinds are refused with ErrDayClosed once the clinic day is closed.
	// Re-entry kinds carry the staff account they unlock.
	Issue(
		ctx context.Context,
		kind tokenDomain.Kind,
		ttl time.Duration,
		assignedStaffID *uuid.UUID,
	) (*tokenDomain.Token, error)

	// Validate checks a presented token value and, for single-use kinds,
	// consumes it. Rejections are ErrMalformedToken, ErrTokenNotFound,
	// ErrTokenExpired or ErrTokenConsumed.
	Validate(ctx context.Context, value string) (*tokenDomain.Token, error)

	// ResolveCode resolves a manually entered fallback code to the active
	// kiosk token carrying it, then validates that token's full value.
	ResolveCode(ctx context.Context, code string) (*tokenDomain.Token, error)

	// CleanupExpired deletes tokens older than the retention cutoff. With
	// dryRun it only reports how many would be deleted.
	CleanupExpired(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error)
}
