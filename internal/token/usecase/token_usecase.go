package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/config"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
	tokenService "github.com/clinichq/attend/internal/token/service"
)

// dateLayout formats a clinic-local civil date for day status lookups.
const dateLayout = "2006-01-02"

// tokenUseCase implements TokenUseCase for issuing and validating tokens.
type tokenUseCase struct {
	config         *config.Config
	tokenRepo      TokenRepository
	dayStatus      DayStatusChecker
	valueGenerator tokenService.ValueGenerator
	logger         *slog.Logger
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	cfg *config.Config,
	tokenRepo TokenRepository,
	dayStatus DayStatusChecker,
	valueGenerator tokenService.ValueGenerator,
	logger *slog.Logger,
) TokenUseCase {
	return &tokenUseCase{
		config:         cfg,
		tokenRepo:      tokenRepo,
		dayStatus:      dayStatus,
		valueGenerator: valueGenerator,
		logger:         logger,
	}
}

// Issue generates and persists a fresh token of the given kind.
//
// Kiosk kinds are refused with ErrDayClosed once the clinic day has been
// administratively closed: the kiosk rotation loop keeps ticking, so the
// refusal here is what actually stops new attendance credentials after close.
// After a successful issue, tokens past the retention window are deleted
// opportunistically; a cleanup failure is logged and never surfaced, the
// fresh token is already committed.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	kind tokenDomain.Kind,
	ttl time.Duration,
	assignedStaffID *uuid.UUID,
) (*tokenDomain.Token, error) {
	now := time.Now().UTC()

	if kind.Kiosk() {
		date := now.In(t.config.Location()).Format(dateLayout)
		closed, err := t.dayStatus.IsDayClosed(ctx, date)
		if err != nil {
			return nil, err
		}
		if closed {
			return nil, tokenDomain.ErrDayClosed
		}
	}

	value, err := t.valueGenerator.NewValue(kind, now)
	if err != nil {
		return nil, err
	}

	token := &tokenDomain.Token{
		ID:              uuid.Must(uuid.NewV7()),
		Value:           value,
		Kind:            kind,
		ExpiresAt:       now.Add(ttl),
		AssignedStaffID: assignedStaffID,
		CreatedAt:       now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	t.cleanupStale(ctx, now)

	return token, nil
}

// Validate checks a presented token value and consumes it when single-use.
//
// The pipeline rejects in a fixed order: malformed value, unknown value,
// expired, already consumed. On the consumption step the repository's
// check-and-set decides races: of two concurrent presentations of the same
// single-use value exactly one validates, the other gets ErrTokenConsumed.
func (t *tokenUseCase) Validate(ctx context.Context, value string) (*tokenDomain.Token, error) {
	if _, err := tokenDomain.DecodeValue(value); err != nil {
		return nil, err
	}

	token, err := t.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if token.Expired(now) {
		return nil, tokenDomain.ErrTokenExpired
	}

	if token.SingleUse(t.config.KioskTokenSingleUse) {
		if token.Consumed() {
			return nil, tokenDomain.ErrTokenConsumed
		}
		consumed, err := t.tokenRepo.Consume(ctx, value, now)
		if err != nil {
			return nil, err
		}
		if !consumed {
			return nil, tokenDomain.ErrTokenConsumed
		}
		usedAt := now
		token.UsedAt = &usedAt
	}

	return token, nil
}

// ResolveCode resolves a manually entered fallback code to a kiosk token.
//
// The code is a convenience for staff whose camera cannot scan; it only
// narrows the search to active kiosk tokens, and the matched token's full
// value still goes through Validate. A code matching nothing active is
// indistinguishable from an unknown token.
func (t *tokenUseCase) ResolveCode(ctx context.Context, code string) (*tokenDomain.Token, error) {
	if len(code) != tokenDomain.FallbackCodeLength {
		return nil, tokenDomain.ErrMalformedToken
	}

	now := time.Now().UTC()

	tokens, err := t.tokenRepo.ListActiveKiosk(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, token := range tokens {
		embedded, ok := tokenDomain.FallbackCode(token.Value)
		if !ok {
			continue
		}
		if embedded == code {
			return t.Validate(ctx, token.Value)
		}
	}

	return nil, tokenDomain.ErrTokenNotFound
}

// CleanupExpired deletes tokens older than the retention cutoff, or with
// dryRun only counts them.
func (t *tokenUseCase) CleanupExpired(
	ctx context.Context,
	olderThan time.Duration,
	dryRun bool,
) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	if dryRun {
		return t.tokenRepo.CountOlderThan(ctx, cutoff)
	}

	return t.tokenRepo.DeleteOlderThan(ctx, cutoff)
}

// cleanupStale opportunistically deletes tokens past the retention window.
func (t *tokenUseCase) cleanupStale(ctx context.Context, now time.Time) {
	cutoff := now.Add(-t.config.TokenRetention)

	deleted, err := t.tokenRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		t.logger.Warn("failed to clean up stale tokens", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		t.logger.Debug("cleaned up stale tokens", slog.Int64("deleted", deleted))
	}
}
