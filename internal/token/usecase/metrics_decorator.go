package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/metrics"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	kind tokenDomain.Kind,
	ttl time.Duration,
	assignedStaffID *uuid.UUID,
) (*tokenDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Issue(ctx, kind, ttl, assignedStaffID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "issue", status)
	t.metrics.RecordDuration(ctx, "token", "issue", time.Since(start), status)

	return token, err
}

// Validate records metrics for token validation.
func (t *tokenUseCaseWithMetrics) Validate(ctx context.Context, value string) (*tokenDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Validate(ctx, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "validate", status)
	t.metrics.RecordDuration(ctx, "token", "validate", time.Since(start), status)

	return token, err
}

// ResolveCode records metrics for fallback code resolution.
func (t *tokenUseCaseWithMetrics) ResolveCode(ctx context.Context, code string) (*tokenDomain.Token, error) {
	start := time.Now()
	token, err := t.next.ResolveCode(ctx, code)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "resolve_code", status)
	t.metrics.RecordDuration(ctx, "token", "resolve_code", time.Since(start), status)

	return token, err
}

// CleanupExpired records metrics for token retention cleanup.
func (t *tokenUseCaseWithMetrics) CleanupExpired(
	ctx context.Context,
	olderThan time.Duration,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx, olderThan, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "cleanup_expired", status)
	t.metrics.RecordDuration(ctx, "token", "cleanup_expired", time.Since(start), status)

	return count, err
}
