package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinichq/attend/internal/config"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
	tokenUseCase "github.com/clinichq/attend/internal/token/usecase"
)

// RunCreateReentryToken issues a re-entry token bound to a staff member and
// prints the token value and its manual fallback code. The token expires
// after the configured re-entry TTL.
//
// Requirements: Database must be migrated and accessible.
func RunCreateReentryToken(
	ctx context.Context,
	cfg *config.Config,
	useCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	staffID string,
	admin bool,
	format string,
) error {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return fmt.Errorf("invalid staff ID: %w", err)
	}

	kind := tokenDomain.KindReentry
	if admin {
		kind = tokenDomain.KindAdminReentry
	}

	logger.Info("issuing re-entry token",
		slog.String("staff_id", staffID),
		slog.String("kind", string(kind)),
	)

	token, err := useCase.Issue(ctx, kind, cfg.ReentryTokenTTL, &id)
	if err != nil {
		return fmt.Errorf("failed to issue re-entry token: %w", err)
	}

	if format == "json" {
		outputReentryTokenJSON(writer, token)
	} else {
		outputReentryTokenText(writer, token)
	}

	logger.Info("re-entry token issued", slog.String("token_id", token.ID.String()))
	return nil
}

// outputReentryTokenText outputs the result in human-readable text format.
func outputReentryTokenText(writer io.Writer, token *tokenDomain.Token) {
	code, _ := tokenDomain.FallbackCode(token.Value)

	fmt.Fprintf(writer, "Re-entry token issued\n")
	fmt.Fprintf(writer, "Value:   %s\n", token.Value)
	fmt.Fprintf(writer, "Code:    %s\n", code)
	fmt.Fprintf(writer, "Expires: %s\n", token.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
}

// outputReentryTokenJSON outputs the result in JSON format for machine consumption.
func outputReentryTokenJSON(writer io.Writer, token *tokenDomain.Token) {
	code, _ := tokenDomain.FallbackCode(token.Value)

	result := map[string]interface{}{
		"id":            token.ID.String(),
		"value":         token.Value,
		"fallback_code": code,
		"kind":          string(token.Kind),
		"expires_at":    token.ExpiresAt,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
