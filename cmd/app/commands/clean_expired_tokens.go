package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	tokenUseCase "github.com/clinichq/attend/internal/token/usecase"
)

// RunCleanExpiredTokens deletes tokens older than the specified number of hours.
// Supports dry-run mode to preview deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	hours int,
	dryRun bool,
	format string,
) error {
	if hours < 0 {
		return fmt.Errorf("hours must be a positive number, got: %d", hours)
	}

	logger.Info("cleaning expired tokens",
		slog.Int("hours", hours),
		slog.Bool("dry_run", dryRun),
	)

	count, err := useCase.CleanupExpired(ctx, time.Duration(hours)*time.Hour, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	if format == "json" {
		outputCleanExpiredJSON(writer, count, hours, dryRun)
	} else {
		outputCleanExpiredText(writer, count, hours, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("hours", hours),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(writer io.Writer, count int64, hours int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(writer, "Dry-run mode: Would delete %d token(s) older than %d hour(s)\n", count, hours)
	} else {
		fmt.Fprintf(writer, "Successfully deleted %d token(s) older than %d hour(s)\n", count, hours)
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(writer io.Writer, count int64, hours int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"hours":   hours,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
