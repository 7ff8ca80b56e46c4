package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
)

// RunCloseDay closes a clinic day, force-checking-out everyone still in.
// An empty date closes today in the clinic timezone. Supports both text and
// JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCloseDay(
	ctx context.Context,
	useCase attendanceUseCase.CloseDayUseCase,
	logger *slog.Logger,
	writer io.Writer,
	date, closedBy, format string,
) error {
	var closedByID *uuid.UUID
	if closedBy != "" {
		id, err := uuid.Parse(closedBy)
		if err != nil {
			return fmt.Errorf("invalid closed-by ID: %w", err)
		}
		closedByID = &id
	}

	logger.Info("closing day", slog.String("date", date))

	output, err := useCase.CloseDay(ctx, date, closedByID)
	if err != nil {
		return fmt.Errorf("failed to close day: %w", err)
	}

	if format == "json" {
		outputCloseDayJSON(writer, output)
	} else {
		outputCloseDayText(writer, output)
	}

	logger.Info("day closed",
		slog.String("date", output.Date),
		slog.Int64("auto_checkout_count", output.AutoCheckoutCount),
	)

	return nil
}

// outputCloseDayText outputs the result in human-readable text format.
func outputCloseDayText(writer io.Writer, output *attendanceUseCase.CloseDayOutput) {
	fmt.Fprintf(writer, "Day %s closed, %d staff member(s) auto-checked-out\n",
		output.Date, output.AutoCheckoutCount)
}

// outputCloseDayJSON outputs the result in JSON format for machine consumption.
func outputCloseDayJSON(writer io.Writer, output *attendanceUseCase.CloseDayOutput) {
	result := map[string]interface{}{
		"date":                output.Date,
		"auto_checkout_count": output.AutoCheckoutCount,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
