package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
)

// RunDayStatus reports whether a clinic day is open or closed. An empty date
// queries today in the clinic timezone.
func RunDayStatus(
	ctx context.Context,
	useCase attendanceUseCase.CloseDayUseCase,
	logger *slog.Logger,
	writer io.Writer,
	date, format string,
) error {
	status, err := useCase.DayStatus(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to get day status: %w", err)
	}

	if format == "json" {
		outputDayStatusJSON(writer, status)
	} else {
		outputDayStatusText(writer, status)
	}

	return nil
}

func outputDayStatusText(writer io.Writer, status *attendanceDomain.DailyStatus) {
	if !status.IsClosed {
		fmt.Fprintf(writer, "Day %s is open\n", status.Date)
		return
	}

	fmt.Fprintf(writer, "Day %s is closed\n", status.Date)
	if status.ClosedBy != nil {
		fmt.Fprintf(writer, "Closed by: %s\n", status.ClosedBy.String())
	}
	if status.ClosedAt != nil {
		fmt.Fprintf(writer, "Closed at: %s\n", status.ClosedAt.Format(time.RFC3339))
	}
}

func outputDayStatusJSON(writer io.Writer, status *attendanceDomain.DailyStatus) {
	result := map[string]interface{}{
		"date":      status.Date,
		"is_closed": status.IsClosed,
	}
	if status.ClosedBy != nil {
		result["closed_by"] = status.ClosedBy.String()
	}
	if status.ClosedAt != nil {
		result["closed_at"] = status.ClosedAt.Format(time.RFC3339)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
