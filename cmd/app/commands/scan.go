package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
)

// Fingerprinter computes the fingerprint of the device this process runs on.
// Implemented by device.Service.
type Fingerprinter interface {
	Fingerprint() (string, error)
}

// RunScan records an attendance scan from this machine. The device
// fingerprint is derived locally, never taken from input, so a scan submitted
// through this command is always tied to the install it ran on. Exactly one
// of token and code must be provided.
//
// Requirements: Database must be migrated and accessible.
func RunScan(
	ctx context.Context,
	useCase attendanceUseCase.AttendanceUseCase,
	fingerprinter Fingerprinter,
	logger *slog.Logger,
	writer io.Writer,
	staffID, direction, tokenValue, code, format string,
) error {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return fmt.Errorf("invalid staff ID: %w", err)
	}

	fingerprint, err := fingerprinter.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to compute device fingerprint: %w", err)
	}

	logger.Info("recording attendance scan",
		slog.String("staff_id", staffID),
		slog.String("direction", direction),
	)

	event, err := useCase.Record(ctx, attendanceUseCase.RecordInput{
		StaffID:     id,
		Direction:   attendanceDomain.Direction(direction),
		TokenValue:  tokenValue,
		Code:        code,
		Fingerprint: fingerprint,
	})
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}

	if format == "json" {
		outputScanJSON(writer, event)
	} else {
		outputScanText(writer, event)
	}

	logger.Info("attendance scan recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("status", string(event.Status)),
	)
	return nil
}

// outputScanText outputs the result in human-readable text format.
func outputScanText(writer io.Writer, event *attendanceDomain.Event) {
	fmt.Fprintf(writer, "Scan recorded\n")
	fmt.Fprintf(writer, "Direction:   %s\n", event.Direction)
	fmt.Fprintf(writer, "Status:      %s\n", event.Status)
	fmt.Fprintf(writer, "Occurred at: %s\n", event.OccurredAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(writer, "Device:      %s\n", event.DeviceFingerprint)
}

// outputScanJSON outputs the result in JSON format for machine consumption.
func outputScanJSON(writer io.Writer, event *attendanceDomain.Event) {
	result := map[string]interface{}{
		"id":                 event.ID.String(),
		"staff_id":           event.StaffID.String(),
		"direction":          string(event.Direction),
		"status":             string(event.Status),
		"occurred_at":        event.OccurredAt,
		"device_fingerprint": event.DeviceFingerprint,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
