package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	staffDomain "github.com/clinichq/attend/internal/staff/domain"
	staffUseCase "github.com/clinichq/attend/internal/staff/usecase"
)

// RunCreateStaff registers a new staff member and prints the assigned ID.
// Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCreateStaff(
	ctx context.Context,
	useCase staffUseCase.StaffUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, email, role, format string,
) error {
	logger.Info("creating staff member",
		slog.String("name", name),
		slog.String("role", role),
	)

	staff, err := useCase.Create(ctx, staffUseCase.CreateStaffInput{
		DisplayName: name,
		Email:       email,
		Role:        role,
	})
	if err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}

	if format == "json" {
		outputCreateStaffJSON(writer, staff)
	} else {
		outputCreateStaffText(writer, staff)
	}

	logger.Info("staff member created", slog.String("staff_id", staff.ID.String()))
	return nil
}

// outputCreateStaffText outputs the result in human-readable text format.
func outputCreateStaffText(writer io.Writer, staff *staffDomain.Staff) {
	fmt.Fprintf(writer, "Staff member created\n")
	fmt.Fprintf(writer, "ID:    %s\n", staff.ID)
	fmt.Fprintf(writer, "Name:  %s\n", staff.DisplayName)
	fmt.Fprintf(writer, "Role:  %s\n", staff.Role)
	if staff.Email != "" {
		fmt.Fprintf(writer, "Email: %s\n", staff.Email)
	}
}

// outputCreateStaffJSON outputs the result in JSON format for machine consumption.
func outputCreateStaffJSON(writer io.Writer, staff *staffDomain.Staff) {
	result := map[string]interface{}{
		"id":           staff.ID.String(),
		"display_name": staff.DisplayName,
		"email":        staff.Email,
		"role":         string(staff.Role),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
