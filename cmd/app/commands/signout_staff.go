package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	staffUseCase "github.com/clinichq/attend/internal/staff/usecase"
)

// RunSignOutStaff signs out a staff member and locks the account until a
// re-entry token is redeemed.
//
// Requirements: Database must be migrated and accessible.
func RunSignOutStaff(
	ctx context.Context,
	useCase staffUseCase.StaffUseCase,
	logger *slog.Logger,
	writer io.Writer,
	staffID string,
) error {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return fmt.Errorf("invalid staff ID: %w", err)
	}

	logger.Info("signing out staff member", slog.String("staff_id", staffID))

	if err := useCase.SignOut(ctx, id); err != nil {
		return fmt.Errorf("failed to sign out staff member: %w", err)
	}

	fmt.Fprintf(writer, "Staff member %s signed out and locked\n", staffID)

	logger.Info("staff member signed out", slog.String("staff_id", staffID))
	return nil
}
