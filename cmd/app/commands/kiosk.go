package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

// RunKiosk starts the entrance kiosk display loop.
// The loop rotates the QR token, confirms scans and shows the closed screen
// after close-day. Blocks until receiving SIGINT/SIGTERM.
func RunKiosk(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting kiosk", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get kiosk loop from container (this initializes all dependencies)
	loop, err := container.KioskLoop()
	if err != nil {
		return fmt.Errorf("failed to initialize kiosk loop: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("kiosk loop error: %w", err)
	}

	logger.Info("kiosk stopped")
	return nil
}
