package app

import (
	"fmt"
	"os"

	"github.com/clinichq/attend/internal/device"
	"github.com/clinichq/attend/internal/kiosk"
)

// DeviceService returns the device fingerprint service.
func (c *Container) DeviceService() *device.Service {
	c.deviceServiceInit.Do(func() {
		c.deviceService = device.NewService("")
	})
	return c.deviceService
}

// KioskLoop returns the kiosk display loop with a terminal display on stdout.
func (c *Container) KioskLoop() (*kiosk.Loop, error) {
	c.kioskLoopInit.Do(func() {
		loop, err := c.initKioskLoop()
		if err != nil {
			c.initErrors["kioskLoop"] = err
			return
		}
		c.kioskLoop = loop
	})
	if storedErr, exists := c.initErrors["kioskLoop"]; exists {
		return nil, storedErr
	}
	return c.kioskLoop, nil
}

// initKioskLoop creates the kiosk loop with all its dependencies.
// The loop issues tokens through the token use case, polls the event
// repository for scan confirmations and checks the daily status repository
// for the closed screen.
func (c *Container) initKioskLoop() (*kiosk.Loop, error) {
	issuer, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for kiosk loop: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for kiosk loop: %w", err)
	}

	dailyStatusRepo, err := c.DailyStatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily status repository for kiosk loop: %w", err)
	}

	display := kiosk.NewTerminalDisplay(os.Stdout)

	return kiosk.NewLoop(
		c.config,
		issuer,
		eventRepo,
		dailyStatusRepo,
		display,
		c.Logger(),
	), nil
}
