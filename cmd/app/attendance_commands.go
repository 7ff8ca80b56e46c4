package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinichq/attend/cmd/app/commands"
	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

func getAttendanceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "scan",
			Usage: "Record an attendance scan from this device",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "staff-id",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Staff member ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "direction",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Scan direction: check_in or check_out",
				},
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Scanned kiosk token value",
				},
				&cli.StringFlag{
					Name:    "code",
					Aliases: []string{"c"},
					Usage:   "Manual fallback code shown on the kiosk",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				attendanceUseCase, err := container.AttendanceUseCase()
				if err != nil {
					return err
				}

				return commands.RunScan(
					ctx,
					attendanceUseCase,
					container.DeviceService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("staff-id"),
					cmd.String("direction"),
					cmd.String("token"),
					cmd.String("code"),
					cmd.String("format"),
				)
			},
		},
	}
}
