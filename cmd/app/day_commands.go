package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinichq/attend/cmd/app/commands"
	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

func getDayCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "close-day",
			Usage: "Close a clinic day and force-check-out remaining staff",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "date",
					Aliases: []string{"d"},
					Usage:   "Civil date to close in YYYY-MM-DD format (defaults to today)",
				},
				&cli.StringFlag{
					Name:    "closed-by",
					Aliases: []string{"c"},
					Usage:   "Staff member ID (UUID) performing the close",
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

				closeDayUseCase, err := container.CloseDayUseCase()
				if err != nil {
					return err
				}

				return commands.RunCloseDay(
					ctx,
					closeDayUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("date"),
					cmd.String("closed-by"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "day-status",
			Usage: "Show the open/closed state of a clinic day",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "date",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Civil date in YYYY-MM-DD format",
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

				closeDayUseCase, err := container.CloseDayUseCase()
				if err != nil {
					return err
				}

				return commands.RunDayStatus(
					ctx,
					closeDayUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("date"),
					cmd.String("format"),
				)
			},
		},
	}
}
