package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinichq/attend/cmd/app/commands"
	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-reentry-token",
			Usage: "Issue a re-entry token for a locked-out staff member",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "staff-id",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Staff member ID (UUID) the token unlocks",
				},
				&cli.BoolFlag{
					Name:    "admin",
					Aliases: []string{"a"},
					Value:   false,
					Usage:   "Issue an admin re-entry token",
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

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateReentryToken(
					ctx,
					cfg,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("staff-id"),
					cmd.Bool("admin"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete tokens older than the specified number of hours",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "hours",
					Aliases:  []string{"H"},
					Required: true,
					Usage:    "Delete tokens older than this many hours",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many tokens would be deleted without deleting",
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

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("hours")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
