package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinichq/attend/cmd/app/commands"
	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "kiosk",
			Usage: "Run the entrance kiosk display loop",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunKiosk(ctx, version)
			},
		},
	}
}
