package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinichq/attend/cmd/app/commands"
	"github.com/clinichq/attend/internal/app"
	"github.com/clinichq/attend/internal/config"
)

func getStaffCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-staff",
			Usage: "Register a new staff member",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Staff member display name",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Staff member email address",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Staff role: admin, assistant, physician or staff",
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

				staffUseCase, err := container.StaffUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateStaff(
					ctx,
					staffUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("role"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "signout-staff",
			Usage: "Sign out a staff member and lock the account for the day",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "staff-id",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Staff member ID (UUID)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				staffUseCase, err := container.StaffUseCase()
				if err != nil {
					return err
				}

				return commands.RunSignOutStaff(
					ctx,
					staffUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("staff-id"),
				)
			},
		},
	}
}
