// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the jukebox HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the frontend in the default browser once the server is up",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Create a config file from the bundled template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// exportCommand handles bulk list exports.
func exportCommand(r *Runner) *cli.Command {
	exportFlags := []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: json, csv, markdown, txt",
			Value:   "json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent export workers",
			Value: 5,
		},
		&cli.FloatFlag{
			Name:  "rate",
			Usage: "Catalog requests per second",
			Value: 5,
		},
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Export album lists to disk",
		Commands: []*cli.Command{
			{
				Name:  "user",
				Usage: "Export every list belonging to a user",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "User ID whose lists to export",
						Required: true,
					},
				}, exportFlags...),
				Action: r.ExportUser,
			},
			{
				Name:      "lists",
				Usage:     "Export the named lists",
				ArgsUsage: "[list id ...]",
				Flags:     exportFlags,
				Action:    r.ExportLists,
			},
		},
	}
}

// browseCommand returns the top-level TUI command for browsing lists and reviews.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "interactive"},
		Usage:   "Launch interactive TUI for browsing lists and reviews",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.Browse,
	}
}
