package main

import (
	"context"
	"fmt"
	"time"

	"github.com/altbeat/jukebox/internal/server"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	provider, err := r.requireProvider()
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app := server.NewApp(r.config, r.logger, db, provider)

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s:%d", r.config.Server.Host, r.config.Server.Port)
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}()
	}

	return app.ListenAndServe(ctx)
}
