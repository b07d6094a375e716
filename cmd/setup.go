package main

import (
	"context"
	"fmt"
	"os"

	"github.com/altbeat/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		if err := r.reloadConfig(cmd); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if err := r.reloadConfig(cmd); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
			}
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// SetupConfig writes a config file from the bundled template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config file created: %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Fill in credentials.spotify.client_id and client_secret\n")
	r.writePlain("2. Run 'jukebox setup database' to initialize the database\n")
	return nil
}

// SetupRollback rolls back the most recent database migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("rolling back most recent migration", "path", r.config.Database.Path)
	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	r.logger.Info("rollback complete")
	return nil
}
