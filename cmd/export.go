package main

import (
	"context"
	"fmt"

	"github.com/altbeat/jukebox/internal/repositories"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/altbeat/jukebox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportUser exports every list belonging to one user.
func (r *Runner) ExportUser(ctx context.Context, cmd *cli.Command) error {
	return r.runExport(ctx, cmd, func(ctx context.Context, engine *tasks.Engine, progress chan<- tasks.ProgressUpdate, opts tasks.BulkExportOpts) (*tasks.BulkExportResult, error) {
		return engine.ExportUser(ctx, progress, cmd.String("id"), opts)
	})
}

// ExportLists exports the lists named as arguments.
func (r *Runner) ExportLists(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one list id is required", shared.ErrInvalidInput)
	}
	return r.runExport(ctx, cmd, func(ctx context.Context, engine *tasks.Engine, progress chan<- tasks.ProgressUpdate, opts tasks.BulkExportOpts) (*tasks.BulkExportResult, error) {
		return engine.ExportLists(ctx, progress, ids, opts)
	})
}

type exportFunc func(ctx context.Context, engine *tasks.Engine, progress chan<- tasks.ProgressUpdate, opts tasks.BulkExportOpts) (*tasks.BulkExportResult, error)

// runExport wires up the engine, streams progress to the terminal, and prints a summary.
func (r *Runner) runExport(ctx context.Context, cmd *cli.Command, run exportFunc) error {
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

	engine := tasks.NewEngine(provider, repositories.NewListRepository(db))

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := run(ctx, engine, progress, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Output directory: %s\n", result.OutputDirectory)
	r.writePlain("Succeeded: %d/%d\n", result.SuccessfulExports, result.TotalLists)
	if result.FailedExports > 0 {
		r.writePlain("Failed: %d\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  ✗ %s: %v\n", res.ListTitle, res.Error)
			}
		}
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}
