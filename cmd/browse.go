package main

import (
	"context"
	"fmt"

	"github.com/altbeat/jukebox/internal/repositories"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/altbeat/jukebox/internal/tasks"
	"github.com/altbeat/jukebox/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI for browsing lists and reviews.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
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

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/jukebox-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	lists := repositories.NewListRepository(db)
	reviews := repositories.NewReviewRepository(db)
	engine := tasks.NewEngine(provider, lists)

	model := ui.NewModel(ctx, engine, lists, reviews)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
