package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	provider services.Provider
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Provider services.Provider
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		provider: opts.Provider,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, exportCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, used when a command redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// reloadConfig swaps in the config file named by the command's --config flag
// when it differs from what main loaded.
func (r *Runner) reloadConfig(cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		return nil
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil
	}
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	r.config = config
	return nil
}

// openDatabase opens the configured database with pool settings applied.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// requireProvider rebuilds the catalog provider from the current config if
// main could not construct one at startup.
func (r *Runner) requireProvider() (services.Provider, error) {
	if r.provider != nil {
		return r.provider, nil
	}
	svc, err := services.NewSpotifyService(r.config.Credentials.Spotify)
	if err != nil {
		return nil, err
	}
	r.provider = svc
	return svc, nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
