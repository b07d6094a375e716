package shared

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file with environment overrides.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Session     SessionConfig     `toml:"session"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	RedirectURI  string `toml:"redirect_uri" env:"SPOTIFY_REDIRECT_URI"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"JUKEBOX_DB_PATH"`
	MaxOpenConns int    `toml:"max_open_conns" env:"JUKEBOX_DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"JUKEBOX_DB_MAX_IDLE_CONNS"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host" env:"JUKEBOX_HOST"`
	Port           int      `toml:"port" env:"PORT"`
	AllowedOrigins []string `toml:"allowed_origins" env:"JUKEBOX_ALLOWED_ORIGINS"`
	FrontendURL    string   `toml:"frontend_url" env:"JUKEBOX_FRONTEND_URL"`
	UploadDir      string   `toml:"upload_dir" env:"JUKEBOX_UPLOAD_DIR"`

	// TrustProxy controls whether X-Forwarded-For is believed when keying
	// the rate limiter. Only enable behind a proxy that strips the header
	// from client traffic; a directly reachable server lets clients pick
	// their own key otherwise.
	TrustProxy bool `toml:"trust_proxy" env:"JUKEBOX_TRUST_PROXY"`
}

// SessionConfig contains session cookie settings.
type SessionConfig struct {
	Secret string `toml:"secret" env:"JUKEBOX_SESSION_SECRET"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies environment variable overrides (environment wins).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnv(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded
// example config, with environment variable overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if err := applyEnv(&config); err != nil {
		panic(fmt.Sprintf("failed to apply environment overrides: %v", err))
	}
	return &config
}

// applyEnv overlays OS environment variables onto config via env struct tags.
func applyEnv(config *Config) error {
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:           config,
		DefaultOverwrite: true,
	})
	if err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
