package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/teemow/gapikit/internal/instrumentation"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "gapikit.toml"

	DefaultAccount  = "default"
	DefaultUserID   = "me"
	DefaultTimeZone = "UTC"
)

// Environment variables that override file values.
const (
	EnvAccount      = "GAPIKIT_ACCOUNT"
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvTokenDir     = "GAPIKIT_TOKEN_DIR"
	EnvLogLevel     = "GAPIKIT_LOG_LEVEL"
	EnvLogFormat    = "GAPIKIT_LOG_FORMAT"
	EnvMaxPages     = "GAPIKIT_MAX_PAGES"
)

// Config holds all gapikit settings.
type Config struct {
	Account      string `toml:"account" validate:"required,max=64,account"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`

	// TokenDir holds the per-account token files. Empty means the user cache dir.
	TokenDir string `toml:"token_dir"`

	// UserID is the Gmail user the helpers act on.
	UserID string `toml:"user_id" validate:"required"`

	// DefaultTimeZone is used for new calendars and event listings.
	DefaultTimeZone string `toml:"default_time_zone" validate:"required,timezone"`

	LogLevel  string `toml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `toml:"log_format" validate:"omitempty,oneof=text json"`

	// MaxPages bounds every paginated fetch. Zero means unlimited.
	MaxPages int `toml:"max_pages" validate:"gte=0"`

	Instrumentation instrumentation.Config `toml:"instrumentation"`

	// Path is the file the config was loaded from, empty if none.
	Path string `toml:"-"`
}

// Default returns the built-in defaults, with instrumentation settings taken
// from the environment.
func Default() Config {
	return Config{
		Account:         DefaultAccount,
		UserID:          DefaultUserID,
		DefaultTimeZone: DefaultTimeZone,
		LogLevel:        "info",
		LogFormat:       "text",
		Instrumentation: instrumentation.DefaultConfig(),
	}
}

// Load reads the config file (explicitPath, or the first file found in the
// search path), then applies environment overrides.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path, err := findFile(explicitPath)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Path = path
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SearchPaths returns the implicit config file locations in lookup order.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "gapikit", "config.toml"))
	}
	return paths
}

func findFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("failed to open config file: %w", err)
		}
		return explicitPath, nil
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat config file %s: %w", p, err)
		}
	}
	return "", nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Account, EnvAccount)
	setString(&c.ClientID, EnvClientID)
	setString(&c.ClientSecret, EnvClientSecret)
	setString(&c.TokenDir, EnvTokenDir)
	setString(&c.LogLevel, EnvLogLevel)
	setString(&c.LogFormat, EnvLogFormat)

	if v := os.Getenv(EnvMaxPages); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxPages, v, err)
		}
		c.MaxPages = n
	}
	return nil
}

// Location returns the *time.Location for DefaultTimeZone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks all fields, including the nested instrumentation settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Instrumentation.Enabled {
		if err := c.Instrumentation.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCredentials checks that OAuth client credentials are present.
func (c *Config) ValidateCredentials() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client_id ("+EnvClientID+")")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret ("+EnvClientSecret+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing OAuth client credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}
