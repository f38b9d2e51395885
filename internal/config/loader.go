// Package config loads and validates the companion's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultServerURL  = "http://localhost:8374"
	DefaultPetName    = "Sophie"
	DefaultThoughtMs  = 4000
	DefaultFallbackMs = 2500
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{URL: DefaultServerURL},
		Pet:    PetConfig{Name: DefaultPetName},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "", // resolved to the user data dir when empty
		},
		TUI: TUIConfig{ShowGauges: true},
		Timing: TimingConfig{
			ThoughtMs:  DefaultThoughtMs,
			FallbackMs: DefaultFallbackMs,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LoadConfig reads and parses the config file at path. If the file does
// not exist, defaults are returned. Missing fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Server.URL == "" {
		return ValidationError{Field: "server.url", Message: "required field is empty"}
	}
	u, err := url.Parse(cfg.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{Field: "server.url", Message: "must be an absolute URL"}
	}
	if cfg.Pet.Name == "" {
		return ValidationError{Field: "pet.name", Message: "required field is empty"}
	}
	if cfg.Timing.ThoughtMs < 0 {
		return ValidationError{Field: "timing.thought_ms", Message: "must not be negative"}
	}
	if cfg.Timing.FallbackMs < 0 {
		return ValidationError{Field: "timing.fallback_ms", Message: "must not be negative"}
	}
	return nil
}

// DefaultPath returns the default config file location under the user's
// config directory, or a working-directory fallback when that cannot be
// resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "sophie.yaml")
	}
	return filepath.Join(dir, "cyber-cat", "config.yaml")
}

// DefaultJournalPath returns the default journal database location under
// the user's data directory.
func DefaultJournalPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "sophie.db")
	}
	return filepath.Join(dir, "cyber-cat", "sophie.db")
}
