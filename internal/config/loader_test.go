package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, DefaultPetName, cfg.Pet.Name)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, DefaultThoughtMs, cfg.Timing.ThoughtMs)
	assert.Equal(t, DefaultFallbackMs, cfg.Timing.FallbackMs)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  url: http://pethost:9000
  token: sekrit
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://pethost:9000", cfg.Server.URL)
	assert.Equal(t, "sekrit", cfg.Server.Token)
	// Unspecified sections keep defaults.
	assert.Equal(t, DefaultPetName, cfg.Pet.Name)
	assert.Equal(t, DefaultThoughtMs, cfg.Timing.ThoughtMs)
}

func TestLoadConfig_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  url: http://localhost:8374
pet:
  name: Miso
journal:
  enabled: false
  path: /tmp/miso.db
tui:
  show_gauges: false
timing:
  thought_ms: 2000
  fallback_ms: 1000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Miso", cfg.Pet.Name)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/miso.db", cfg.Journal.Path)
	assert.False(t, cfg.TUI.ShowGauges)
	assert.Equal(t, 2000, cfg.Timing.ThoughtMs)
	assert.Equal(t, 1000, cfg.Timing.FallbackMs)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "server: [not: valid")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "empty server url",
			mutate:    func(c *Config) { c.Server.URL = "" },
			wantField: "server.url",
		},
		{
			name:      "relative server url",
			mutate:    func(c *Config) { c.Server.URL = "localhost:8374" },
			wantField: "server.url",
		},
		{
			name:      "empty pet name",
			mutate:    func(c *Config) { c.Pet.Name = "" },
			wantField: "pet.name",
		},
		{
			name:      "negative thought ms",
			mutate:    func(c *Config) { c.Timing.ThoughtMs = -1 },
			wantField: "timing.thought_ms",
		},
		{
			name:      "negative fallback ms",
			mutate:    func(c *Config) { c.Timing.FallbackMs = -5 },
			wantField: "timing.fallback_ms",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := ValidateConfig(&cfg)
			require.Error(t, err)
			require.True(t, IsValidationError(err))

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}

	cfg := DefaultConfig()
	assert.NoError(t, ValidateConfig(&cfg))
}

func TestDefaultPaths(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, DefaultPath())
	assert.NotEmpty(t, DefaultJournalPath())
}
