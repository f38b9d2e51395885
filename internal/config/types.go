package config

// ServerConfig locates the backend daemon.
type ServerConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// PetConfig names the companion.
type PetConfig struct {
	Name string `yaml:"name"`
}

// JournalConfig controls the local interaction/thought journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TUIConfig controls optional view elements.
type TUIConfig struct {
	ShowGauges bool   `yaml:"show_gauges"`
	LogFile    string `yaml:"log_file"`
}

// TimingConfig overrides presentation timings, in milliseconds. Zero
// means "use the built-in default".
type TimingConfig struct {
	ThoughtMs  int `yaml:"thought_ms"`
	FallbackMs int `yaml:"fallback_ms"`
}

// Config represents the companion's config.yaml file.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Pet     PetConfig     `yaml:"pet"`
	Journal JournalConfig `yaml:"journal"`
	TUI     TUIConfig     `yaml:"tui"`
	Timing  TimingConfig  `yaml:"timing"`
}
