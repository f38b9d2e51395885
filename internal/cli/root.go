package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/config"
	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagServer  string
	flagToken   string
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sophie",
	Short: "Terminal companion for the Sophie desktop pet",
	Long: `Sophie renders a virtual pet in your terminal, kept in sync with the
backend daemon that owns the pet's state. It animates behavior pushed
over the event stream, shows thought bubbles, and sends interactions
(pet, feed, speak) back to the daemon.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("sophie version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Backend daemon URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for the daemon (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagToken != "" {
		cfg.Server.Token = flagToken
	}
	if flagVerbose {
		logging.SetLevel(logging.LevelDebug)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
