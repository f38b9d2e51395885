package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/anim"
	"github.com/sawyerbutton/Cyber-Cat/internal/assets"
	"github.com/sawyerbutton/Cyber-Cat/internal/bridge"
	"github.com/sawyerbutton/Cyber-Cat/internal/config"
	"github.com/sawyerbutton/Cyber-Cat/internal/journal"
	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
	"github.com/sawyerbutton/Cyber-Cat/internal/stream"
	"github.com/sawyerbutton/Cyber-Cat/internal/thought"
	"github.com/sawyerbutton/Cyber-Cat/internal/tui"
)

var watchSheet string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the animated companion",
	Long: `Opens the interactive companion view. The pet animates according to
state pushed by the daemon; if the daemon is unreachable, it idles
locally until the connection recovers.

Shortcuts:
  p  pet        f  feed       s  speak
  t  event log  g  gauges     q  quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSheet, "sheet", "", "Load an alternate sprite sheet file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so log output goes to a file (or nowhere)
	// and a capture ring feeds the in-view log panel.
	if cfg.TUI.LogFile != "" {
		f, err := logging.InitFile(cfg.TUI.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		logging.SetOutput(log.New(io.Discard, "", 0))
	}
	ring := logging.NewRing(200)
	logging.SetCapture(ring)

	sheet := assets.Load()
	if watchSheet != "" {
		sheet, err = assets.LoadFrom(watchSheet)
		if err != nil {
			return err
		}
	}

	client := newClient(cfg)
	machine := anim.NewMachine()

	var app *tui.App
	var thoughts *thought.Presenter
	var presenterOpts []thought.Option
	if cfg.Timing.ThoughtMs > 0 {
		presenterOpts = append(presenterOpts, thought.WithTTL(time.Duration(cfg.Timing.ThoughtMs)*time.Millisecond))
	}
	presenterOpts = append(presenterOpts, thought.WithOnChange(func() {
		if app == nil {
			return
		}
		if thoughts != nil && thoughts.Current() != "" {
			app.Bell()
		}
		app.Invalidate()
	}))
	thoughts = thought.New(presenterOpts...)
	defer thoughts.Stop()

	bridgeOpts := []bridge.Option{}
	if cfg.Timing.FallbackMs > 0 {
		bridgeOpts = append(bridgeOpts, bridge.WithFallbackDuration(time.Duration(cfg.Timing.FallbackMs)*time.Millisecond))
	}

	if cfg.Journal.Enabled {
		store, err := openJournal(cfg)
		if err != nil {
			// The journal is a convenience; the pet still renders without it.
			logging.Warn("journal unavailable", "error", err)
		} else {
			defer store.Close()
			bridgeOpts = append(bridgeOpts, bridge.WithRecorder(store))
		}
	}

	bridgeOpts = append(bridgeOpts, bridge.WithEventSink(func(kind, detail string) {
		if app != nil {
			app.Note(kind, detail)
		}
	}))

	b := bridge.New(client, machine, thoughts, bridgeOpts...)

	app = tui.NewApp(os.Stdout, tui.AppOptions{
		Name:       cfg.Pet.Name,
		ShowGauges: cfg.TUI.ShowGauges,
		Sheet:      sheet,
		Machine:    machine,
		Thoughts:   thoughts,
		Bridge:     b,
		LogRing:    ring,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info("connecting to daemon", "server", client.BaseURL())
	b.Bootstrap(ctx)
	sub := b.Subscribe(ctx)
	defer sub.Stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newClient builds the daemon client from config.
func newClient(cfg *config.Config) *stream.Client {
	var opts []stream.Option
	if cfg.Server.Token != "" {
		opts = append(opts, stream.WithAuthToken(cfg.Server.Token))
	}
	return stream.NewClient(cfg.Server.URL, opts...)
}

// openJournal opens the configured journal store, creating its directory.
func openJournal(cfg *config.Config) (*journal.Store, error) {
	path := cfg.Journal.Path
	if path == "" {
		path = config.DefaultJournalPath()
	}
	if path == "" {
		return nil, fmt.Errorf("no journal path available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return journal.Open(path)
}
