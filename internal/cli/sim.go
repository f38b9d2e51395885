package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
	"github.com/sawyerbutton/Cyber-Cat/internal/sim"
)

var (
	simPort   int
	simScript string
	simToken  string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted stand-in daemon",
	Long: `Serves the daemon HTTP/SSE surface from a scripted timeline instead of
a live pet. Useful for development and demos without the real backend.

Example:
  sophie sim
  sophie sim --port 9000 --script day.yaml
  sophie --server http://localhost:8374 watch   # in another terminal`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&simPort, "port", sim.DefaultPort, "Port to listen on")
	simCmd.Flags().StringVar(&simScript, "script", "", "Script file (YAML); omit for the built-in timeline")
	simCmd.Flags().StringVar(&simToken, "sim-token", "", "Require this bearer token")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	var script *sim.Script
	if simScript != "" {
		loaded, err := sim.LoadScript(simScript)
		if err != nil {
			return err
		}
		if err := sim.ValidateScript(loaded); err != nil {
			return fmt.Errorf("invalid script: %w", err)
		}
		script = loaded
	}

	srv := sim.NewServer(sim.Options{
		Port:   simPort,
		Token:  simToken,
		Script: script,
	})
	if err := srv.Start(); err != nil {
		return err
	}

	fmt.Printf("sim daemon listening on %s\n", srv.URL())

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go srv.Run(ctx)
	<-ctx.Done()

	logging.Info("shutting down sim daemon")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}
