// Package main provides the sophie-sim binary entry point.
//
// sophie-sim serves the backend daemon's HTTP/SSE surface from a scripted
// timeline instead of a live pet process. It exists so the terminal client
// can be developed and demoed without the real backend.
//
// Usage:
//
//	sophie-sim [flags]
//
// Flags:
//
//	-port      HTTP server port (default: 8374)
//	-script    Script file (YAML); omit for the built-in timeline
//	-token     Bearer token required from clients (optional)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		port       = flag.Int("port", sim.DefaultPort, "HTTP server port")
		scriptPath = flag.String("script", "", "Script file (YAML)")
		token      = flag.String("token", "", "Bearer token for authentication")
	)
	flag.Parse()

	var script *sim.Script
	if *scriptPath != "" {
		loaded, err := sim.LoadScript(*scriptPath)
		if err != nil {
			return err
		}
		if err := sim.ValidateScript(loaded); err != nil {
			return fmt.Errorf("invalid script: %w", err)
		}
		script = loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	srv := sim.NewServer(sim.Options{
		Port:   *port,
		Token:  *token,
		Script: script,
	})
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	log.Printf("sim daemon listening on %s", srv.URL())

	go srv.Run(ctx)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("error stopping HTTP server: %w", err)
	}
	return nil
}
