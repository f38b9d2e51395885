package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

var stateJSON bool

// stateTimeout bounds the one-shot commands' round trips.
const stateTimeout = 10 * time.Second

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the pet's current state",
	Long: `Fetches the current snapshot from the daemon and prints it.

Example:
  sophie state
  sophie state --json`,
	Args: cobra.NoArgs,
	RunE: runState,
}

func init() {
	stateCmd.Flags().BoolVar(&stateJSON, "json", false, "Print raw JSON")
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), stateTimeout)
	defer cancel()

	state, err := newClient(cfg).GetState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch state: %w", err)
	}

	if stateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	printSnapshot(cfg.Pet.Name, state)
	return nil
}

func printSnapshot(name string, state *pet.State) {
	fmt.Printf("%s\n", name)
	printField("Emotion", state.Emotion)
	printField("Behavior", string(state.BehaviorTag()))
	if state.IsSleeping {
		printField("Sleeping", "yes")
	}
	printField("Energy", formatGaugeValue(state.Energy))
	printField("Hunger", formatGaugeValue(state.Hunger))
	printField("Sleepiness", formatGaugeValue(state.Sleepiness))
	printField("Trust", formatGaugeValue(state.Trust))
	printField("Intimacy", formatGaugeValue(state.Intimacy))
	if state.MinutesSinceInteraction > 0 {
		printField("Last seen", fmt.Sprintf("%dm ago", state.MinutesSinceInteraction))
	}
}

func printField(label, value string) {
	fmt.Printf("  %-12s %s\n", label+":", value)
}

func formatGaugeValue(v float64) string {
	return fmt.Sprintf("%.0f/100", v)
}
