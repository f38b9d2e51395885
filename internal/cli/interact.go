package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

var clickCmd = &cobra.Command{
	Use:     "pet",
	Aliases: []string{"click"},
	Short:   "Pet the companion",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteraction(cmd, func(ctx context.Context, cfg clientConfig) (*pet.State, error) {
			return cfg.client.Click(ctx)
		})
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Feed the companion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteraction(cmd, func(ctx context.Context, cfg clientConfig) (*pet.State, error) {
			return cfg.client.Feed(ctx)
		})
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <message>",
	Short: "Say something to the companion",
	Long: `Sends an utterance to the daemon. The immediate snapshot is printed;
the pet's reply arrives on the push stream and shows up in the watch view.

Example:
  sophie speak "who's a good cat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		return runInteraction(cmd, func(ctx context.Context, cfg clientConfig) (*pet.State, error) {
			return cfg.client.Speak(ctx, message)
		})
	},
}

func init() {
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(speakCmd)
}

type clientConfig struct {
	name   string
	client interface {
		Click(ctx context.Context) (*pet.State, error)
		Feed(ctx context.Context) (*pet.State, error)
		Speak(ctx context.Context, message string) (*pet.State, error)
	}
}

// runInteraction sends one command and prints the resulting snapshot.
func runInteraction(cmd *cobra.Command, call func(context.Context, clientConfig) (*pet.State, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), stateTimeout)
	defer cancel()

	cc := clientConfig{name: cfg.Pet.Name, client: newClient(cfg)}
	state, err := call(ctx, cc)
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	printSnapshot(cc.name, state)
	return nil
}
