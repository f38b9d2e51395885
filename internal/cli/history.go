package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawyerbutton/Cyber-Cat/internal/journal"
)

var (
	historyLimit int
	historyKind  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local journal of thoughts and interactions",
	Long: `Prints recent journal entries, newest first. The journal is written by
the watch view as thoughts and interactions happen.

Example:
  sophie history
  sophie history --limit 50
  sophie history --kind thought`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Filter by kind (thought, interaction, user_speech)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return fmt.Errorf("journal is disabled in config")
	}

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []journal.Entry
	if historyKind != "" {
		entries, err = store.RecentByKind(historyKind, historyLimit)
	} else {
		entries, err = store.Recent(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-12s %s\n", e.Timestamp.Local().Format("2006-01-02 15:04"), e.Kind, e.Content)
	}
	return nil
}
