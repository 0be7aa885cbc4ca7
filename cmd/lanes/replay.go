package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

var flagDelete bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a stored replay and verify it",
	Long: `Load a replay from the journal, run it again from its seed and inputs,
and check that it reaches the recorded final state.

Examples:
  lanes replay 12
  lanes replay 12 --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay instead of verifying it")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}
	if err := replay(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func replay(id int64) error {
	logger := newLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete {
		if err := store.DeleteReplay(id); err != nil {
			return err
		}
		logger.Info("replay deleted", "id", id)
		return nil
	}

	entry, rec, err := store.LoadReplay(id)
	if err != nil {
		return err
	}
	logger.Debug("replay loaded",
		"id", entry.ID,
		"game", entry.GameID,
		"seed", entry.Seed,
		"steps", entry.Steps,
		"inputs", entry.Inputs,
	)

	if err := runner.Verify(rec); err != nil {
		return fmt.Errorf("replay #%d diverged: %w", id, err)
	}

	final := runner.Replay(rec)
	logger.Info("replay verified",
		"id", entry.ID,
		"game", entry.GameID,
		"score", final.DisplayScore(),
		"ticks", final.Ticks,
		"phase", final.Phase,
	)
	return nil
}
