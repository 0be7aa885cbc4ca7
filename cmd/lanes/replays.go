package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lanes/internal/platform/tui"
	"github.com/vovakirdan/tui-lanes/internal/registry"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays [game]",
	Short: "Browse stored replays",
	Long: `Browse the replay journal, optionally filtered to one game variant.

The interactive browser verifies the highlighted replay with Enter and
deletes it with X. Use --plain for a plain listing.

Examples:
  lanes replays
  lanes replays lanes_tight
  lanes replays --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of replays in the plain listing")
}

func runReplays(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'lanes list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain {
		if err := printReplays(store, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if err := tui.RunReplayBrowser(store, gameID, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printReplays(store *storage.Store, gameID string) error {
	entries, err := store.RecentReplays(gameID, flagLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	fmt.Printf("  %-6s %-12s %8s %8s %7s  %s\n", "ID", "Game", "Score", "Steps", "Inputs", "Date")
	fmt.Printf("  %-6s %-12s %8s %8s %7s  %s\n", "--", "----", "-----", "-----", "------", "----")
	for _, e := range entries {
		fmt.Printf("  %-6d %-12s %8d %8d %7d  %s\n",
			e.ID, e.GameID, e.FinalScore, e.Steps, e.Inputs,
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
