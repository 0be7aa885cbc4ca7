// lanes is a three-lane endless runner for the terminal.
//
// Usage:
//
//	lanes list              - List available game variants
//	lanes play [game]       - Play a variant, or pick one from the menu
//	lanes sim [game]        - Run the autopilot headlessly
//	lanes replays [game]    - Browse stored replays
//	lanes replay <id>       - Re-simulate a stored replay and verify it
//	lanes serve             - Start SSH server for remote play
//	lanes config [game]     - Print the resolved tuning config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set replay database path (default: ~/.lanes/replays.db)
//	--verbose       - Log debug output
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lanes/internal/games/lanes"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanes",
	Short: "Lanes - a three-lane endless runner in your terminal",
	Long: `Lanes is a terminal endless runner. Obstacles stream toward you on three
lanes; sidestep full boxes and jump over half boxes for as long as you can.

Available commands:
  list     - Show all game variants
  play     - Play a variant (menu when no id is given)
  sim      - Run the autopilot without a terminal UI
  replays  - Browse stored replays
  replay   - Verify a stored replay
  serve    - Start SSH server for remote play
  config   - Print the resolved tuning config

Examples:
  lanes list
  lanes play lanes
  lanes play lanes_tight --watch
  lanes sim --ticks 20000 --save
  lanes replay 12
  lanes serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanes/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns the stderr logger used by the headless commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanes",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
