package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lanes/internal/config"
	"github.com/vovakirdan/tui-lanes/internal/core"
	"github.com/vovakirdan/tui-lanes/internal/games/lanes"
	"github.com/vovakirdan/tui-lanes/internal/platform/tui"
	"github.com/vovakirdan/tui-lanes/internal/registry"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

var (
	flagConfig  string
	flagPreset  string
	flagWatch   bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified variant, or pick one from a menu.

Controls:
  Left/A, Right/D  - Change lane
  Space/Up/W       - Jump
  Enter/R          - Start, restart after game over
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Presets:
  classic - speed 1, 1% spawn chance, launch velocity 15
  tight   - speed 2, 3% spawn chance, launch velocity 25

Every finished run is saved to the replay journal.

Examples:
  lanes play
  lanes play lanes
  lanes play lanes --preset tight
  lanes play lanes --config ./my-lanes.yaml --watch
  LANES_SPEED=3 lanes play lanes`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lanes config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Tuning preset: classic, tight")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies on the next run)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

// applyGameFlags hands --config and --preset to the lanes variants.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}
	lanes.SetConfigPath(flagConfig)
	lanes.SetPreset(preset)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(args []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	var game registry.Game
	if len(args) == 1 {
		g, err := registry.Create(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'lanes list' to see available games)", err)
		}
		game = g
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var opts tui.Options

	// The alt screen owns the terminal, so logs only go to a file.
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		opts.Logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "lanes"})
		if flagVerbose {
			opts.Logger.SetLevel(log.DebugLevel)
		}
		lanes.SetLogger(opts.Logger)
	}

	if flagWatch {
		path, ok := config.Locate(flagConfig)
		if !ok {
			return fmt.Errorf("--watch needs a config file; pass --config or create ~/.lanes/configs/%s", config.FileName)
		}
		watcher, err := config.NewWatcher(path)
		if err != nil {
			return err
		}
		defer watcher.Close()
		opts.Watcher = watcher
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if game == nil {
		return tui.RunSession(cfg, opts)
	}
	return tui.Run(game, cfg, opts)
}
