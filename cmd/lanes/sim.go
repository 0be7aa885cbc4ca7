package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lanes/internal/registry"
	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

var (
	flagSimTicks    int
	flagSimRealtime bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim [game]",
	Short: "Run the autopilot headlessly",
	Long: `Run a session driven by the built-in autopilot without a terminal UI.

By default the simulation runs as fast as possible. With --realtime it is
paced at --fps through the guarded loop and can be stopped with Ctrl+C.
The run ends on game over or after --ticks steps.

Examples:
  lanes sim
  lanes sim lanes_tight --seed 42
  lanes sim --ticks 50000 --save
  lanes sim --realtime --verbose`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Maximum number of steps")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace steps at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the run in the replay journal")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lanes config YAML")
	simCmd.Flags().StringVar(&flagPreset, "preset", "", "Tuning preset: classic, tight")
}

// tunable is implemented by games that resolve their tuning from config.
type tunable interface {
	LoadTuning() (runner.Tuning, error)
}

func runSim(cmd *cobra.Command, args []string) {
	if err := sim(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sim(args []string) error {
	logger := newLogger()
	if err := applyGameFlags(); err != nil {
		return err
	}

	gameID := "lanes"
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	tg, ok := game.(tunable)
	if !ok {
		return fmt.Errorf("game %q cannot run headlessly", gameID)
	}
	tuning, err := tg.LoadTuning()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	loop := runner.NewLoop(runner.NewSession(tuning, runner.NewSource(seed)), logger)
	rec := runner.NewRecorder(tuning, seed)
	loop.Record(rec)
	pilot := runner.NewAutopilot(tuning)

	logger.Info("simulation started",
		"game", gameID,
		"seed", seed,
		"speed", tuning.Speed,
		"spawn_chance", tuning.SpawnChance,
		"realtime", flagSimRealtime,
	)

	var final runner.Snapshot
	if flagSimRealtime {
		final = simRealtime(loop, pilot)
	} else {
		final = loop.Snapshot()
		for loop.Steps() < flagSimTicks && final.Phase != runner.GameOver {
			if c, ok := pilot.Decide(final); ok {
				loop.Submit(c)
			}
			final = loop.Step()
		}
	}

	logger.Info("simulation finished",
		"phase", final.Phase,
		"score", final.DisplayScore(),
		"ticks", final.Ticks,
		"steps", loop.Steps(),
		"inputs", rec.Len(),
	)

	if !flagSimSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveReplay(gameID, rec.Finish(loop.Steps(), final))
	if err != nil {
		return err
	}
	logger.Info("replay saved", "id", id)
	return nil
}

// simRealtime paces the loop at --fps until game over, the step limit or an
// interrupt.
func simRealtime(loop *runner.Loop, pilot *runner.Autopilot) runner.Snapshot {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Prime the first decision; later ones follow each frame.
	if c, ok := pilot.Decide(loop.Snapshot()); ok {
		loop.Submit(c)
	}

	return loop.Run(ctx, flagFPS, func(s runner.Snapshot) {
		if s.Phase == runner.GameOver || loop.Steps() >= flagSimTicks {
			cancel()
			return
		}
		if c, ok := pilot.Decide(s); ok {
			loop.Submit(c)
		}
	})
}
