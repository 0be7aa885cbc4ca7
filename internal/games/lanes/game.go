// Package lanes plugs the lane runner simulation into the platform. It maps
// input frames to runner commands, journals every run for replay and draws
// the snapshot as a three-lane track seen from above.
package lanes

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lanes/internal/config"
	"github.com/vovakirdan/tui-lanes/internal/core"
	"github.com/vovakirdan/tui-lanes/internal/registry"
	"github.com/vovakirdan/tui-lanes/internal/runner"
)

// Game adapts a runner.Loop to the registry.Game interface.
type Game struct {
	id     string
	title  string
	preset config.Preset

	runtime  core.RuntimeConfig
	tuning   runner.Tuning
	pending  *runner.Tuning
	loop     *runner.Loop
	recorder *runner.Recorder
	snap     runner.Snapshot
	peak     int // highest jump height for the current tuning
	frame    int // animation counter
}

var (
	configPath string
	presetFlag config.Preset
	loopLogger *log.Logger
	commands   = map[core.Action]runner.Command{
		core.ActionStart: runner.CommandStart,
		core.ActionLeft:  runner.CommandMoveLeft,
		core.ActionRight: runner.CommandMoveRight,
		core.ActionJump:  runner.CommandJump,
	}
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset forces a preset on every variant. An empty preset keeps each
// variant's own.
func SetPreset(p config.Preset) {
	presetFlag = p
}

// SetLogger sets the logger handed to new loops. Nil disables loop diagnostics.
func SetLogger(l *log.Logger) {
	loopLogger = l
}

// New creates the classic variant.
func New() *Game {
	return &Game{id: "lanes", title: "Lanes", preset: config.PresetClassic}
}

// NewTight creates the faster, denser variant.
func NewTight() *Game {
	return &Game{id: "lanes_tight", title: "Lanes (tight)", preset: config.PresetTight}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// LoadConfig resolves the configuration for this variant. The variant's
// preset seeds the embedded defaults, the config file and the environment
// overlay it, and a preset forced with SetPreset wins over both.
func (g *Game) LoadConfig() (config.LanesConfig, error) {
	base := config.EmbeddedLanesConfig()
	config.ApplyPreset(&base, g.preset)

	cfg, err := config.LoadLanesOver(base, configPath)
	if err != nil {
		return cfg, err
	}
	if presetFlag != "" {
		config.ApplyPreset(&cfg, presetFlag)
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: preset %s: %w", presetFlag, err)
		}
	}
	return cfg, nil
}

// LoadTuning resolves the tuning for this variant. See LoadConfig.
func (g *Game) LoadTuning() (runner.Tuning, error) {
	cfg, err := g.LoadConfig()
	if err != nil {
		return runner.Tuning{}, err
	}
	return cfg.Tuning(), nil
}

// SetTuning replaces the tuning used from the next Reset on.
func (g *Game) SetTuning(t runner.Tuning) {
	g.pending = &t
}

// Tuning returns the tuning of the current run.
func (g *Game) Tuning() runner.Tuning {
	return g.tuning
}

// Reset builds a fresh session seeded from runtime.Seed. The session waits
// for a start action.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	switch {
	case g.pending != nil:
		g.tuning = *g.pending
		g.pending = nil
	default:
		t, err := g.LoadTuning()
		if err != nil {
			if loopLogger != nil {
				loopLogger.Warn("using built-in tuning", "game", g.id, "err", err)
			}
			t = g.fallbackTuning()
		}
		g.tuning = t
	}

	session := runner.NewSession(g.tuning, runner.NewSource(runtime.Seed))
	g.loop = runner.NewLoop(session, loopLogger)
	g.recorder = runner.NewRecorder(g.tuning, runtime.Seed)
	g.loop.Record(g.recorder)
	g.snap = g.loop.Snapshot()
	g.peak = peakHeight(g.tuning)
	g.frame = 0
}

func (g *Game) fallbackTuning() runner.Tuning {
	if g.preset == config.PresetTight || presetFlag == config.PresetTight {
		return runner.TightTuning()
	}
	return runner.ClassicTuning()
}

// Step applies the frame's actions in order and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Actions() {
		if cmd, ok := commands[a]; ok {
			g.loop.Submit(cmd)
		}
	}
	g.snap = g.loop.Step()
	g.frame++
	return core.StepResult{State: g.State()}
}

// Snapshot returns the state after the last step.
func (g *Game) Snapshot() runner.Snapshot {
	return g.snap
}

// Recording seals the journal of everything applied since the last Reset.
func (g *Game) Recording() runner.Recording {
	return g.recorder.Finish(g.loop.Steps(), g.snap)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.DisplayScore(),
		Started:  g.snap.Phase != runner.NotStarted,
		GameOver: g.snap.Phase == runner.GameOver,
	}
}

// peakHeight returns the top of a jump launched from the ground.
func peakHeight(t runner.Tuning) int {
	p := runner.NewPlayer(t)
	p.Jump()
	peak := 0
	for range t.AirTime() {
		p.Advance()
		peak = max(peak, p.JumpHeight())
	}
	return peak
}

func init() {
	registry.Register("lanes", func() registry.Game {
		return New()
	})
	registry.Register("lanes_tight", func() registry.Game {
		return NewTight()
	})
}
