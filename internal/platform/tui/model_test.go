package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lanes/internal/core"
	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

// fakeGame ends after a fixed number of steps once started.
type fakeGame struct {
	resets  int
	seeds   []int64
	steps   int
	frames  [][]core.Action
	started bool
	over    bool
	endAt   int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.steps = 0
	g.started = false
	g.over = false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, append([]core.Action(nil), in.Actions()...))
	if in.Has(core.ActionStart) {
		g.started = true
	}
	if g.started && !g.over {
		g.steps++
		g.over = g.endAt > 0 && g.steps >= g.endAt
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps, Started: g.started, GameOver: g.over}
}

func (g *fakeGame) Recording() runner.Recording {
	return runner.Recording{Tuning: runner.ClassicTuning(), Seed: 1, Steps: g.steps}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelTickRunsFixedSteps(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), Options{})
	m.Init()

	base := time.Unix(100, 0)
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(base))
	if len(g.frames) != 1 {
		t.Fatalf("first tick ran %d steps, expected 1", len(g.frames))
	}
	if !g.started {
		t.Error("start key should reach the game on the first step")
	}

	// A stalled frame catches up with several steps, inputs go to the first.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	update(t, m, TickMsg(base.Add(3*time.Second/60)))
	if len(g.frames) != 4 {
		t.Fatalf("after catch-up ran %d steps, expected 4", len(g.frames))
	}
	if len(g.frames[1]) != 1 || g.frames[1][0] != core.ActionLeft {
		t.Errorf("first catch-up frame = %v, expected [Left]", g.frames[1])
	}
	if len(g.frames[2]) != 0 || len(g.frames[3]) != 0 {
		t.Errorf("later catch-up frames should be empty: %v %v", g.frames[2], g.frames[3])
	}
}

func TestModelSavesReplayOnceAndRestarts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{endAt: 2}
	m := NewModel(g, testConfig(), Options{Store: store})
	m.Init()

	now := time.Unix(100, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 5 {
		m = update(t, m, TickMsg(now))
		now = now.Add(time.Second / 60)
	}
	if !g.over {
		t.Fatal("expected the fake game to be over")
	}

	entries, err := store.RecentReplays("fake", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 saved replay, got %d", len(entries))
	}
	if !strings.Contains(m.View(), "saved") {
		t.Error("expected the footer to report the saved replay")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	update(t, m, TickMsg(now))
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2 after restart", g.resets)
	}
	if g.seeds[1] == g.seeds[0] {
		t.Error("restart should use a fresh seed")
	}
	if !g.started {
		t.Error("restart should start the new run")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&fakeGame{}, testConfig(), Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored outside the menu")
	}
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}

	inMenu := NewModel(&fakeGame{}, testConfig(), Options{InMenu: true})
	inMenu = update(t, inMenu, tea.KeyMsg{Type: tea.KeyEsc})
	if !inMenu.BackToMenu() {
		t.Error("esc should return to the menu")
	}
}

func TestModelViewHasFooter(t *testing.T) {
	m := NewModel(&fakeGame{}, testConfig(), Options{})
	m.Init()

	lines := strings.Split(m.View(), "\n")
	if len(lines) != testConfig().ScreenH {
		t.Errorf("view has %d lines, expected %d", len(lines), testConfig().ScreenH)
	}
	if !strings.Contains(lines[len(lines)-1], "jump") {
		t.Errorf("footer = %q, expected key help", lines[len(lines)-1])
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
