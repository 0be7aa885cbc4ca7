package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

// shortRun records a run of a few hundred autopiloted steps.
func shortRun(seed int64) runner.Recording {
	tuning := runner.ClassicTuning()
	loop := runner.NewLoop(runner.NewSession(tuning, runner.NewSource(seed)), nil)
	rec := runner.NewRecorder(tuning, seed)
	loop.Record(rec)

	pilot := runner.NewAutopilot(tuning)
	snap := loop.Snapshot()
	for range 300 {
		if cmd, ok := pilot.Decide(snap); ok {
			loop.Submit(cmd)
		}
		snap = loop.Step()
	}
	return rec.Finish(loop.Steps(), snap)
}

func TestReplayBrowserVerifyAndDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, seed := range []int64{3, 4} {
		if _, err := store.SaveReplay("lanes", shortRun(seed)); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	m := NewReplayBrowser(store, "", 100, 30)
	if len(m.entries) != 2 {
		t.Fatalf("browser loaded %d entries, expected 2", len(m.entries))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ReplayBrowser)
	if !strings.Contains(m.status, "verified") {
		t.Errorf("status after select = %q, expected verified", m.status)
	}

	next, _ = m.Update(runeKey('x'))
	m = next.(ReplayBrowser)
	if len(m.entries) != 1 {
		t.Errorf("entries after delete = %d, expected 1", len(m.entries))
	}
	if !strings.Contains(m.View(), "deleted") {
		t.Error("expected the view to report the deletion")
	}
}

func TestReplayBrowserWithoutStore(t *testing.T) {
	m := NewReplayBrowser(nil, "", 80, 24)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("expected an unavailable notice without a store")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ReplayBrowser)
	if !m.IsGoingBack() {
		t.Error("esc should go back")
	}
	if cmd != nil {
		t.Error("embedded browser should not quit the program on back")
	}
}

func TestSessionMenuToReplaysAndBack(t *testing.T) {
	s := NewSessionModel(testConfig(), Options{})

	// Without registered games the only entry is the replay browser.
	last := len(s.menu.items) - 1
	if !s.menu.items[last].Replays {
		t.Fatal("expected the replay browser as the last menu entry")
	}
	for range last {
		next, _ := s.Update(tea.KeyMsg{Type: tea.KeyDown})
		s = next.(SessionModel)
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.browser == nil {
		t.Fatal("selecting Replays should open the browser")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.browser != nil || s.game != nil {
		t.Error("esc should return to the menu")
	}
	if !strings.Contains(s.View(), "L A N E S") {
		t.Error("expected the menu view after going back")
	}
}
