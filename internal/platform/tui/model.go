package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lanes/internal/config"
	"github.com/vovakirdan/tui-lanes/internal/core"
	"github.com/vovakirdan/tui-lanes/internal/registry"
	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

// Recordable is implemented by games that journal their runs.
type Recordable interface {
	Recording() runner.Recording
}

// Retunable is implemented by games whose tuning can be reloaded while
// the program runs.
type Retunable interface {
	LoadTuning() (runner.Tuning, error)
	SetTuning(t runner.Tuning)
}

// Options carries the optional collaborators of a Model.
type Options struct {
	Store   *storage.Store  // replay journal; nil disables saving
	Watcher *config.Watcher // config hot reload; nil disables it
	Logger  *log.Logger     // nil disables logging
	InMenu  bool            // back key returns to the menu instead of quitting
}

// configChangedMsg is sent when the watched config file changes.
type configChangedMsg struct{ path string }

// configErrorMsg is sent when the config watcher fails.
type configErrorMsg struct{ err error }

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	config      core.RuntimeConfig
	opts        Options
	pacer       *runner.Pacer
	keys        GameKeyMap
	help        help.Model
	inputFrame  core.InputFrame
	gameState   core.GameState
	status      string
	replaySaved bool // Whether the replay has been saved for current game over
	quitting    bool
	backToMenu  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	keys := DefaultGameKeyMap()
	keys.Back.SetEnabled(opts.InMenu)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:     cfg,
		opts:       opts,
		pacer:      runner.NewPacer(cfg.TickRate),
		keys:       keys,
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// playHeight leaves the last row for the help footer.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), m.waitForConfig())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case configChangedMsg:
		m.reloadConfig(msg.path)
		return m, m.waitForConfig()

	case configErrorMsg:
		m.logError("config watcher failed", msg.err)
		return m, m.waitForConfig()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick runs as many fixed steps as the elapsed time is worth.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// A restart after game over gets a fresh seed and journal.
	if m.gameState.GameOver && m.inputFrame.Has(core.ActionStart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.replaySaved = false
		m.status = ""
	}

	for range m.pacer.Advance(now) {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.inputFrame.Clear()
		if m.gameState.GameOver {
			break
		}
	}

	if m.gameState.GameOver && !m.replaySaved {
		m.saveReplay()
		m.replaySaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveReplay stores the finished run in the journal, if the game keeps one.
func (m *Model) saveReplay() {
	rg, ok := m.game.(Recordable)
	if !ok || m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveReplay(m.game.ID(), rg.Recording())
	if err != nil {
		m.logError("could not save replay", err)
		return
	}
	m.status = fmt.Sprintf("replay #%d saved", id)
	if m.opts.Logger != nil {
		m.opts.Logger.Info("replay saved", "id", id, "game", m.game.ID(), "score", m.gameState.Score)
	}
}

// waitForConfig blocks on the next watcher event.
func (m Model) waitForConfig() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path := <-w.Events:
			return configChangedMsg{path: path}
		case err := <-w.Errors:
			return configErrorMsg{err: err}
		case <-w.Done():
			return nil
		}
	}
}

// reloadConfig validates the changed file and queues it for the next run.
func (m *Model) reloadConfig(path string) {
	rg, ok := m.game.(Retunable)
	if !ok {
		return
	}
	t, err := rg.LoadTuning()
	if err != nil {
		m.status = "config rejected"
		m.logError("config rejected", err)
		return
	}
	rg.SetTuning(t)
	m.status = "config reloaded, applies next run"
	if m.opts.Logger != nil {
		m.opts.Logger.Info("config reloaded", "path", path, "speed", t.Speed, "spawn_chance", t.SpawnChance)
	}
}

func (m Model) logError(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Error(msg, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logError("could not save screenshot", err)
		return
	}
	dir := filepath.Join(home, ".lanes", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logError("could not save screenshot", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logError("could not save screenshot", err)
		return
	}
	m.status = "screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer += "  " + statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
