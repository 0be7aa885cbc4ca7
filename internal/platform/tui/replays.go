package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lanes/internal/runner"
	"github.com/vovakirdan/tui-lanes/internal/storage"
)

// maxReplays is how many journal rows the browser loads.
const maxReplays = 100

var (
	browserTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	browserFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ReplayBrowser is the Bubble Tea model listing stored replays. Select
// re-simulates the highlighted run and reports whether it still matches.
type ReplayBrowser struct {
	store      *storage.Store
	gameID     string // empty lists every game
	entries    []storage.ReplayEntry
	table      table.Model
	help       help.Model
	keys       MenuKeyMap
	width      int
	height     int
	status     string
	standalone bool // back and quit end the program
	quitting   bool
	goingBack  bool
}

// NewReplayBrowser creates a browser over store. gameID filters the list.
func NewReplayBrowser(store *storage.Store, gameID string, width, height int) ReplayBrowser {
	keys := DefaultMenuKeyMap()
	keys.Delete.SetEnabled(true)
	h := help.New()
	h.Width = width

	m := ReplayBrowser{
		store:  store,
		gameID: gameID,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowser) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Game", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Steps", Width: 8},
		{Title: "Inputs", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the newest replays into the table.
func (m *ReplayBrowser) load() {
	m.entries = nil
	if m.store != nil {
		entries, err := m.store.RecentReplays(m.gameID, maxReplays)
		if err != nil {
			m.status = err.Error()
		} else {
			m.entries = entries
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.ID),
			e.GameID,
			fmt.Sprintf("%d", e.FinalScore),
			fmt.Sprintf("%d", e.Steps),
			fmt.Sprintf("%d", e.Inputs),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// current returns the highlighted entry.
func (m ReplayBrowser) current() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// verify re-simulates the highlighted replay.
func (m *ReplayBrowser) verify() {
	e, ok := m.current()
	if !ok {
		return
	}
	_, rec, err := m.store.LoadReplay(e.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := runner.Verify(rec); err != nil {
		m.status = fmt.Sprintf("replay #%d diverged: %v", e.ID, err)
		return
	}
	final := runner.Replay(rec)
	m.status = fmt.Sprintf("replay #%d verified: %d points over %d ticks", e.ID, final.DisplayScore(), final.Ticks)
}

// remove deletes the highlighted replay.
func (m *ReplayBrowser) remove() {
	e, ok := m.current()
	if !ok {
		return
	}
	if err := m.store.DeleteReplay(e.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("replay #%d deleted", e.ID)
	m.load()
}

// Init initializes the browser.
func (m ReplayBrowser) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.verify()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.remove()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplayBrowser) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "REPLAYS"
	if m.gameID != "" {
		title = "REPLAYS - " + m.gameID
	}
	b.WriteString(centerText(browserTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.store == nil:
		content = emptyStyle.Render("Replay journal unavailable.")
	case len(m.entries) == 0:
		content = emptyStyle.Render("No replays recorded yet.\nFinish a run to record one!")
	default:
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, browserFrameStyle.Render(content)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowser) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowser) IsQuitting() bool {
	return m.quitting
}

// RunReplayBrowser runs the browser as its own program.
func RunReplayBrowser(store *storage.Store, gameID string, width, height int) error {
	model := NewReplayBrowser(store, gameID, width, height)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
