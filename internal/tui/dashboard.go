package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/workspace"
)

// tickMsg is sent when the clock ticks.
type tickMsg time.Time

type dashboardKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Advance key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Toggle, k.Advance, k.Refresh, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var dashboardKeys = dashboardKeyMap{
	Next:    key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "panel")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "h", "left")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "toggle")),
	Advance: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move ticket")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Workspace *workspace.Workspace
	// RefreshInterval is how often the clock and expired messages update.
	RefreshInterval time.Duration
	// Watcher, when set, reloads the workspace on collection changes.
	Watcher *Watcher
	// Poll reloads the workspace on every tick. Used for backends that
	// cannot be watched.
	Poll bool
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	ws      *workspace.Workspace
	watcher *Watcher
	poll    bool

	panel   Panel
	cursors map[Panel]int

	keys dashboardKeyMap
	help help.Model

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &DashboardModel{
		ws:              config.Workspace,
		watcher:         config.Watcher,
		poll:            config.Poll,
		cursors:         map[Panel]int{},
		keys:            dashboardKeys,
		help:            help.New(),
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		if m.poll {
			m.reload()
		}
		return m, m.tickCmd()

	case dataChangedMsg:
		m.reload()
		return m, waitForChange(m.watcher.Changes())
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.panel = (m.panel + 1) % 3

	case key.Matches(msg, m.keys.Prev):
		m.panel = (m.panel + 2) % 3

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Advance):
		m.advanceSelected()

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
		m.setMessage("Refreshed", time.Second)
	}

	return m, nil
}

func (m *DashboardModel) reload() {
	m.ws.Reload()
	m.err = nil
	m.clampCursors()
}

func (m *DashboardModel) length(p Panel) int {
	switch p {
	case PanelTasks:
		return len(m.todayTasks())
	case PanelHabits:
		return len(m.ws.Habits())
	default:
		return len(m.ws.Tickets())
	}
}

func (m *DashboardModel) moveCursor(delta int) {
	n := m.length(m.panel)
	if n == 0 {
		return
	}
	m.cursors[m.panel] = (m.cursors[m.panel] + delta + n) % n
}

func (m *DashboardModel) clampCursors() {
	for _, p := range []Panel{PanelTasks, PanelHabits, PanelBoard} {
		if n := m.length(p); m.cursors[p] >= n {
			m.cursors[p] = max(n-1, 0)
		}
	}
}

func (m *DashboardModel) todayTasks() []model.Task {
	return m.ws.TasksOn(m.ws.Today())
}

// Selected returns the active panel and its cursor.
func (m *DashboardModel) Selected() (Panel, int) {
	return m.panel, m.cursors[m.panel]
}

func (m *DashboardModel) toggleSelected() {
	i := m.cursors[m.panel]
	if i >= m.length(m.panel) {
		return
	}

	switch m.panel {
	case PanelTasks:
		t, err := m.ws.ToggleTask(m.todayTasks()[i].ID)
		if err != nil {
			m.err = err
			return
		}
		if t.Completed {
			m.setMessage("Done: "+t.Title, 2*time.Second)
		}
	case PanelHabits:
		h, err := m.ws.ToggleHabit(m.ws.Habits()[i].ID, "")
		if err != nil {
			m.err = err
			return
		}
		m.setMessage(fmt.Sprintf("%s: %d day streak", h.Title, h.Streak), 2*time.Second)
	case PanelBoard:
		m.advanceSelected()
	}
}

// advanceSelected moves the selected ticket to the next board column.
func (m *DashboardModel) advanceSelected() {
	if m.panel != PanelBoard {
		return
	}
	i := m.cursors[PanelBoard]
	tickets := m.ws.Tickets()
	if i >= len(tickets) {
		return
	}

	next := nextStatus(tickets[i].Status)
	t, err := m.ws.MoveTicket(tickets[i].ID, next)
	if err != nil {
		m.err = err
		return
	}
	m.setMessage(fmt.Sprintf("%s → %s", t.TicketID, next.Label()), 2*time.Second)
}

// nextStatus returns the column after s, wrapping from done to todo.
func nextStatus(s model.TicketStatus) model.TicketStatus {
	for i, status := range model.Statuses {
		if status == s {
			return model.Statuses[(i+1)%len(model.Statuses)]
		}
	}
	return model.StatusTodo
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	a := m.ws.Activity()
	now := m.ws.Now()

	var sections []string
	sections = append(sections, m.renderHeader(a, now))

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	col := max(m.width/3, 24)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		panelBox(panelTitles[PanelTasks], TaskLines(m.todayTasks(), m.cursorFor(PanelTasks)), col, m.panel == PanelTasks),
		panelBox(panelTitles[PanelHabits], HabitLines(a.Habits, m.ws.Today(), m.cursorFor(PanelHabits)), col, m.panel == PanelHabits),
		panelBox(panelTitles[PanelBoard], TicketLines(a.Tickets, m.cursorFor(PanelBoard)), col, m.panel == PanelBoard),
	)
	sections = append(sections, row)

	week := analytics.WeeklyFocus(a.Sessions, now)
	weekTitle := fmt.Sprintf("Focus this week: %.1fh", analytics.WeeklyTotalHours(week))
	sections = append(sections, panelBox(weekTitle, WeekLines(week, col), col*2, false))
	sections = append(sections, BadgeLine(analytics.Badges(a, now.Location())))
	sections = append(sections, StyleHelp.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) cursorFor(p Panel) int {
	if m.panel != p {
		return -1
	}
	return m.cursors[p]
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader(a analytics.Activity, now time.Time) string {
	name := m.ws.Profile().Name
	title := StyleTitle.Render("Boost · " + name)
	timeStr := StyleSubtitle.Render(now.Format("Mon Jan 2, 15:04"))

	top := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr)
	return top + "\n" + LevelLine(a.XP(), m.width) + "\n"
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	m := NewDashboardModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
