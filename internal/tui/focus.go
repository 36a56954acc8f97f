package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/timer"
	"github.com/manav03panchal/boost/internal/workspace"
)

// frameInterval is how often the focus screen ticks the engine.
const frameInterval = 100 * time.Millisecond

// frameMsg drives the focus timer.
type frameMsg time.Time

type focusKeyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Switch  key.Binding
	Ambient key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Quit    key.Binding
}

func (k focusKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Switch, k.Ambient, k.Quit}
}

func (k focusKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Switch},
		{k.Longer, k.Shorter, k.Ambient, k.Quit},
	}
}

var focusKeys = focusKeyMap{
	Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Switch:  key.NewBinding(key.WithKeys("s", "tab"), key.WithHelp("s", "focus/break")),
	Ambient: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ambient")),
	Longer:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "longer")),
	Shorter: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shorter")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// FocusConfig configures the focus timer screen.
type FocusConfig struct {
	Engine    *timer.Engine
	Workspace *workspace.Workspace
	Goal      string
}

// FocusModel is the bubbletea model for the interactive focus timer.
// Completed focus intervals are recorded as sessions and completed breaks
// are counted on the profile.
type FocusModel struct {
	engine *timer.Engine
	ws     *workspace.Workspace
	goal   string

	state     timer.State
	bar       progress.Model
	help      help.Model
	keys      focusKeyMap
	width     int
	message   string
	err       error
	completed int
	breaks    int
	quitting  bool
}

// NewFocusModel creates the focus timer model and registers itself as the
// engine's expiry handler.
func NewFocusModel(cfg FocusConfig) *FocusModel {
	m := &FocusModel{
		engine: cfg.Engine,
		ws:     cfg.Workspace,
		goal:   strings.TrimSpace(cfg.Goal),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:   help.New(),
		keys:   focusKeys,
	}
	m.engine.OnExpire(m.expired)
	m.state = m.engine.State()
	return m
}

// Init starts the frame loop.
func (m *FocusModel) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model.
func (m *FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-12, 10), 60)
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.state, _ = m.engine.Tick()
		return m, frameCmd()
	}
	return m, nil
}

func (m *FocusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.engine.Toggle()

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()

	case key.Matches(msg, m.keys.Switch):
		m.engine.SwitchMode(m.engine.State().Mode.Opposite())

	case key.Matches(msg, m.keys.Ambient):
		m.engine.SetAmbientSound(!m.engine.AmbientSound())

	case key.Matches(msg, m.keys.Longer):
		m.adjust(5)

	case key.Matches(msg, m.keys.Shorter):
		m.adjust(-5)
	}
	m.state = m.engine.State()
	return m, nil
}

// adjust changes the current mode's length while the timer is idle.
func (m *FocusModel) adjust(delta int) {
	st := m.engine.State()
	if st.Running {
		m.message = "Pause the timer to change its length"
		return
	}
	got := m.engine.SetDuration(st.Mode, m.engine.Minutes(st.Mode)+delta)
	m.message = fmt.Sprintf("%s set to %d min", st.Mode, got)
}

// expired runs inside Engine.Tick when an interval ends naturally.
func (m *FocusModel) expired(ended timer.Mode, length time.Duration) {
	if m.ws == nil {
		return
	}
	switch ended {
	case timer.ModeFocus:
		session, ok, err := m.ws.RecordSession(int(length.Minutes()), m.goal, true)
		if err != nil {
			m.fail(err)
			return
		}
		if ok {
			m.completed++
			m.message = fmt.Sprintf("Session complete: %d min focused", session.Duration)
		}
	case timer.ModeBreak:
		n, err := m.ws.RecordBreak()
		if err != nil {
			m.fail(err)
			return
		}
		m.breaks++
		m.message = fmt.Sprintf("Break over (%d taken). Back to work!", n)
	}
}

// quit records an interrupted focus interval as an incomplete session.
func (m *FocusModel) quit() {
	m.quitting = true
	st := m.engine.State()
	m.engine.Pause()
	if m.ws == nil || st.Mode != timer.ModeFocus {
		return
	}
	st = m.engine.State()
	minutes := int(st.Elapsed().Minutes())
	if minutes < 1 {
		return
	}
	if _, _, err := m.ws.RecordSession(minutes, m.goal, false); err != nil {
		m.fail(err)
	}
}

func (m *FocusModel) fail(err error) {
	m.err = err
	logging.Warn("focus session not saved", logging.KeyError, err)
}

// Completed returns the number of focus sessions recorded.
func (m *FocusModel) Completed() int { return m.completed }

// Breaks returns the number of breaks finished.
func (m *FocusModel) Breaks() int { return m.breaks }

// Err returns the last save error.
func (m *FocusModel) Err() error { return m.err }

// View renders the timer.
func (m *FocusModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.state
	var content strings.Builder

	label := "FOCUS TIME"
	box := StyleTimerBox
	if st.Mode == timer.ModeBreak {
		label = "BREAK TIME"
		box = StyleBreakBox
	}
	content.WriteString(StyleTitle.Render(label))
	content.WriteString("\n")
	content.WriteString(StyleClock.Render(timer.FormatDuration(st.Remaining)))
	content.WriteString("\n\n")
	content.WriteString(m.bar.ViewAs(st.Progress()))
	content.WriteString("\n\n")

	status := "Paused"
	if st.Running {
		status = "Running"
	}
	if m.goal != "" && st.Mode == timer.ModeFocus {
		status += " · " + m.goal
	}
	if m.engine.AmbientSound() {
		status += " · ambient on"
	}
	content.WriteString(StyleSubtitle.Render(status))

	sections := []string{box.Render(content.String())}
	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleSuccess.Render(m.message))
	}
	sections = append(sections, StyleHelp.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RunFocus starts the interactive focus timer.
func RunFocus(cfg FocusConfig) (*FocusModel, error) {
	m := NewFocusModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return m, err
}
