// Package tui provides the terminal user interface for Boost: the live
// dashboard and the interactive focus timer.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/boost/internal/model"
)

// Color palette for the TUI.
var (
	ColorPrimary   = lipgloss.Color("#6366F1") // Indigo
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorBreak     = lipgloss.Color("#14B8A6") // Teal
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
	ColorSelected  = lipgloss.Color("#F472B6") // Pink
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleCode is used for ticket codes.
	StyleCode = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleDone is used for completed items.
	StyleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorMuted)

	// StyleSelected marks the cursor row.
	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSelected)

	// StyleClock is used for the countdown digits.
	StyleClock = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleSuccess is used for success messages.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

// StyleMuted is used for muted text.
var StyleMuted = StyleSubtitle

// Box styles for the dashboard panels.
var (
	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleActivePanel = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleTimerBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 4)

	StyleBreakBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBreak).
			Padding(1, 4)
)

var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   ColorError,
	model.PriorityMedium: ColorWarning,
	model.PriorityLow:    ColorSecondary,
}

// PriorityDot renders a coloured marker for p.
func PriorityDot(p model.Priority) string {
	c, ok := priorityColors[p]
	if !ok {
		c = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

// Bar renders a horizontal bar of width cells, filled by fraction.
func Bar(fraction float64, width int) string {
	if fraction > 1 {
		fraction = 1
	}
	if fraction < 0 {
		fraction = 0
	}

	filled := int(float64(width) * fraction)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// Checkbox renders a done marker.
func Checkbox(done bool) string {
	if done {
		return StyleSuccess.Render("[x]")
	}
	return StyleMuted.Render("[ ]")
}
