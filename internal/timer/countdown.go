package timer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// CountdownDisplay renders engine state as text.
type CountdownDisplay struct {
	Writer   io.Writer
	UseColor bool
	BarWidth int
}

// NewCountdownDisplay creates a new countdown display.
func NewCountdownDisplay() *CountdownDisplay {
	return &CountdownDisplay{
		Writer:   os.Stdout,
		UseColor: true,
		BarWidth: 30,
	}
}

// Styles for countdown display.
var (
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")) // Purple

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	breakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B")) // Yellow

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280")) // Gray
)

// ModeStyle returns the header style for mode.
func ModeStyle(mode Mode) lipgloss.Style {
	if mode == ModeBreak {
		return breakStyle
	}
	return focusStyle
}

// FormatDuration formats a duration as MM:SS or HH:MM:SS.
// Partial seconds round up so a running timer never shows 00:00 early.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int((d + time.Second - 1) / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (cd *CountdownDisplay) style(s lipgloss.Style, text string) string {
	if cd.UseColor {
		return s.Render(text)
	}
	return text
}

// RenderTimer renders the countdown for state. goal is shown when non-empty.
func (cd *CountdownDisplay) RenderTimer(state State, goal string) string {
	var sb strings.Builder

	sb.WriteString(cd.style(ModeStyle(state.Mode), state.Mode.String()))
	if goal != "" && state.Mode == ModeFocus {
		sb.WriteString(cd.style(statusStyle, "  "+goal))
	}
	sb.WriteString("\n\n")

	sb.WriteString(cd.style(timerStyle, FormatDuration(state.Remaining)))
	sb.WriteString("\n\n")

	width := cd.BarWidth
	if width <= 0 {
		width = 30
	}
	sb.WriteString(cd.style(progressStyle, RenderProgressBar(state.Progress(), width)))
	sb.WriteString("\n\n")

	status := "Press SPACE to pause, M to switch mode, R to reset, Q to quit"
	if !state.Running {
		status = "[PAUSED] Press SPACE to start, M to switch mode, Q to quit"
	}
	sb.WriteString(cd.style(statusStyle, status))

	return sb.String()
}

// RenderProgressBar creates a progress bar string.
func RenderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, int(progress*100))
}

// RenderLine renders a single status line for non-interactive output.
func (cd *CountdownDisplay) RenderLine(state State) string {
	return fmt.Sprintf("%s %s %s",
		cd.style(ModeStyle(state.Mode), state.Mode.String()),
		cd.style(timerStyle, FormatDuration(state.Remaining)),
		cd.style(progressStyle, RenderProgressBar(state.Progress(), cd.BarWidth)))
}

// RenderComplete renders an interval completion message.
func (cd *CountdownDisplay) RenderComplete(ended Mode, next Mode) string {
	msg := "Focus session complete! Time for a break."
	if ended == ModeBreak {
		msg = "Break is over! Ready to focus?"
	}
	out := cd.style(focusStyle, msg)
	if next != ended {
		out += "\n" + cd.style(statusStyle, fmt.Sprintf("Next up: %s", next.String()))
	}
	return out
}

// ClearScreen clears the terminal screen.
func (cd *CountdownDisplay) ClearScreen() {
	fmt.Fprint(cd.Writer, "\033[H\033[2J")
}

// Print writes s followed by a newline.
func (cd *CountdownDisplay) Print(s string) {
	fmt.Fprintln(cd.Writer, s)
}
