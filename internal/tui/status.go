package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/output"
)

// Panel identifies a selectable dashboard panel.
type Panel int

const (
	PanelTasks Panel = iota
	PanelHabits
	PanelBoard
)

var panelTitles = map[Panel]string{
	PanelTasks:  "Today's Tasks",
	PanelHabits: "Habits",
	PanelBoard:  "Work Board",
}

// panelBox wraps lines in a bordered panel of width columns.
func panelBox(title string, lines []string, width int, active bool) string {
	style := StylePanel
	if active {
		style = StyleActivePanel
	}
	body := StyleTitle.Render(title) + "\n" + strings.Join(lines, "\n")
	return style.Width(max(width-2, 10)).Render(body)
}

func cursorLine(line string, selected bool) string {
	if selected {
		return StyleSelected.Render("›") + " " + line
	}
	return "  " + line
}

// TaskLines renders today's tasks with the cursor at cursor (-1 for none).
func TaskLines(tasks []model.Task, cursor int) []string {
	if len(tasks) == 0 {
		return []string{StyleMuted.Render("Nothing planned today")}
	}
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		title := t.Title
		if t.Completed {
			title = StyleDone.Render(title)
		}
		line := fmt.Sprintf("%s %s %s %s", Checkbox(t.Completed), PriorityDot(t.Priority), title,
			StyleMuted.Render(output.FormatMinutes(t.Duration)))
		lines = append(lines, cursorLine(line, i == cursor))
	}
	return lines
}

// HabitLines renders habits with today's state and streak.
func HabitLines(habits []model.Habit, today model.DayKey, cursor int) []string {
	if len(habits) == 0 {
		return []string{StyleMuted.Render("No habits yet")}
	}
	lines := make([]string, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		week := make([]string, 0, 7)
		for d := 6; d >= 0; d-- {
			if h.Done(today.AddDays(-d)) {
				week = append(week, lipgloss.NewStyle().Foreground(output.HabitColor(h.Color)).Render("■"))
			} else {
				week = append(week, StyleMuted.Render("·"))
			}
		}
		line := fmt.Sprintf("%s %s %s %s", Checkbox(h.Done(today)), h.Title,
			strings.Join(week, ""), StyleWarning.Render(fmt.Sprintf("%d🔥", h.Streak)))
		lines = append(lines, cursorLine(line, i == cursor))
	}
	return lines
}

// TicketLines renders tickets with their column.
func TicketLines(tickets []model.WorkTicket, cursor int) []string {
	if len(tickets) == 0 {
		return []string{StyleMuted.Render("Board is empty")}
	}
	lines := make([]string, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		title := t.Title
		if t.Status == model.StatusDone {
			title = StyleDone.Render(title)
		}
		line := fmt.Sprintf("%s %s %s", StyleCode.Render(t.TicketID), title,
			StyleMuted.Render("["+t.Status.Label()+"]"))
		if done, total := t.SubtaskProgress(); total > 0 {
			line += StyleMuted.Render(fmt.Sprintf(" %d/%d", done, total))
		}
		lines = append(lines, cursorLine(line, i == cursor))
	}
	return lines
}

// WeekLines renders the last seven days of focus as bars.
func WeekLines(week []analytics.DayFocus, width int) []string {
	peak := 0.0
	for _, d := range week {
		peak = max(peak, d.Hours)
	}
	barWidth := max(width-16, 5)
	lines := make([]string, 0, len(week))
	for _, d := range week {
		fraction := 0.0
		if peak > 0 {
			fraction = d.Hours / peak
		}
		lines = append(lines, fmt.Sprintf("%-3s %s %4.1fh", d.Day, Bar(fraction, barWidth), d.Hours))
	}
	return lines
}

// BadgeLine renders earned badges and the remaining ones muted.
func BadgeLine(badges []analytics.Badge) string {
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		if b.Earned {
			parts = append(parts, StyleSuccess.Render("★ "+b.Name))
		} else {
			parts = append(parts, StyleMuted.Render("☆ "+b.Name))
		}
	}
	return strings.Join(parts, "   ")
}

// LevelLine renders the level, XP and progress to the next level.
func LevelLine(xp int, width int) string {
	lvl := analytics.LevelFor(xp)
	return fmt.Sprintf("Level %d  %s  %d/%d XP  (total %d)",
		lvl.Number, Bar(lvl.Progress, max(width/4, 10)), lvl.Current, lvl.Next, xp)
}
