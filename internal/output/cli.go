package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#64748B") // Slate
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Emerald

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleCode = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorMuted)
)

// priorityColors mirrors the priority badge colours of the dashboard.
var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   lipgloss.Color("#F87171"),
	model.PriorityMedium: lipgloss.Color("#FBBF24"),
	model.PriorityLow:    lipgloss.Color("#34D399"),
}

// habitColors maps stored palette names to terminal colours.
var habitColors = map[string]lipgloss.Color{
	"bg-red-500":     "#EF4444",
	"bg-orange-500":  "#F97316",
	"bg-amber-500":   "#F59E0B",
	"bg-green-500":   "#22C55E",
	"bg-emerald-500": "#10B981",
	"bg-teal-500":    "#14B8A6",
	"bg-cyan-500":    "#06B6D4",
	"bg-blue-500":    "#3B82F6",
	"bg-indigo-500":  "#6366F1",
	"bg-violet-500":  "#8B5CF6",
	"bg-purple-500":  "#A855F7",
	"bg-fuchsia-500": "#D946EF",
	"bg-pink-500":    "#EC4899",
	"bg-rose-500":    "#F43F5E",
}

// HabitColor returns the terminal colour for a stored habit colour.
func HabitColor(name string) lipgloss.Color {
	if c, ok := habitColors[name]; ok {
		return c
	}
	return colorPrimary
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Priority formats a priority label.
func (c *CLIFormatter) Priority(p model.Priority) string {
	return c.render(lipgloss.NewStyle().Foreground(priorityColors[p]), string(p))
}

// Code formats a ticket code.
func (c *CLIFormatter) Code(code string) string {
	return c.render(styleCode, code)
}

// Check returns a checkbox for done.
func Check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// PrintTasks prints a task list.
func (c *CLIFormatter) PrintTasks(tasks []model.Task) {
	if len(tasks) == 0 {
		c.Muted("No tasks.")
		c.Muted("Use 'boost task add <title>' to create one.")
		return
	}

	rows := make([]TableRow, 0, len(tasks))
	done := 0
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			done++
			title = c.render(styleDone, title)
		}
		rows = append(rows, TableRow{Columns: []string{
			model.ShortID(t.ID),
			Check(t.Completed),
			title,
			FormatMinutes(t.Duration),
			c.Priority(t.Priority),
			t.Date.String(),
		}})
	}
	c.PrintTable([]string{"ID", "", "TITLE", "EST", "PRIORITY", "DATE"}, rows)
	c.Println()
	c.Muted(fmt.Sprintf("%d of %d completed", done, len(tasks)))
}

// PrintBoard prints tickets grouped into board columns.
func (c *CLIFormatter) PrintBoard(tickets []model.WorkTicket, verbose bool) {
	if len(tickets) == 0 {
		c.Muted("No tickets.")
		c.Muted("Use 'boost ticket add <title>' to create one.")
		return
	}

	for i, status := range model.Statuses {
		var column []model.WorkTicket
		for _, t := range tickets {
			if t.Status == status {
				column = append(column, t)
			}
		}
		if i > 0 {
			c.Println()
		}
		c.Println(c.render(styleBold, fmt.Sprintf("%s (%d)", status.Label(), len(column))))
		for _, t := range column {
			c.printTicketLine(t)
			if verbose {
				for j, s := range t.Subtasks {
					c.Printf("      %d. %s %s\n", j+1, Check(s.Completed), s.Title)
				}
			}
		}
	}
}

func (c *CLIFormatter) printTicketLine(t model.WorkTicket) {
	var extra []string
	if t.Tag != "" {
		extra = append(extra, "#"+t.Tag)
	}
	if t.Assignee != "" {
		extra = append(extra, "@"+t.Assignee)
	}
	if t.StoryPoints > 0 {
		extra = append(extra, fmt.Sprintf("%dpt", t.StoryPoints))
	}
	if done, total := t.SubtaskProgress(); total > 0 {
		extra = append(extra, fmt.Sprintf("%d/%d", done, total))
	}
	c.Printf("  %s %s  %s  %s\n",
		pad(c.Code(t.TicketID), 9), t.Title, c.Priority(t.Priority),
		c.render(styleMuted, strings.Join(extra, " ")))
}

// PrintTicket prints one ticket in full.
func (c *CLIFormatter) PrintTicket(t model.WorkTicket) {
	c.Printf("%s %s\n", c.Code(t.TicketID), c.render(styleBold, t.Title))
	if t.Description != "" {
		c.Printf("  %s\n", t.Description)
	}
	c.Printf("  Status: %s  Priority: %s  Points: %d\n", t.Status.Label(), c.Priority(t.Priority), t.StoryPoints)
	c.Printf("  Tag: %s  Assignee: %s  Date: %s\n", t.Tag, t.Assignee, t.Date)
	for j, s := range t.Subtasks {
		c.Printf("  %d. %s %s\n", j+1, Check(s.Completed), s.Title)
	}
}

// PrintHabits prints habits with their streak and the last seven days.
func (c *CLIFormatter) PrintHabits(habits []model.Habit, today model.DayKey) {
	if len(habits) == 0 {
		c.Muted("No habits.")
		c.Muted("Use 'boost habit add <title>' to start tracking one.")
		return
	}

	for _, h := range habits {
		var week strings.Builder
		for i := 6; i >= 0; i-- {
			cell := "·"
			if h.Done(today.AddDays(-i)) {
				cell = c.render(lipgloss.NewStyle().Foreground(HabitColor(h.Color)), "■")
			}
			week.WriteString(cell + " ")
		}
		c.Printf("%s  %-22s %s %s\n",
			model.ShortID(h.ID),
			h.Title,
			week.String(),
			c.render(styleWarning, fmt.Sprintf("%d day streak", h.Streak)))
		if h.GoalDescription != "" {
			c.Printf("          %s\n", c.render(styleMuted, h.GoalDescription))
		}
	}
}

// PrintSessions prints the focus session log, most recent last.
func (c *CLIFormatter) PrintSessions(sessions []model.FocusSession) {
	if len(sessions) == 0 {
		c.Muted("No focus sessions yet.")
		c.Muted("Use 'boost focus' to start one.")
		return
	}

	rows := make([]TableRow, 0, len(sessions))
	total := 0
	for _, s := range sessions {
		status := "completed"
		if !s.Completed {
			status = "stopped"
		}
		total += s.Duration
		rows = append(rows, TableRow{Columns: []string{
			FormatTimeShort(s.Timestamp),
			FormatMinutes(s.Duration),
			status,
			s.Goal,
		}})
	}
	c.PrintTable([]string{"WHEN", "LENGTH", "STATUS", "GOAL"}, rows)
	c.Println()
	c.Muted(fmt.Sprintf("%d sessions, %s total", len(sessions), FormatMinutes(total)))
}

// PrintStats prints the dashboard summary.
func (c *CLIFormatter) PrintStats(s *StatsResponse) {
	c.Title(fmt.Sprintf("Level %d", s.Level.Number))
	c.Printf("  %s %d / %d XP (total %d)\n",
		ProgressBar(s.Level.Progress*100, 20), s.Level.Current, s.Level.Next, s.XP)
	c.Println()

	c.Println(c.render(styleBold, fmt.Sprintf("Focus this week: %.1fh", s.WeeklyHours)))
	maxHours := 0.0
	for _, d := range s.Week {
		if d.Hours > maxHours {
			maxHours = d.Hours
		}
	}
	for _, d := range s.Week {
		pct := 0.0
		if maxHours > 0 {
			pct = d.Hours / maxHours * 100
		}
		c.Printf("  %s %-6s %s %.1fh\n", d.Day, d.Date, ProgressBar(pct, 20), d.Hours)
	}
	c.Println()

	c.Println(c.render(styleBold, fmt.Sprintf("Tickets: %d", s.TicketTotal)))
	for _, st := range s.Tickets {
		c.Printf("  %s %-12s %d\n",
			c.render(lipgloss.NewStyle().Foreground(lipgloss.Color(st.Color)), "●"), st.Name, st.Value)
	}
	c.Println()

	c.Println(c.render(styleBold, "Streaks"))
	for _, h := range s.Streaks {
		c.Printf("  %-22s %d\n", h.Title, h.Streak)
	}
	c.Println()

	c.PrintBadges(s.Badges)
}

// PrintBadges prints earned and locked badges.
func (c *CLIFormatter) PrintBadges(badges []analytics.Badge) {
	c.Println(c.render(styleBold, "Badges"))
	for _, b := range badges {
		mark := c.render(styleMuted, "○")
		name := c.render(styleMuted, b.Name)
		if b.Earned {
			mark = c.render(styleSuccess, "●")
			name = b.Name
		}
		c.Printf("  %s %-14s %s\n", mark, name, c.render(styleMuted, b.Desc))
	}
}

// PrintLeaderboard prints the ranked board.
func (c *CLIFormatter) PrintLeaderboard(board []analytics.LeaderboardEntry) {
	rows := make([]TableRow, 0, len(board))
	for _, e := range board {
		name := e.Name
		if e.You {
			name += " (you)"
		}
		rows = append(rows, TableRow{Columns: []string{
			fmt.Sprintf("#%d", e.Rank), name, fmt.Sprintf("%d", e.XP),
		}})
	}
	c.PrintTable([]string{"RANK", "NAME", "XP"}, rows)
}

// PrintProfile prints the user profile.
func (c *CLIFormatter) PrintProfile(p model.UserProfile) {
	c.Title(p.Name)
	if p.Email != "" {
		c.Printf("  Email: %s\n", p.Email)
	}
	if p.Bio != "" {
		c.Printf("  Bio: %s\n", p.Bio)
	}
	c.Printf("  Sound: %s\n", p.NotificationSound)
	c.Printf("  Breaks taken: %d\n", p.BreaksTaken)
}

// PrintList prints a numbered list.
func (c *CLIFormatter) PrintList(items []string) {
	for i, item := range items {
		c.Printf("  %d. %s\n", i+1, item)
	}
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// pad right-pads s to width visible cells, ignoring ANSI sequences.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
