package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/model"
)

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
	assert.False(t, f.NoNewline)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{
			Writer:    &buf,
			ColorMode: ColorAuto,
		}
		// Buffer is not a terminal
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestFormatterPrintln(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatterPrintf(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Printf("hello %s", "world")
	assert.Equal(t, "hello world", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	data := map[string]string{"key": "value"}
	err := f.JSON(data)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestFormatterPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	data := map[string]int{"count": 42}
	err := f.PrintJSON(data)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"count": 42`)
}

// =============================================================================
// Format and ColorMode Constants Tests
// =============================================================================

func TestFormatConstants(t *testing.T) {
	assert.Equal(t, Format("cli"), FormatCLI)
	assert.Equal(t, Format("json"), FormatJSON)
	assert.Equal(t, Format("plain"), FormatPlain)
}

func TestColorModeConstants(t *testing.T) {
	assert.Equal(t, ColorMode("auto"), ColorAuto)
	assert.Equal(t, ColorMode("always"), ColorAlways)
	assert.Equal(t, ColorMode("never"), ColorNever)
}

// =============================================================================
// Duration Formatting Tests
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
		{59 * time.Minute, "59m"},
		{60 * time.Minute, "1h"},
		{90 * time.Minute, "1h 30m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{8*time.Hour + 30*time.Minute, "8h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatDuration(tt.duration)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatDurationShort(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{60 * time.Second, "1m"},
		{90 * time.Second, "1m"}, // No seconds in short form
		{5 * time.Minute, "5m"},
		{60 * time.Minute, "1h"},
		{90 * time.Minute, "1h 30m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatDurationShort(tt.duration)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// =============================================================================
// Time Formatting Tests
// =============================================================================

func TestFormatTime(t *testing.T) {
	tm := time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC)
	result := FormatTime(tm)
	assert.Contains(t, result, "2024-01-15")
	assert.Contains(t, result, "30")
	assert.Contains(t, result, "45")
}

func TestFormatTimeShort(t *testing.T) {
	tm := time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC)
	result := FormatTimeShort(tm)
	assert.Contains(t, result, "2024-01-15")
	assert.Contains(t, result, "30")
	assert.NotContains(t, result, ":45")
}


func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "25m", FormatMinutes(25))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "2h", FormatMinutes(120))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"cli", "json", "plain", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)

	m, err = ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, m)

	_, err = ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestPlainDisablesColor(t *testing.T) {
	f := &Formatter{Format: FormatPlain, ColorMode: ColorAlways}
	assert.False(t, f.IsColorEnabled())
}

func TestFormatterYAML(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Format: FormatYAML}

	require.NoError(t, f.Structured(map[string]int{"count": 3}))
	assert.Equal(t, "count: 3\n", buf.String())
	assert.True(t, f.IsStructured())
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

var testDay = model.DayKey("2024-05-15")

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, ColorMode: ColorNever}
	return NewCLIFormatter(f), &buf
}

func TestNewCLIFormatter(t *testing.T) {
	f := NewFormatter()
	cli := NewCLIFormatter(f)
	assert.NotNil(t, cli)
	assert.Equal(t, f, cli.Formatter)
}

func TestCLIFormatterMessages(t *testing.T) {
	tests := []struct {
		name   string
		print  func(c *CLIFormatter, s string)
		prefix string
	}{
		{"title", (*CLIFormatter).Title, ""},
		{"success", (*CLIFormatter).Success, "✓ "},
		{"warning", (*CLIFormatter).Warning, "⚠ "},
		{"error", (*CLIFormatter).Error, "✗ "},
		{"muted", (*CLIFormatter).Muted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, buf := newTestCLI()
			tt.print(cli, "hello")
			assert.Equal(t, tt.prefix+"hello\n", buf.String())
		})
	}
}

func TestCLIFormatterColorAlways(t *testing.T) {
	var buf bytes.Buffer
	cli := NewCLIFormatter(&Formatter{Writer: &buf, ColorMode: ColorAlways})

	cli.Success("done")
	assert.Contains(t, buf.String(), "done")
}

func TestCLIFormatterPrintTasks(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cli, buf := newTestCLI()
		cli.PrintTasks(nil)
		assert.Contains(t, buf.String(), "No tasks.")
	})

	t.Run("with tasks", func(t *testing.T) {
		cli, buf := newTestCLI()
		done := model.NewTask("Ship release", 90, model.PriorityHigh, testDay)
		done.Completed = true
		open := model.NewTask("Write notes", 15, model.PriorityLow, testDay)

		cli.PrintTasks([]model.Task{done, open})
		out := buf.String()
		assert.Contains(t, out, "[x]")
		assert.Contains(t, out, "[ ]")
		assert.Contains(t, out, "Ship release")
		assert.Contains(t, out, "1h 30m")
		assert.Contains(t, out, model.ShortID(open.ID))
		assert.Contains(t, out, "1 of 2 completed")
	})
}

func TestCLIFormatterPrintBoard(t *testing.T) {
	cli, buf := newTestCLI()
	tickets := []model.WorkTicket{
		{TicketID: "PROJ-101", Title: "Design", Status: model.StatusInProgress, Priority: model.PriorityHigh, Tag: "UI", Assignee: "JD", StoryPoints: 5,
			Subtasks: []model.Subtask{{Title: "Palette", Completed: true}, {Title: "Tokens"}}},
		{TicketID: "PROJ-102", Title: "Docs", Status: model.StatusDone, Priority: model.PriorityLow},
	}

	cli.PrintBoard(tickets, true)
	out := buf.String()
	assert.Contains(t, out, "Todo (0)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Done (1)")
	assert.Contains(t, out, "#UI @JD 5pt 1/2")
	assert.Contains(t, out, "2. [ ] Tokens")
}

func TestCLIFormatterPrintHabits(t *testing.T) {
	cli, buf := newTestCLI()
	h := model.NewHabit("Read", "20 pages", "bg-teal-500")
	h.CompletedDates[testDay] = true
	h.CompletedDates[testDay.AddDays(-1)] = true
	h.Streak = 2

	cli.PrintHabits([]model.Habit{h}, testDay)
	out := buf.String()
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "2 day streak")
	assert.Contains(t, out, "· · · · · ■ ■")
	assert.Contains(t, out, "20 pages")
}

func TestCLIFormatterPrintSessions(t *testing.T) {
	cli, buf := newTestCLI()
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	sessions := []model.FocusSession{
		model.NewFocusSession(25, "Deep work", true, now),
		model.NewFocusSession(10, "", false, now),
	}

	cli.PrintSessions(sessions)
	out := buf.String()
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "stopped")
	assert.Contains(t, out, "Deep work")
	assert.Contains(t, out, "2 sessions, 35m total")
}

func TestCLIFormatterPrintLeaderboard(t *testing.T) {
	cli, buf := newTestCLI()
	cli.PrintLeaderboard(analytics.Leaderboard("Sam", 11000))

	out := buf.String()
	assert.Contains(t, out, "Sam (you)")
	assert.Contains(t, out, "#3")
}

func TestCLIFormatterPrintStats(t *testing.T) {
	cli, buf := newTestCLI()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	a := analytics.Activity{
		Sessions: []model.FocusSession{model.NewFocusSession(60, "", true, now)},
		Habits:   []model.Habit{{Title: "Run", Streak: 3, CompletedDates: map[model.DayKey]bool{}}},
	}

	cli.PrintStats(NewStatsResponse(a, now))
	out := buf.String()
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "600 / 1000 XP")
	assert.Contains(t, out, "Focus this week: 1.0h")
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "Early Bird")
}

func TestCLIFormatterPrintProfile(t *testing.T) {
	cli, buf := newTestCLI()
	cli.PrintProfile(model.UserProfile{Name: "Sam", Email: "sam@example.com", NotificationSound: model.SoundBowl, BreaksTaken: 4})

	out := buf.String()
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "sam@example.com")
	assert.Contains(t, out, "bowl")
	assert.Contains(t, out, "Breaks taken: 4")
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percentage float64
		width      int
	}{
		{0, 10},
		{50, 10},
		{100, 10},
		{150, 10}, // Over 100%
		{-10, 10}, // Negative
		{75, 20},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.Equal(t, tt.width, len([]rune(bar)))
		})
	}
}

func TestProgressBarContent(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(100, 10))
}

// =============================================================================
// Table Tests
// =============================================================================

func TestCLIFormatterPrintTable(t *testing.T) {
	t.Run("with_rows", func(t *testing.T) {
		cli, buf := newTestCLI()
		cli.PrintTable([]string{"A", "LONGER"}, []TableRow{
			{Columns: []string{"value", "x"}},
		})

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 3)
		assert.Equal(t, "A      LONGER", string(lines[0]))
		assert.Equal(t, "value  x", string(lines[2]))
	})

	t.Run("empty_rows", func(t *testing.T) {
		cli, buf := newTestCLI()
		cli.PrintTable([]string{"A"}, nil)
		assert.Empty(t, buf.String())
	})
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func TestNewTasksResponse(t *testing.T) {
	done := model.NewTask("A", 30, model.PriorityHigh, testDay)
	done.Completed = true
	resp := NewTasksResponse([]model.Task{done, model.NewTask("B", 15, model.PriorityLow, testDay)})

	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, 45, resp.TotalMinutes)

	assert.NotNil(t, NewTasksResponse(nil).Tasks)
}

func TestNewBoardResponse(t *testing.T) {
	resp := NewBoardResponse([]model.WorkTicket{
		{TicketID: "PROJ-1", Status: model.StatusDone, StoryPoints: 5},
		{TicketID: "PROJ-2", Status: model.StatusTodo, StoryPoints: 3},
	})

	require.Len(t, resp.Columns, 4)
	assert.Equal(t, model.StatusTodo, resp.Columns[0].Status)
	assert.Len(t, resp.Columns[0].Tickets, 1)
	assert.Empty(t, resp.Columns[1].Tickets)
	assert.Equal(t, 5, resp.DonePoints)
	assert.Equal(t, 2, resp.TotalCount)
}

func TestJSONFormatterPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	require.NoError(t, j.PrintTasks([]model.Task{model.NewTask("A", 30, model.PriorityHigh, testDay)}))

	var resp TasksResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "A", resp.Tasks[0].Title)
}

func TestJSONFormatterPrintError(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	require.NoError(t, j.PrintError("task not found", "Use 'boost task list' to see task IDs."))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "task not found", resp.Error)
	assert.NotEmpty(t, resp.Suggestion)
}

func TestJSONFormatterPrintListYAML(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatYAML})

	require.NoError(t, j.PrintList(nil))

	var resp ListResponse
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Contains(t, buf.String(), "items: []")
}

func TestNewStatsResponse(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	a := analytics.Activity{
		Tasks: []model.Task{{Completed: true}},
		Tickets: []model.WorkTicket{
			{Status: model.StatusDone},
			{Status: model.StatusReview},
		},
		Habits: []model.Habit{{
			Title:          "Run",
			Streak:         1,
			CompletedDates: map[model.DayKey]bool{testDay: true, "2024-05-01": true, "2024-05-02": true},
		}},
	}

	resp := NewStatsResponse(a, now)
	assert.Equal(t, 50+100+3*20, resp.XP)
	assert.Equal(t, resp.XP, resp.Breakdown.Total())
	assert.Len(t, resp.Week, 7)
	assert.Equal(t, 2, resp.TicketTotal)
	require.Len(t, resp.Streaks, 1)
	assert.Equal(t, 2, resp.Streaks[0].Longest)
	assert.Len(t, resp.Badges, 4)
	assert.Equal(t, "0h0m", resp.TotalFocus)
}
