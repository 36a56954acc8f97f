package output

import (
	"time"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/model"
)

// JSONFormatter provides structured (JSON or YAML) formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ActionResponse reports the outcome of a mutating command.
type ActionResponse struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Record  any    `json:"record,omitempty" yaml:"record,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status" yaml:"status"`
	Error      string `json:"error" yaml:"error"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// TasksResponse represents the task list.
type TasksResponse struct {
	Tasks          []model.Task `json:"tasks" yaml:"tasks"`
	TotalCount     int          `json:"total_count" yaml:"total_count"`
	CompletedCount int          `json:"completed_count" yaml:"completed_count"`
	TotalMinutes   int          `json:"total_minutes" yaml:"total_minutes"`
}

// NewTasksResponse summarises tasks.
func NewTasksResponse(tasks []model.Task) *TasksResponse {
	resp := &TasksResponse{Tasks: tasks, TotalCount: len(tasks)}
	if resp.Tasks == nil {
		resp.Tasks = []model.Task{}
	}
	for _, t := range tasks {
		if t.Completed {
			resp.CompletedCount++
		}
		resp.TotalMinutes += t.Duration
	}
	return resp
}

// ColumnOutput is one column of the work board.
type ColumnOutput struct {
	Status  model.TicketStatus `json:"status" yaml:"status"`
	Label   string             `json:"label" yaml:"label"`
	Tickets []model.WorkTicket `json:"tickets" yaml:"tickets"`
}

// BoardResponse represents the work board.
type BoardResponse struct {
	Columns    []ColumnOutput `json:"columns" yaml:"columns"`
	TotalCount int            `json:"total_count" yaml:"total_count"`
	DonePoints int            `json:"done_points" yaml:"done_points"`
}

// NewBoardResponse groups tickets into columns in pipeline order.
func NewBoardResponse(tickets []model.WorkTicket) *BoardResponse {
	resp := &BoardResponse{
		TotalCount: len(tickets),
		DonePoints: analytics.StoryPointsDone(tickets),
	}
	for _, status := range model.Statuses {
		col := ColumnOutput{Status: status, Label: status.Label(), Tickets: []model.WorkTicket{}}
		for _, t := range tickets {
			if t.Status == status {
				col.Tickets = append(col.Tickets, t)
			}
		}
		resp.Columns = append(resp.Columns, col)
	}
	return resp
}

// HabitsResponse represents the habit list.
type HabitsResponse struct {
	Habits      []model.Habit `json:"habits" yaml:"habits"`
	Completions int           `json:"completions" yaml:"completions"`
}

// NewHabitsResponse summarises habits.
func NewHabitsResponse(habits []model.Habit) *HabitsResponse {
	resp := &HabitsResponse{Habits: habits}
	if resp.Habits == nil {
		resp.Habits = []model.Habit{}
	}
	for i := range habits {
		resp.Completions += habits[i].CompletedCount()
	}
	return resp
}

// SessionsResponse represents the focus log.
type SessionsResponse struct {
	Sessions     []model.FocusSession `json:"sessions" yaml:"sessions"`
	TotalCount   int                  `json:"total_count" yaml:"total_count"`
	TotalMinutes int                  `json:"total_minutes" yaml:"total_minutes"`
}

// NewSessionsResponse summarises sessions.
func NewSessionsResponse(sessions []model.FocusSession) *SessionsResponse {
	resp := &SessionsResponse{Sessions: sessions, TotalCount: len(sessions)}
	if resp.Sessions == nil {
		resp.Sessions = []model.FocusSession{}
	}
	for _, s := range sessions {
		resp.TotalMinutes += s.Duration
	}
	return resp
}

// HabitStreak is one row of the streak table.
type HabitStreak struct {
	Title   string `json:"title" yaml:"title"`
	Streak  int    `json:"streak" yaml:"streak"`
	Longest int    `json:"longest" yaml:"longest"`
}

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	XP          int                     `json:"xp" yaml:"xp"`
	Level       analytics.Level         `json:"level" yaml:"level"`
	Breakdown   analytics.XPBreakdown   `json:"breakdown" yaml:"breakdown"`
	Week        []analytics.DayFocus    `json:"week" yaml:"week"`
	WeeklyHours float64                 `json:"weekly_hours" yaml:"weekly_hours"`
	TotalFocus  string                  `json:"total_focus" yaml:"total_focus"`
	Tickets     []analytics.StatusCount `json:"tickets" yaml:"tickets"`
	TicketTotal int                     `json:"ticket_total" yaml:"ticket_total"`
	Streaks     []HabitStreak           `json:"streaks" yaml:"streaks"`
	Badges      []analytics.Badge       `json:"badges" yaml:"badges"`
}

// NewStatsResponse computes the dashboard summary at now.
func NewStatsResponse(a analytics.Activity, now time.Time) *StatsResponse {
	breakdown := analytics.ComputeXP(a.Sessions, a.Tasks, a.Tickets, a.Habits)
	xp := breakdown.Total()
	week := analytics.WeeklyFocus(a.Sessions, now)
	tickets := analytics.TicketStats(a.Tickets)

	resp := &StatsResponse{
		XP:          xp,
		Level:       analytics.LevelFor(xp),
		Breakdown:   breakdown,
		Week:        week,
		WeeklyHours: analytics.WeeklyTotalHours(week),
		TotalFocus:  analytics.FormatFocus(analytics.TotalFocus(a.Sessions)),
		Tickets:     tickets,
		TicketTotal: analytics.TicketTotal(tickets),
		Badges:      analytics.Badges(a, now.Location()),
		Streaks:     []HabitStreak{},
	}
	for i := range a.Habits {
		resp.Streaks = append(resp.Streaks, HabitStreak{
			Title:   a.Habits[i].Title,
			Streak:  a.Habits[i].Streak,
			Longest: analytics.LongestStreak(a.Habits[i].CompletedDates),
		})
	}
	return resp
}

// ListResponse carries coach suggestions or tips.
type ListResponse struct {
	Items []string `json:"items" yaml:"items"`
}

// TextResponse carries a coach reply or insight.
type TextResponse struct {
	Text string `json:"text" yaml:"text"`
}

// PrintAction outputs the result of a mutating command.
func (j *JSONFormatter) PrintAction(status, message string, record any) error {
	return j.Structured(ActionResponse{Status: status, Message: message, Record: record})
}

// PrintError outputs an error.
func (j *JSONFormatter) PrintError(errMsg, suggestion string) error {
	return j.Structured(ErrorResponse{Status: "error", Error: errMsg, Suggestion: suggestion})
}

// PrintTasks outputs the task list.
func (j *JSONFormatter) PrintTasks(tasks []model.Task) error {
	return j.Structured(NewTasksResponse(tasks))
}

// PrintBoard outputs the work board.
func (j *JSONFormatter) PrintBoard(tickets []model.WorkTicket) error {
	return j.Structured(NewBoardResponse(tickets))
}

// PrintHabits outputs the habit list.
func (j *JSONFormatter) PrintHabits(habits []model.Habit) error {
	return j.Structured(NewHabitsResponse(habits))
}

// PrintSessions outputs the focus log.
func (j *JSONFormatter) PrintSessions(sessions []model.FocusSession) error {
	return j.Structured(NewSessionsResponse(sessions))
}

// PrintList outputs a list of strings.
func (j *JSONFormatter) PrintList(items []string) error {
	if items == nil {
		items = []string{}
	}
	return j.Structured(ListResponse{Items: items})
}

// PrintText outputs a single text reply.
func (j *JSONFormatter) PrintText(text string) error {
	return j.Structured(TextResponse{Text: text})
}
