package analytics

import (
	"time"
)

// ReportSummary is the fixed headline of an exported report.
const ReportSummary = "Weekly Productivity Report"

// Report is a point-in-time analytics snapshot for export.
type Report struct {
	GeneratedAt     time.Time     `json:"generatedAt" yaml:"generatedAt"`
	Summary         string        `json:"summary" yaml:"summary"`
	FocusData       []DayFocus    `json:"focusData" yaml:"focusData"`
	TicketStats     []StatusCount `json:"ticketStats" yaml:"ticketStats"`
	TotalFocusTime  string        `json:"totalFocusTime" yaml:"totalFocusTime"`
	TotalSessions   int           `json:"totalSessions" yaml:"totalSessions"`
	TotalXP         int           `json:"totalXP" yaml:"totalXP"`
	Level           int           `json:"level" yaml:"level"`
	Badges          []Badge       `json:"badges" yaml:"badges"`
	AIInsight       string        `json:"aiInsight" yaml:"aiInsight"`
	ImprovementTips []string      `json:"improvementTips" yaml:"improvementTips"`
}

// Metrics is the structured summary handed to the coach for an insight.
type Metrics struct {
	FocusData      []DayFocus    `json:"focusData"`
	WeeklyHours    float64       `json:"weeklyHours"`
	TicketStats    []StatusCount `json:"ticketStats"`
	TotalXP        int           `json:"totalXP"`
	TasksCompleted int           `json:"tasksCompleted"`
	TasksOpen      int           `json:"tasksOpen"`
	BestStreak     int           `json:"bestStreak"`
}

// BuildMetrics summarises the activity for the coach.
func BuildMetrics(a Activity, now time.Time) Metrics {
	week := WeeklyFocus(a.Sessions, now)
	m := Metrics{
		FocusData:   week,
		WeeklyHours: WeeklyTotalHours(week),
		TicketStats: TicketStats(a.Tickets),
		TotalXP:     a.XP(),
	}
	for _, t := range a.Tasks {
		if t.Completed {
			m.TasksCompleted++
		} else {
			m.TasksOpen++
		}
	}
	for i := range a.Habits {
		if a.Habits[i].Streak > m.BestStreak {
			m.BestStreak = a.Habits[i].Streak
		}
	}
	return m
}

// BuildReport assembles the export document. insight and tips come from the
// coach and are included verbatim.
func BuildReport(a Activity, now time.Time, insight string, tips []string) Report {
	xp := a.XP()
	if tips == nil {
		tips = []string{}
	}
	return Report{
		GeneratedAt:     now.UTC(),
		Summary:         ReportSummary,
		FocusData:       WeeklyFocus(a.Sessions, now),
		TicketStats:     TicketStats(a.Tickets),
		TotalFocusTime:  FormatFocus(TotalFocus(a.Sessions)),
		TotalSessions:   len(a.Sessions),
		TotalXP:         xp,
		Level:           LevelFor(xp).Number,
		Badges:          Badges(a, now.Location()),
		AIInsight:       insight,
		ImprovementTips: tips,
	}
}
