package analytics

import (
	"github.com/manav03panchal/boost/internal/model"
)

// XP weights.
const (
	XPPerFocusMinute = 10
	XPPerTask        = 50
	XPPerTicket      = 100
	XPPerHabitDay    = 20

	// XPPerLevel is the XP needed to advance one level.
	XPPerLevel = 1000
)

// XPBreakdown itemises the XP total by source.
type XPBreakdown struct {
	Focus   int `json:"focus" yaml:"focus"`
	Tasks   int `json:"tasks" yaml:"tasks"`
	Tickets int `json:"tickets" yaml:"tickets"`
	Habits  int `json:"habits" yaml:"habits"`
}

// Total returns the summed XP.
func (b XPBreakdown) Total() int {
	return b.Focus + b.Tasks + b.Tickets + b.Habits
}

// ComputeXP scores all activity across the four collections.
func ComputeXP(sessions []model.FocusSession, tasks []model.Task, tickets []model.WorkTicket, habits []model.Habit) XPBreakdown {
	var b XPBreakdown
	for _, s := range sessions {
		if s.Completed {
			b.Focus += s.Duration * XPPerFocusMinute
		}
	}
	for _, t := range tasks {
		if t.Completed {
			b.Tasks += XPPerTask
		}
	}
	for _, t := range tickets {
		if t.Status == model.StatusDone {
			b.Tickets += XPPerTicket
		}
	}
	for i := range habits {
		b.Habits += habits[i].CompletedCount() * XPPerHabitDay
	}
	return b
}

// XP returns the total score. See ComputeXP for the breakdown.
func XP(sessions []model.FocusSession, tasks []model.Task, tickets []model.WorkTicket, habits []model.Habit) int {
	return ComputeXP(sessions, tasks, tickets, habits).Total()
}

// Level describes progress through XP levels.
type Level struct {
	Number   int     `json:"level" yaml:"level"`
	Current  int     `json:"current" yaml:"current"`
	Next     int     `json:"next" yaml:"next"`
	Progress float64 `json:"progress" yaml:"progress"`
}

// LevelFor returns the level reached with xp. Levels start at 1.
func LevelFor(xp int) Level {
	if xp < 0 {
		xp = 0
	}
	into := xp % XPPerLevel
	return Level{
		Number:   xp/XPPerLevel + 1,
		Current:  into,
		Next:     XPPerLevel,
		Progress: float64(into) / float64(XPPerLevel),
	}
}
