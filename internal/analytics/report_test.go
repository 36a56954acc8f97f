package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/boost/internal/model"
)

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 11, 25, 18, 0, 0, 0, time.UTC)
	a := Activity{
		Sessions: []model.FocusSession{
			{ID: "1", Duration: 25, Timestamp: now.Add(-time.Hour), Completed: true},
			{ID: "2", Duration: 25, Timestamp: now.Add(-2 * time.Hour), Completed: true},
		},
		Tasks:   []model.Task{{ID: "t", Completed: true}},
		Tickets: []model.WorkTicket{{ID: "k", Status: model.StatusDone}},
		Habits:  []model.Habit{{ID: "h", CompletedDates: days(today, back(1), back(2)), Streak: 3}},
	}

	r := BuildReport(a, now, "Nice work!", nil)
	assert.Equal(t, ReportSummary, r.Summary)
	assert.Equal(t, "0h50m", r.TotalFocusTime)
	assert.Equal(t, 2, r.TotalSessions)
	assert.Equal(t, 710, r.TotalXP)
	assert.Equal(t, 1, r.Level)
	assert.Len(t, r.FocusData, 7)
	assert.Equal(t, 0.8, r.FocusData[6].Hours)
	assert.Equal(t, 4, len(r.TicketStats))
	assert.Equal(t, "Nice work!", r.AIInsight)
	assert.NotNil(t, r.ImprovementTips)
	assert.Equal(t, now, r.GeneratedAt)
}

func TestBuildMetrics(t *testing.T) {
	now := time.Date(2024, 11, 25, 18, 0, 0, 0, time.UTC)
	a := Activity{
		Tasks:  []model.Task{{Completed: true}, {}, {}},
		Habits: []model.Habit{{Streak: 2}, {Streak: 5}},
	}
	m := BuildMetrics(a, now)
	assert.Equal(t, 1, m.TasksCompleted)
	assert.Equal(t, 2, m.TasksOpen)
	assert.Equal(t, 5, m.BestStreak)
	assert.Len(t, m.FocusData, 7)
}
