package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/boost/internal/model"
)

func TestXP(t *testing.T) {
	now := time.Date(2024, 11, 25, 10, 0, 0, 0, time.Local)
	sessions := []model.FocusSession{
		{ID: "s1", Duration: 25, Timestamp: now, Completed: true},
		{ID: "s2", Duration: 25, Timestamp: now, Completed: true},
		{ID: "s3", Duration: 40, Timestamp: now, Completed: false},
	}
	tasks := []model.Task{
		{ID: "t1", Completed: true},
		{ID: "t2", Completed: false},
	}
	tickets := []model.WorkTicket{
		{ID: "k1", Status: model.StatusDone},
		{ID: "k2", Status: model.StatusReview},
	}
	habits := []model.Habit{
		{ID: "h1", CompletedDates: days(today, back(1), back(2))},
	}

	b := ComputeXP(sessions, tasks, tickets, habits)
	assert.Equal(t, 500, b.Focus)
	assert.Equal(t, 50, b.Tasks)
	assert.Equal(t, 100, b.Tickets)
	assert.Equal(t, 60, b.Habits)
	assert.Equal(t, 710, XP(sessions, tasks, tickets, habits))
}

func TestXPEmpty(t *testing.T) {
	assert.Equal(t, 0, XP(nil, nil, nil, nil))
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp      int
		level   int
		current int
	}{
		{0, 1, 0},
		{710, 1, 710},
		{1000, 2, 0},
		{2550, 3, 550},
		{-5, 1, 0},
	}
	for _, tt := range tests {
		l := LevelFor(tt.xp)
		assert.Equal(t, tt.level, l.Number, "xp=%d", tt.xp)
		assert.Equal(t, tt.current, l.Current, "xp=%d", tt.xp)
		assert.Equal(t, XPPerLevel, l.Next)
	}
	assert.InDelta(t, 0.71, LevelFor(710).Progress, 1e-9)
}
