package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/boost/internal/model"
)

func earned(badges []Badge) map[string]bool {
	m := map[string]bool{}
	for _, b := range badges {
		m[b.Name] = b.Earned
	}
	return m
}

func TestBadgesNoneEarned(t *testing.T) {
	badges := Badges(Activity{}, time.UTC)
	require.Len(t, badges, 4)
	for _, b := range badges {
		assert.False(t, b.Earned, b.Name)
	}
}

func TestBadgesEarned(t *testing.T) {
	morning := time.Date(2024, 11, 25, 6, 30, 0, 0, time.UTC)
	a := Activity{
		Sessions: []model.FocusSession{
			{ID: "1", Duration: 120, Timestamp: morning, Completed: true},
			{ID: "2", Duration: 120, Timestamp: morning.Add(5 * time.Hour), Completed: true},
		},
		Habits: []model.Habit{
			{ID: "h", CompletedDates: days(back(30), back(31), back(32), back(33), back(34), back(35), back(36))},
		},
		Profile: model.UserProfile{BreaksTaken: 10},
	}

	got := earned(Badges(a, time.UTC))
	assert.True(t, got["Early Bird"])
	assert.True(t, got["Streak Master"], "a past seven day run counts")
	assert.True(t, got["Deep Work"])
	assert.True(t, got["Zen Master"])
}

func TestBadgesIgnoreAbandonedSessions(t *testing.T) {
	morning := time.Date(2024, 11, 25, 5, 0, 0, 0, time.UTC)
	a := Activity{
		Sessions: []model.FocusSession{
			{ID: "1", Duration: 300, Timestamp: morning, Completed: false},
		},
	}
	got := earned(Badges(a, time.UTC))
	assert.False(t, got["Early Bird"])
	assert.False(t, got["Deep Work"])
}

func TestLeaderboard(t *testing.T) {
	board := Leaderboard("", 850)
	require.Len(t, board, 5)
	assert.Equal(t, "Jake.0", board[0].Name)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "You", board[4].Name)
	assert.True(t, board[4].You)
	assert.Equal(t, 5, board[4].Rank)

	board = Leaderboard("Sam", 11200)
	assert.Equal(t, "Sam", board[1].Name)
	assert.Equal(t, 2, board[1].Rank)
}
