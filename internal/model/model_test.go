package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DayKey Tests
// =============================================================================

func TestParseDayKey(t *testing.T) {
	k, err := ParseDayKey("2024-11-25")
	require.NoError(t, err)
	assert.Equal(t, DayKey("2024-11-25"), k)

	for _, bad := range []string{"", "2024-13-01", "25/11/2024", "2024-02-30"} {
		_, err := ParseDayKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestDayKeyAddDays(t *testing.T) {
	tests := []struct {
		from DayKey
		n    int
		want DayKey
	}{
		{"2024-02-28", 1, "2024-02-29"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-03-10", 0, "2024-03-10"},
		{"2024-03-09", 1, "2024-03-10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.AddDays(tt.n), "%s%+d", tt.from, tt.n)
	}
	assert.Equal(t, DayKey("nope"), DayKey("nope").AddDays(1))
}

func TestDayKeyOf(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	ts := time.Date(2024, 5, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, DayKey("2024-05-15"), DayKeyOf(ts))
	assert.Equal(t, DayKey("2024-05-16"), DayKeyOf(ts.UTC()))
}

func TestDayKeyTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got := DayKey("2024-05-15").Time(loc)

	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, loc), got)
	assert.True(t, DayKey("bad").Time(loc).IsZero())
	assert.False(t, DayKey("bad").Valid())
}

// =============================================================================
// Record Tests
// =============================================================================

func TestNewTaskDefaultsDuration(t *testing.T) {
	task := NewTask("Read", 0, PriorityLow, "2024-05-15")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, DefaultTaskDuration, task.Duration)
	assert.False(t, task.Completed)
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()

	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "89abcdef", ShortID("0190b3c1-2c4e-7abc-8def-0123456789abcdef"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities {
		assert.True(t, p.Valid())
	}
	assert.False(t, Priority("urgent").Valid())
}

func TestCollectionShort(t *testing.T) {
	assert.Equal(t, "tasks", CollectionTasks.Short())
	assert.Equal(t, "focus_sessions", CollectionSessions.Short())
	assert.Equal(t, "other", Collection("other").Short())
	assert.Len(t, Collections, 5)
}

// =============================================================================
// Ticket Tests
// =============================================================================

func TestTicketStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, TicketStatus("blocked").Valid())
	assert.Equal(t, "In Progress", StatusInProgress.Label())
}

func TestValidStoryPoints(t *testing.T) {
	assert.True(t, ValidStoryPoints(8))
	assert.False(t, ValidStoryPoints(4))
	assert.False(t, ValidStoryPoints(0))
}

func TestNextTicketCode(t *testing.T) {
	assert.Equal(t, "PROJ-101", NextTicketCode("PROJ", nil))

	tickets := []WorkTicket{{TicketID: "PROJ-104"}, {TicketID: "PROJ-102"}, {TicketID: "OTHER-900"}}
	assert.Equal(t, "PROJ-105", NextTicketCode("PROJ", tickets))
}

func TestSubtaskProgress(t *testing.T) {
	ticket := WorkTicket{Subtasks: []Subtask{{Completed: true}, {}, {Completed: true}}}
	done, total := ticket.SubtaskProgress()

	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

// =============================================================================
// Habit and Session Tests
// =============================================================================

func TestHabitDone(t *testing.T) {
	h := NewHabit("Run", "5k", "bg-blue-500")
	h.CompletedDates["2024-05-15"] = true
	h.CompletedDates["2024-05-14"] = false

	assert.True(t, h.Done("2024-05-15"))
	assert.False(t, h.Done("2024-05-14"))
	assert.Equal(t, 1, h.CompletedCount())
}

func TestFocusSessionDay(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	s := NewFocusSession(25, "Write", true, now)

	assert.Equal(t, DayKey("2024-05-15"), s.Day())
	assert.True(t, s.Completed)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "Jake", p.Name)
	assert.Equal(t, SoundChime, p.NotificationSound)
}
