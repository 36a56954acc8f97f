package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
)

// =============================================================================
// Struct Validation Tests
// =============================================================================

func validTask() model.Task {
	return model.Task{ID: "t1", Title: "Write", Duration: 15, Priority: model.PriorityLow, Date: "2024-05-15"}
}

func TestStructTask(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Task)
		field   string
		wantErr bool
	}{
		{"valid", func(*model.Task) {}, "", false},
		{"missing_title", func(tk *model.Task) { tk.Title = "" }, "title", true},
		{"zero_duration", func(tk *model.Task) { tk.Duration = 0 }, "duration", true},
		{"bad_priority", func(tk *model.Task) { tk.Priority = "urgent" }, "priority", true},
		{"bad_date", func(tk *model.Task) { tk.Date = "15/05/2024" }, "date", true},
		{"impossible_date", func(tk *model.Task) { tk.Date = "2024-02-30" }, "date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := Struct(task)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ue, ok := errors.AsUserError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ue.Field)
		})
	}
}

func TestStructTicket(t *testing.T) {
	ticket := model.WorkTicket{
		ID: "k1", TicketID: "PROJ-101", Title: "Design",
		Status: model.StatusReview, Priority: model.PriorityHigh, Date: "2024-05-15",
	}
	assert.NoError(t, Struct(ticket))

	ticket.StoryPoints = 4
	err := Struct(ticket)
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "storypoints", ue.Field)
	assert.Contains(t, ue.Suggestion, "13")

	ticket.StoryPoints = 8
	ticket.Subtasks = []model.Subtask{{ID: "s1"}}
	assert.Error(t, Struct(ticket))
}

func TestStructProfile(t *testing.T) {
	p := model.DefaultProfile()
	assert.NoError(t, Struct(p))

	p.Email = "not-an-email"
	assert.Error(t, Struct(p))

	p.Email = "jake@example.com"
	p.NotificationSound = "siren"
	assert.Error(t, Struct(p))
}

// =============================================================================
// Field Tests
// =============================================================================

func TestTitle(t *testing.T) {
	assert.NoError(t, Title("Plan sprint"))
	assert.Error(t, Title(""))
	assert.Error(t, Title("   "))
	assert.NoError(t, Title(strings.Repeat("a", MaxTitleLength)))
	assert.Error(t, Title(strings.Repeat("a", MaxTitleLength+1)))
}

func TestPriority(t *testing.T) {
	p, err := Priority(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, p)

	_, err = Priority("urgent")
	assert.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		in   string
		want model.TicketStatus
	}{
		{"todo", model.StatusTodo},
		{"In Progress", model.StatusInProgress},
		{"in_progress", model.StatusInProgress},
		{"REVIEW", model.StatusReview},
		{"done", model.StatusDone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Status(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Status("blocked")
	assert.Error(t, err)
}

func TestStoryPoints(t *testing.T) {
	assert.NoError(t, StoryPoints(0))
	assert.NoError(t, StoryPoints(5))
	assert.Error(t, StoryPoints(4))
}

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, NonEmpty("name", "Jake"))
	err := NonEmpty("name", " ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestInRange(t *testing.T) {
	assert.NoError(t, InRange("minutes", 25, 1, 180))
	err := InRange("minutes", 0, 1, 180)
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "Must be between 1 and 180", ue.Suggestion)
}

// =============================================================================
// Sanitize Functions Tests
// =============================================================================

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal", "My Task", "My Task"},
		{"with_whitespace", "  My Task  ", "My Task"},
		{"with_control", "My\x00Task", "MyTask"},
		{"with_tab", "My\tTask", "MyTask"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeTitle(tt.input))
		})
	}
}

func TestSanitizeNote(t *testing.T) {
	assert.Equal(t, "a\nb\nc", SanitizeNote("  a\r\nb\rc\x00  "))
}

func TestSanitizeAssignee(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"jd", "JD"},
		{"Jane Doe", "JD"},
		{"mary kate olsen", "MK"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeAssignee(tt.input))
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "long te...", TruncateString("long text here", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
