package model

import "fmt"

// TicketStatus is a column on the work board. Tickets may move between any
// two columns; the order below is only the display pipeline.
type TicketStatus string

const (
	StatusTodo       TicketStatus = "todo"
	StatusInProgress TicketStatus = "in-progress"
	StatusReview     TicketStatus = "review"
	StatusDone       TicketStatus = "done"
)

// Statuses lists the board columns in pipeline order.
var Statuses = []TicketStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is a known board column.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Label returns the column heading.
func (s TicketStatus) Label() string {
	switch s {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// StoryPointScale is the estimation scale offered for tickets.
var StoryPointScale = []int{1, 2, 3, 5, 8, 13, 21}

// ValidStoryPoints reports whether p is on the estimation scale.
func ValidStoryPoints(p int) bool {
	for _, v := range StoryPointScale {
		if v == p {
			return true
		}
	}
	return false
}

// Subtask is a checklist item inside a ticket.
type Subtask struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required,max=256"`
	Completed bool   `json:"completed"`
}

// WorkTicket is a card on the work board.
type WorkTicket struct {
	ID          string       `json:"id" validate:"required"`
	TicketID    string       `json:"ticketId" validate:"required,max=32"`
	Title       string       `json:"title" validate:"required,max=256"`
	Description string       `json:"description" validate:"max=4096"`
	Status      TicketStatus `json:"status" validate:"required,oneof=todo in-progress review done"`
	Priority    Priority     `json:"priority" validate:"required,oneof=high medium low"`
	Tag         string       `json:"tag" validate:"max=64"`
	Assignee    string       `json:"assignee" validate:"max=8"`
	Date        DayKey       `json:"date" validate:"required,daykey"`
	StoryPoints int          `json:"storyPoints,omitempty" validate:"omitempty,storypoints"`
	Subtasks    []Subtask    `json:"subtasks,omitempty" validate:"dive"`
}

// SubtaskProgress returns completed and total subtask counts.
func (t *WorkTicket) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// NextTicketCode returns the next "PREFIX-N" code after the highest one in use.
func NextTicketCode(prefix string, tickets []WorkTicket) string {
	highest := 100
	for _, t := range tickets {
		var n int
		if _, err := fmt.Sscanf(t.TicketID, prefix+"-%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%d", prefix, highest+1)
}
