package model

// DefaultTaskDuration is the estimate given to tasks created without one.
const DefaultTaskDuration = 15

// Task is a to-do item scheduled on a calendar day.
type Task struct {
	ID        string   `json:"id" validate:"required"`
	Title     string   `json:"title" validate:"required,max=256"`
	Duration  int      `json:"duration" validate:"gt=0"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority" validate:"required,oneof=high medium low"`
	Date      DayKey   `json:"date" validate:"required,daykey"`
}

// NewTask creates an open task on day.
func NewTask(title string, duration int, priority Priority, day DayKey) Task {
	if duration <= 0 {
		duration = DefaultTaskDuration
	}
	return Task{
		ID:       NewID(),
		Title:    title,
		Duration: duration,
		Priority: priority,
		Date:     day,
	}
}
