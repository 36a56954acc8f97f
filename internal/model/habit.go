package model

// Habit is a recurring activity checked off per calendar day.
//
// Streak caches the streak derived from CompletedDates. It is only ever
// written by analytics.ToggleHabit and analytics.RefreshStreak; callers must
// not assign it directly.
type Habit struct {
	ID              string          `json:"id" validate:"required"`
	Title           string          `json:"title" validate:"required,max=256"`
	GoalDescription string          `json:"goalDescription" validate:"max=512"`
	CompletedDates  map[DayKey]bool `json:"completedDates"`
	Color           string          `json:"color" validate:"max=64"`
	Streak          int             `json:"streak" validate:"gte=0"`
}

// NewHabit creates a habit with no completions.
func NewHabit(title, goal, color string) Habit {
	return Habit{
		ID:              NewID(),
		Title:           title,
		GoalDescription: goal,
		CompletedDates:  map[DayKey]bool{},
		Color:           color,
	}
}

// Done reports whether the habit was completed on day.
func (h *Habit) Done(day DayKey) bool {
	return h.CompletedDates[day]
}

// CompletedCount returns the number of days marked complete.
func (h *Habit) CompletedCount() int {
	n := 0
	for _, ok := range h.CompletedDates {
		if ok {
			n++
		}
	}
	return n
}
