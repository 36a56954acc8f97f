package workspace

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/validate"
)

// AddHabit appends a habit. An empty color picks the next palette entry.
func (w *Workspace) AddHabit(title, goal, color string) (model.Habit, error) {
	title, err := FormatTitle(title)
	if err != nil {
		return model.Habit{}, err
	}
	goal = strings.TrimSpace(goal)
	if goal == "" {
		goal = DefaultHabitGoal
	}
	if color == "" {
		color = HabitColors[len(w.habits)%len(HabitColors)]
	}

	habit := model.NewHabit(title, goal, color)
	if err := validate.Struct(habit); err != nil {
		return model.Habit{}, err
	}

	habits := append(slices.Clone(w.habits), habit)
	if err := w.store.SaveHabits(habits); err != nil {
		return model.Habit{}, err
	}
	w.habits = habits
	return habit, nil
}

// FindHabit resolves ref, an id, id suffix or case-insensitive title, to a
// habit index.
func (w *Workspace) FindHabit(ref string) (int, error) {
	i, err := matchIndex(len(w.habits), func(i int) string { return w.habits[i].ID }, ref)
	if err != nil {
		return -1, err
	}
	if i >= 0 {
		return i, nil
	}

	name := strings.TrimSpace(ref)
	for k, h := range w.habits {
		if name != "" && strings.EqualFold(h.Title, name) {
			return k, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", errors.ErrHabitNotFound, ref)
}

// ToggleHabit flips the habit's completion on day and recomputes its streak
// against today.
func (w *Workspace) ToggleHabit(ref string, day model.DayKey) (model.Habit, error) {
	i, err := w.FindHabit(ref)
	if err != nil {
		return model.Habit{}, err
	}
	if day == "" {
		day = w.Today()
	}
	if !day.Valid() {
		return model.Habit{}, errors.NewUserErrorWithField("date", string(day),
			errors.ErrInvalidDate.Error(), errors.Suggestions[errors.ErrInvalidDate])
	}

	habits := slices.Clone(w.habits)
	h := habits[i]
	h.CompletedDates = maps.Clone(h.CompletedDates)
	analytics.ToggleHabit(&h, day, w.Today())
	habits[i] = h

	if err := w.store.SaveHabits(habits); err != nil {
		return model.Habit{}, err
	}
	w.habits = habits
	return h, nil
}

// DeleteHabit removes a habit and its history.
func (w *Workspace) DeleteHabit(ref string) (model.Habit, error) {
	i, err := w.FindHabit(ref)
	if err != nil {
		return model.Habit{}, err
	}

	removed := w.habits[i]
	habits := slices.Delete(slices.Clone(w.habits), i, i+1)
	if err := w.store.SaveHabits(habits); err != nil {
		return model.Habit{}, err
	}
	w.habits = habits
	return removed, nil
}
