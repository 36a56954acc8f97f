// Package analytics derives metrics from stored records: habit streaks,
// XP, weekly focus hours, ticket distribution, badges and the export report.
//
// Every function is pure. The current time is always passed in.
package analytics

import (
	"github.com/manav03panchal/boost/internal/model"
)

// Streak counts consecutive completed days ending at today or yesterday.
//
// If neither today nor yesterday is complete the chain is broken and the
// streak is zero, whatever older history exists.
func Streak(completed map[model.DayKey]bool, today model.DayKey) int {
	day := today
	if !completed[day] {
		day = today.AddDays(-1)
		if !completed[day] {
			return 0
		}
	}

	streak := 0
	for completed[day] {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// ToggleHabit flips the completion of day and recomputes the cached streak.
// It is the only way a habit's completion set should change.
func ToggleHabit(h *model.Habit, day, today model.DayKey) {
	if h.CompletedDates == nil {
		h.CompletedDates = map[model.DayKey]bool{}
	}
	if h.CompletedDates[day] {
		delete(h.CompletedDates, day)
	} else {
		h.CompletedDates[day] = true
	}
	RefreshStreak(h, today)
}

// RefreshStreak overwrites the cached streak from the completion set.
func RefreshStreak(h *model.Habit, today model.DayKey) {
	h.Streak = Streak(h.CompletedDates, today)
}

// RefreshStreaks refreshes every habit in place.
func RefreshStreaks(habits []model.Habit, today model.DayKey) {
	for i := range habits {
		RefreshStreak(&habits[i], today)
	}
}

// LongestStreak returns the longest run of consecutive completed days in
// the habit's whole history.
func LongestStreak(completed map[model.DayKey]bool) int {
	longest := 0
	for day, ok := range completed {
		if !ok || completed[day.AddDays(-1)] {
			continue
		}
		run := 0
		for d := day; completed[d]; d = d.AddDays(1) {
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
