package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/manav03panchal/boost/internal/model"
)

// DayFocus is one day of the weekly focus chart.
type DayFocus struct {
	Day   string       `json:"day" yaml:"day"`
	Date  string       `json:"date" yaml:"date"`
	Key   model.DayKey `json:"-" yaml:"-"`
	Hours float64      `json:"hours" yaml:"hours"`
}

// WeeklyFocus returns exactly seven entries for [today-6, today], oldest
// first. Days without sessions have zero hours.
func WeeklyFocus(sessions []model.FocusSession, now time.Time) []DayFocus {
	minutes := make(map[model.DayKey]int, len(sessions))
	for i := range sessions {
		minutes[DayOf(sessions[i].Timestamp, now.Location())] += sessions[i].Duration
	}

	today := model.DayKeyOf(now)
	out := make([]DayFocus, 0, 7)
	for i := 6; i >= 0; i-- {
		key := today.AddDays(-i)
		t := key.Time(now.Location())
		out = append(out, DayFocus{
			Day:   t.Format("Mon"),
			Date:  t.Format("Jan 2"),
			Key:   key,
			Hours: roundTenths(float64(minutes[key]) / 60),
		})
	}
	return out
}

// DayOf returns the calendar day of t in loc.
func DayOf(t time.Time, loc *time.Location) model.DayKey {
	if loc == nil {
		loc = time.Local
	}
	return model.DayKeyOf(t.In(loc))
}

// WeeklyTotalHours sums the hours of a weekly chart.
func WeeklyTotalHours(week []DayFocus) float64 {
	total := 0.0
	for _, d := range week {
		total += d.Hours
	}
	return roundTenths(total)
}

// TotalFocus sums the durations of every session.
func TotalFocus(sessions []model.FocusSession) time.Duration {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return time.Duration(total) * time.Minute
}

// FormatFocus renders a focus total as "XhYm".
func FormatFocus(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("%dh%dm", mins/60, mins%60)
}

func roundTenths(v float64) float64 {
	return math.Round(v*10) / 10
}
