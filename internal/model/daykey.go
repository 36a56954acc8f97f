package model

import (
	"fmt"
	"time"
)

// DayKeyLayout is the calendar-day format used for record dates.
const DayKeyLayout = "2006-01-02"

// DayKey identifies a local calendar day, e.g. "2024-11-25".
type DayKey string

// DayKeyOf returns the calendar day of t in t's location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(DayKeyLayout))
}

// Today returns the calendar day of now in the local time zone.
func Today() DayKey {
	return DayKeyOf(time.Now())
}

// ParseDayKey validates s as a calendar-day key.
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(DayKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid day %q: expected YYYY-MM-DD", s)
	}
	return DayKey(s), nil
}

// Valid reports whether k is a well-formed calendar day.
func (k DayKey) Valid() bool {
	_, err := time.Parse(DayKeyLayout, string(k))
	return err == nil
}

// Time returns midnight of k in loc. Invalid keys yield the zero time.
func (k DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n calendar days after k (n may be negative).
// Calendar arithmetic is done in UTC so DST transitions never skip a day.
func (k DayKey) AddDays(n int) DayKey {
	t, err := time.Parse(DayKeyLayout, string(k))
	if err != nil {
		return k
	}
	return DayKey(t.AddDate(0, 0, n).Format(DayKeyLayout))
}

// String implements fmt.Stringer.
func (k DayKey) String() string {
	return string(k)
}
