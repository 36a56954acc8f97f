package model

import "time"

// FocusSession is an immutable record of one focus interval.
// Completed is true only when the interval ran to natural expiry.
type FocusSession struct {
	ID        string    `json:"id" validate:"required"`
	Duration  int       `json:"duration" validate:"gte=0"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Goal      string    `json:"goal,omitempty" validate:"max=256"`
	Completed bool      `json:"completed"`
}

// NewFocusSession records a focus interval of the given minutes ending at now.
func NewFocusSession(minutes int, goal string, completed bool, now time.Time) FocusSession {
	return FocusSession{
		ID:        NewID(),
		Duration:  minutes,
		Timestamp: now,
		Goal:      goal,
		Completed: completed,
	}
}

// Day returns the local calendar day the session was recorded on.
func (s *FocusSession) Day() DayKey {
	return DayKeyOf(s.Timestamp.Local())
}
