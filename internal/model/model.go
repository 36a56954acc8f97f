// Package model defines the records persisted by Boost.
//
// Records are plain data. Derived values (habit streaks, XP, weekly
// aggregates) are computed by the analytics package and written back only
// through the workspace.
package model

import (
	"github.com/google/uuid"
)

// Collection names a persisted sequence of records.
type Collection string

// Persisted collections. The string values are the storage keys.
const (
	CollectionTasks    Collection = "boost_tasks"
	CollectionTickets  Collection = "boost_tickets"
	CollectionHabits   Collection = "boost_habits"
	CollectionSessions Collection = "boost_focus_sessions"
	CollectionProfile  Collection = "boost_profile"
)

// Collections lists every persisted collection in a stable order.
var Collections = []Collection{
	CollectionTasks,
	CollectionTickets,
	CollectionHabits,
	CollectionSessions,
	CollectionProfile,
}

// Short returns the collection name without the storage prefix.
func (c Collection) Short() string {
	switch c {
	case CollectionTasks:
		return "tasks"
	case CollectionTickets:
		return "tickets"
	case CollectionHabits:
		return "habits"
	case CollectionSessions:
		return "focus_sessions"
	case CollectionProfile:
		return "profile"
	default:
		return string(c)
	}
}

// Priority ranks tasks and tickets.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists valid priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NewID returns a fresh record identifier (UUID v7, time ordered).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ShortID returns the display form of a record id: its last eight
// characters, which are the random part of a UUID v7.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
