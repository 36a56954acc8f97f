// Package workspace holds the working set of records and is the only
// writer to the record store.
//
// Every mutation is applied to a copy of the affected collection, saved
// as a whole, and only then made visible. A failed save leaves the
// in-memory state untouched.
package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/storage"
	"github.com/manav03panchal/boost/internal/validate"
)

// TicketPrefix is the project code used for new tickets.
const TicketPrefix = "PROJ"

// Defaults applied to records created without explicit values.
const (
	DefaultTicketTag      = "General"
	DefaultTicketAssignee = "ME"
	DefaultStoryPoints    = 1
	DefaultHabitGoal      = "Daily goal"
)

// HabitColors is the palette offered for new habits.
var HabitColors = []string{
	"bg-red-500", "bg-orange-500", "bg-amber-500", "bg-green-500",
	"bg-emerald-500", "bg-teal-500", "bg-cyan-500", "bg-blue-500",
	"bg-indigo-500", "bg-violet-500", "bg-purple-500", "bg-fuchsia-500",
	"bg-pink-500", "bg-rose-500",
}

// Workspace is the in-memory working set.
type Workspace struct {
	store *storage.Store
	now   func() time.Time
	seed  bool

	tasks    []model.Task
	tickets  []model.WorkTicket
	habits   []model.Habit
	sessions []model.FocusSession
	profile  model.UserProfile
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) {
		w.now = now
	}
}

// WithoutSeed disables installing default records into empty collections.
func WithoutSeed() Option {
	return func(w *Workspace) {
		w.seed = false
	}
}

// Open loads every collection from store. Empty task, ticket and habit
// collections are seeded with starter records and saved immediately.
func Open(store *storage.Store, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		store: store,
		now:   time.Now,
		seed:  true,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.Reload()

	if w.seed {
		if err := w.seedDefaults(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Reload replaces the working set with what is currently persisted.
func (w *Workspace) Reload() {
	w.tasks = w.store.Tasks()
	w.tickets = w.store.Tickets()
	w.habits = w.store.Habits()
	analytics.RefreshStreaks(w.habits, w.Today())
	w.sessions = w.store.Sessions()
	w.profile = w.store.Profile()
}

func (w *Workspace) seedDefaults() error {
	today := w.Today()

	if len(w.habits) == 0 {
		habits := DefaultHabits()
		if err := w.store.SaveHabits(habits); err != nil {
			return err
		}
		w.habits = habits
		logging.DebugLog("seeded collection", logging.KeyCollection, model.CollectionHabits.Short(), logging.KeyCount, len(habits))
	}
	if len(w.tickets) == 0 {
		tickets := DefaultTickets(today)
		if err := w.store.SaveTickets(tickets); err != nil {
			return err
		}
		w.tickets = tickets
		logging.DebugLog("seeded collection", logging.KeyCollection, model.CollectionTickets.Short(), logging.KeyCount, len(tickets))
	}
	if len(w.tasks) == 0 {
		tasks := DefaultTasks(today)
		if err := w.store.SaveTasks(tasks); err != nil {
			return err
		}
		w.tasks = tasks
		logging.DebugLog("seeded collection", logging.KeyCollection, model.CollectionTasks.Short(), logging.KeyCount, len(tasks))
	}
	return nil
}

// Store returns the underlying record store.
func (w *Workspace) Store() *storage.Store {
	return w.store
}

// Now returns the workspace clock's current time.
func (w *Workspace) Now() time.Time {
	return w.now()
}

// Today returns the current local calendar day.
func (w *Workspace) Today() model.DayKey {
	return model.DayKeyOf(w.now())
}

// Tasks returns the task list, newest first.
func (w *Workspace) Tasks() []model.Task { return w.tasks }

// Tickets returns the work board tickets.
func (w *Workspace) Tickets() []model.WorkTicket { return w.tickets }

// Habits returns the tracked habits with fresh streaks.
func (w *Workspace) Habits() []model.Habit { return w.habits }

// Sessions returns the focus session log.
func (w *Workspace) Sessions() []model.FocusSession { return w.sessions }

// Profile returns the user profile.
func (w *Workspace) Profile() model.UserProfile { return w.profile }

// Activity bundles the working set for analytics.
func (w *Workspace) Activity() analytics.Activity {
	return analytics.Activity{
		Tasks:    w.tasks,
		Tickets:  w.tickets,
		Habits:   w.habits,
		Sessions: w.sessions,
		Profile:  w.profile,
	}
}

// matchIndex finds the record whose id equals ref or ends with it.
// Ids are time ordered, so the distinguishing characters are at the end.
// An exact match always wins over suffix matches.
func matchIndex(n int, id func(int) string, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, nil
	}
	found := -1
	for i := 0; i < n; i++ {
		candidate := id(i)
		if candidate == ref {
			return i, nil
		}
		if strings.HasSuffix(candidate, ref) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %s", errors.ErrAmbiguousID, ref)
			}
			found = i
		}
	}
	return found, nil
}

// FormatTitle normalizes a user-supplied title and checks it.
func FormatTitle(title string) (string, error) {
	title = validate.SanitizeTitle(title)
	if err := validate.Title(title); err != nil {
		return "", err
	}
	return title, nil
}
