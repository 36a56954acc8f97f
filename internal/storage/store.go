package storage

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
	"github.com/manav03panchal/boost/internal/model"
)

// CurrentSchemaVersion is the envelope version written by Save.
const CurrentSchemaVersion = 1

// ErrSchemaTooNew is returned when a collection was written by a newer release.
var ErrSchemaTooNew = stderrors.New("collection schema is newer than this release supports")

// envelope wraps every persisted collection.
type envelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

// migration upgrades the items payload from version N to N+1.
type migration func(items json.RawMessage) (json.RawMessage, error)

// migrations is indexed by the source version.
var migrations = map[int]migration{
	// Version 0 is a bare JSON array. Items are unchanged by the upgrade.
	0: func(items json.RawMessage) (json.RawMessage, error) { return items, nil },
}

// Store reads and writes the named collections.
//
// Loads never fail: missing, unreadable and too-new collections yield an
// empty result and a WARN log entry. Saves overwrite the whole collection.
type Store struct {
	backend Backend
	now     func() time.Time

	// mu serializes read-modify-write appends.
	mu sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used to refresh habit streaks.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store over backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// decode unwraps raw into v, migrating older envelopes.
func decode(raw []byte, v any) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, fmt.Errorf("empty payload")
	}

	var env envelope
	if trimmed[0] == '[' {
		env = envelope{Version: 0, Items: trimmed}
	} else if err := json.Unmarshal(trimmed, &env); err != nil {
		return 0, err
	}

	if env.Version > CurrentSchemaVersion {
		return env.Version, ErrSchemaTooNew
	}

	items := env.Items
	for version := env.Version; version < CurrentSchemaVersion; version++ {
		m, ok := migrations[version]
		if !ok {
			return env.Version, fmt.Errorf("no migration from schema version %d", version)
		}
		var err error
		if items, err = m(items); err != nil {
			return env.Version, fmt.Errorf("migrate from version %d: %w", version, err)
		}
	}

	if len(items) == 0 || string(items) == "null" {
		return env.Version, nil
	}
	return env.Version, json.Unmarshal(items, v)
}

func encode(v any) ([]byte, error) {
	items, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: CurrentSchemaVersion, Items: items})
}

// records maps each collection to a fresh value of the type its items
// decode into. Store.load and Check both decode through it.
var records = map[model.Collection]func() any{
	model.CollectionTasks:    func() any { return new([]model.Task) },
	model.CollectionTickets:  func() any { return new([]model.WorkTicket) },
	model.CollectionHabits:   func() any { return new([]model.Habit) },
	model.CollectionSessions: func() any { return new([]model.FocusSession) },
	model.CollectionProfile:  func() any { return new(model.UserProfile) },
}

// decodeCollection decodes raw as collection c into v, or into a fresh
// record value when v is nil. It returns the schema version and the number
// of records decoded.
func decodeCollection(c model.Collection, raw []byte, v any) (version, count int, err error) {
	fresh, ok := records[c]
	if !ok {
		return 0, 0, fmt.Errorf("unknown collection %q", c)
	}
	if v == nil {
		v = fresh()
	} else if want := reflect.TypeOf(fresh()); reflect.TypeOf(v) != want {
		return 0, 0, fmt.Errorf("collection %s holds %s, not %T", c, want.Elem(), v)
	}

	version, err = decode(raw, v)
	if err != nil {
		return version, 0, err
	}
	if rv := reflect.ValueOf(v).Elem(); rv.Kind() == reflect.Slice {
		return version, rv.Len(), nil
	}
	return version, 1, nil
}

// load reads collection c into v. It reports whether anything was decoded.
func (s *Store) load(c model.Collection, v any) bool {
	raw, err := s.backend.Get(string(c))
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("collection unreadable",
				logging.KeyCollection, c,
				logging.KeyBackend, s.backend.Name(),
				logging.KeyError, err)
		}
		return false
	}

	version, _, err := decodeCollection(c, raw, v)
	if err != nil {
		logging.Warn("collection discarded",
			logging.KeyCollection, c,
			logging.KeyVersion, version,
			logging.KeyError, err)
		return false
	}
	return true
}

func (s *Store) save(c model.Collection, v any) error {
	data, err := encode(v)
	if err != nil {
		return errors.NewSystemErrorWithOp("save "+c.Short(), "failed to encode collection", err)
	}
	if err := s.backend.Set(string(c), data); err != nil {
		return errors.NewSystemErrorWithOp("save "+c.Short(), "failed to write collection", err)
	}
	logging.DebugLog("collection saved", logging.KeyCollection, c, logging.KeyCount, len(data))
	return nil
}

// Load returns every record stored in collection c. It never fails.
func Load[T any](s *Store, c model.Collection) []T {
	var items []T
	if !s.load(c, &items) {
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save overwrites collection c with items.
func Save[T any](s *Store, c model.Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	return s.save(c, items)
}

// Tasks loads the task collection.
func (s *Store) Tasks() []model.Task {
	return Load[model.Task](s, model.CollectionTasks)
}

// SaveTasks overwrites the task collection.
func (s *Store) SaveTasks(tasks []model.Task) error {
	return Save(s, model.CollectionTasks, tasks)
}

// Tickets loads the ticket collection.
func (s *Store) Tickets() []model.WorkTicket {
	return Load[model.WorkTicket](s, model.CollectionTickets)
}

// SaveTickets overwrites the ticket collection.
func (s *Store) SaveTickets(tickets []model.WorkTicket) error {
	return Save(s, model.CollectionTickets, tickets)
}

// Habits loads the habit collection with streaks recomputed for today.
func (s *Store) Habits() []model.Habit {
	habits := Load[model.Habit](s, model.CollectionHabits)
	analytics.RefreshStreaks(habits, model.DayKeyOf(s.now()))
	return habits
}

// SaveHabits overwrites the habit collection.
func (s *Store) SaveHabits(habits []model.Habit) error {
	return Save(s, model.CollectionHabits, habits)
}

// Sessions loads the focus session history.
func (s *Store) Sessions() []model.FocusSession {
	return Load[model.FocusSession](s, model.CollectionSessions)
}

// AppendSession appends one session to the stored history.
func (s *Store) AppendSession(session model.FocusSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.Sessions()
	sessions = append(sessions, session)
	return Save(s, model.CollectionSessions, sessions)
}

// Profile loads the user profile, or the default profile if none is stored.
func (s *Store) Profile() model.UserProfile {
	profile := model.DefaultProfile()
	if !s.load(model.CollectionProfile, &profile) {
		return model.DefaultProfile()
	}
	return profile
}

// SaveProfile overwrites the stored profile.
func (s *Store) SaveProfile(profile model.UserProfile) error {
	return s.save(model.CollectionProfile, profile)
}

// Clear removes collection c.
func (s *Store) Clear(c model.Collection) error {
	if err := s.backend.Delete(string(c)); err != nil {
		return errors.NewSystemErrorWithOp("clear "+c.Short(), "failed to delete collection", err)
	}
	return nil
}
