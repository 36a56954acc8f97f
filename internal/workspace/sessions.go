package workspace

import (
	"slices"

	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/validate"
)

// RecordSession appends a focus session of the given minutes ending now.
// Sessions shorter than a minute are dropped and the flag is false.
func (w *Workspace) RecordSession(minutes int, goal string, completed bool) (model.FocusSession, bool, error) {
	if minutes < 1 {
		return model.FocusSession{}, false, nil
	}

	session := model.NewFocusSession(minutes, validate.SanitizeTitle(goal), completed, w.now())
	if err := validate.Struct(session); err != nil {
		return model.FocusSession{}, false, err
	}
	if err := w.store.AppendSession(session); err != nil {
		return model.FocusSession{}, false, err
	}
	w.sessions = append(slices.Clone(w.sessions), session)
	return session, true, nil
}

// SessionsOn returns the focus sessions recorded on day.
func (w *Workspace) SessionsOn(day model.DayKey) []model.FocusSession {
	var out []model.FocusSession
	for i := range w.sessions {
		if w.sessions[i].Day() == day {
			out = append(out, w.sessions[i])
		}
	}
	return out
}

// UpdateProfile applies fn to a copy of the profile, validates and saves it.
// The break counter is not user editable.
func (w *Workspace) UpdateProfile(fn func(*model.UserProfile)) (model.UserProfile, error) {
	profile := w.profile
	fn(&profile)
	profile.BreaksTaken = w.profile.BreaksTaken

	if err := validate.Struct(profile); err != nil {
		return model.UserProfile{}, err
	}
	if err := w.store.SaveProfile(profile); err != nil {
		return model.UserProfile{}, err
	}
	w.profile = profile
	return profile, nil
}

// RecordBreak counts a break interval that ran to completion.
func (w *Workspace) RecordBreak() (int, error) {
	profile := w.profile
	profile.BreaksTaken++
	if err := w.store.SaveProfile(profile); err != nil {
		return w.profile.BreaksTaken, err
	}
	w.profile = profile
	return profile.BreaksTaken, nil
}
