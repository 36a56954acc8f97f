// Package timer implements the focus/break countdown for Boost.
//
// Engine is a wall-clock anchored state machine. Remaining time is always
// recomputed from an absolute deadline, so skipped or coalesced ticks never
// cause drift. Runner and the TUI drive it by calling Tick.
package timer

import (
	"sync"
	"time"
)

// Mode is the kind of interval being timed.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Opposite returns the mode that follows m.
func (m Mode) Opposite() Mode {
	if m == ModeBreak {
		return ModeFocus
	}
	return ModeBreak
}

// String returns the display label of the mode.
func (m Mode) String() string {
	if m == ModeBreak {
		return "BREAK"
	}
	return "FOCUS"
}

// Default interval lengths in minutes.
const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ExpiryPolicy decides what happens after an interval runs out.
type ExpiryPolicy int

const (
	// PolicySwitch flips to the opposite mode and stays idle.
	PolicySwitch ExpiryPolicy = iota
	// PolicySwitchAndStart flips to the opposite mode and starts it.
	PolicySwitchAndStart
	// PolicyStop stays in the ended mode at zero.
	PolicyStop
)

// ExpireFunc is invoked once per natural expiry with the mode that ended
// and its full length.
type ExpireFunc func(ended Mode, length time.Duration)

// State is a snapshot of the engine.
type State struct {
	Mode      Mode
	Running   bool
	Remaining time.Duration
	Total     time.Duration
}

// Progress returns the elapsed fraction of the interval in [0, 1].
func (s State) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := 1 - float64(s.Remaining)/float64(s.Total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Elapsed returns how much of the interval has run.
func (s State) Elapsed() time.Duration {
	return s.Total - s.Remaining
}

// Config configures an Engine.
type Config struct {
	FocusMinutes int
	BreakMinutes int
	Policy       ExpiryPolicy
	Clock        Clock
	OnExpire     ExpireFunc
}

// Engine is the countdown state machine. It is safe for use by a ticking
// goroutine and an input goroutine at the same time.
type Engine struct {
	mu sync.Mutex

	clock    Clock
	policy   ExpiryPolicy
	onExpire ExpireFunc
	minutes  map[Mode]int

	state    State
	deadline time.Time

	ambientSound bool
}

// NewEngine creates an idle engine in focus mode.
func NewEngine(cfg Config) *Engine {
	if cfg.FocusMinutes < 1 {
		cfg.FocusMinutes = DefaultFocusMinutes
	}
	if cfg.BreakMinutes < 1 {
		cfg.BreakMinutes = DefaultBreakMinutes
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}

	e := &Engine{
		clock:    cfg.Clock,
		policy:   cfg.Policy,
		onExpire: cfg.OnExpire,
		minutes: map[Mode]int{
			ModeFocus: cfg.FocusMinutes,
			ModeBreak: cfg.BreakMinutes,
		},
	}
	e.resetLocked(ModeFocus)
	return e
}

// OnExpire replaces the expiry callback.
func (e *Engine) OnExpire(fn ExpireFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onExpire = fn
}

// State returns a snapshot without advancing the countdown.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Minutes returns the configured length of mode.
func (e *Engine) Minutes(mode Mode) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.minutes[mode]
}

// Start anchors the deadline at now + remaining. No-op while running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

func (e *Engine) startLocked() {
	if e.state.Running {
		return
	}
	e.deadline = e.clock.Now().Add(e.state.Remaining)
	e.state.Running = true
}

// Pause freezes the remaining time and drops the deadline.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Running {
		return
	}
	e.state.Remaining = e.remainingLocked()
	e.state.Running = false
	e.deadline = time.Time{}
}

// Toggle starts an idle engine or pauses a running one.
func (e *Engine) Toggle() {
	if e.State().Running {
		e.Pause()
	} else {
		e.Start()
	}
}

// Reset stops the engine and refills the current mode.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked(e.state.Mode)
}

// SetDuration sets the length of mode in minutes. Values below one minute
// keep the previous length. An idle engine in mode is refilled at once.
// Returns the length in effect.
func (e *Engine) SetDuration(mode Mode, minutes int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if minutes < 1 {
		return e.minutes[mode]
	}
	e.minutes[mode] = minutes
	if !e.state.Running && e.state.Mode == mode {
		e.resetLocked(mode)
	}
	return minutes
}

// SwitchMode stops the engine and loads mode at full length.
// Entering or leaving break turns ambient sound off.
func (e *Engine) SwitchMode(mode Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.switchLocked(mode)
}

func (e *Engine) switchLocked(mode Mode) {
	if mode != e.state.Mode && (mode == ModeBreak || e.state.Mode == ModeBreak) {
		e.ambientSound = false
	}
	e.resetLocked(mode)
}

func (e *Engine) resetLocked(mode Mode) {
	total := time.Duration(e.minutes[mode]) * time.Minute
	e.state = State{Mode: mode, Remaining: total, Total: total}
	e.deadline = time.Time{}
}

// AmbientSound reports whether the ambient sound toggle is on.
func (e *Engine) AmbientSound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ambientSound
}

// SetAmbientSound sets the ambient sound toggle.
func (e *Engine) SetAmbientSound(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ambientSound = on
}

func (e *Engine) remainingLocked() time.Duration {
	r := e.deadline.Sub(e.clock.Now())
	if r < 0 {
		return 0
	}
	return r
}

// Tick recomputes the remaining time from the deadline. On expiry it stops
// the engine, calls the expiry callback, then applies the expiry policy.
// It reports whether this tick ended an interval.
func (e *Engine) Tick() (State, bool) {
	e.mu.Lock()
	if !e.state.Running {
		st := e.state
		e.mu.Unlock()
		return st, false
	}

	e.state.Remaining = e.remainingLocked()
	if e.state.Remaining > 0 {
		st := e.state
		e.mu.Unlock()
		return st, false
	}

	e.state.Running = false
	e.deadline = time.Time{}
	ended, length := e.state.Mode, e.state.Total
	onExpire := e.onExpire
	e.mu.Unlock()

	if onExpire != nil {
		onExpire(ended, length)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// The callback may already have moved the engine on.
	if e.state.Mode == ended && !e.state.Running && e.state.Remaining == 0 {
		switch e.policy {
		case PolicySwitch:
			e.switchLocked(ended.Opposite())
		case PolicySwitchAndStart:
			e.switchLocked(ended.Opposite())
			e.startLocked()
		}
	}
	return e.state, true
}
