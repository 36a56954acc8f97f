package timer

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(clock Clock) *Engine {
	return NewEngine(Config{FocusMinutes: 25, BreakMinutes: 5, Clock: clock})
}

// =============================================================================
// Engine Tests
// =============================================================================

func TestNewEngine(t *testing.T) {
	e := NewEngine(Config{})
	st := e.State()
	assert.Equal(t, ModeFocus, st.Mode)
	assert.False(t, st.Running)
	assert.Equal(t, 25*time.Minute, st.Remaining)
	assert.Equal(t, 25*time.Minute, st.Total)
	assert.Equal(t, DefaultBreakMinutes, e.Minutes(ModeBreak))
}

func TestEngineExpirySwitchesToBreak(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	var ended []Mode
	var lengths []time.Duration
	e.OnExpire(func(m Mode, length time.Duration) {
		ended = append(ended, m)
		lengths = append(lengths, length)
	})

	e.Start()
	clock.Advance(25 * time.Minute)
	st, expired := e.Tick()

	assert.True(t, expired)
	assert.False(t, st.Running)
	assert.Equal(t, ModeBreak, st.Mode)
	assert.Equal(t, 5*time.Minute, st.Remaining)
	assert.Equal(t, []Mode{ModeFocus}, ended)
	assert.Equal(t, []time.Duration{25 * time.Minute}, lengths)
}

func TestEngineExpiryClampsToZero(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(Config{FocusMinutes: 25, Clock: clock, Policy: PolicyStop})

	e.Start()
	clock.Advance(40 * time.Minute)
	st, expired := e.Tick()

	assert.True(t, expired)
	assert.False(t, st.Running)
	assert.Equal(t, time.Duration(0), st.Remaining)
	assert.Equal(t, ModeFocus, st.Mode)

	// Further ticks do not fire again.
	_, expired = e.Tick()
	assert.False(t, expired)
}

func TestEnginePauseDoesNotCountDown(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	e.Start()
	clock.Advance(10 * time.Minute)
	e.Pause()
	clock.Advance(5 * time.Minute)
	e.Start()

	st, expired := e.Tick()
	assert.False(t, expired)
	assert.True(t, st.Running)
	assert.Equal(t, 15*time.Minute, st.Remaining)
}

func TestEngineSkippedTicksDoNotDrift(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)
	e.Start()

	// Irregular tick spacing still lands on the wall clock.
	for _, step := range []time.Duration{time.Second, 3 * time.Minute, 17 * time.Millisecond, 90 * time.Second} {
		clock.Advance(step)
		e.Tick()
	}
	elapsed := time.Second + 3*time.Minute + 17*time.Millisecond + 90*time.Second
	assert.Equal(t, 25*time.Minute-elapsed, e.State().Remaining)
}

func TestEngineStartWhileRunningIsNoop(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	e.Start()
	clock.Advance(time.Minute)
	e.Start()
	st, _ := e.Tick()
	assert.Equal(t, 24*time.Minute, st.Remaining)
}

func TestEngineReset(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	e.Start()
	clock.Advance(7 * time.Minute)
	e.Tick()
	e.Reset()

	st := e.State()
	assert.False(t, st.Running)
	assert.Equal(t, 25*time.Minute, st.Remaining)
}

func TestEngineSetDuration(t *testing.T) {
	t.Run("idle_current_mode_refills", func(t *testing.T) {
		e := newTestEngine(newFakeClock())
		assert.Equal(t, 50, e.SetDuration(ModeFocus, 50))
		assert.Equal(t, 50*time.Minute, e.State().Remaining)
		assert.Equal(t, 50*time.Minute, e.State().Total)
	})

	t.Run("other_mode_only_configures", func(t *testing.T) {
		e := newTestEngine(newFakeClock())
		e.SetDuration(ModeBreak, 10)
		assert.Equal(t, 25*time.Minute, e.State().Remaining)
		e.SwitchMode(ModeBreak)
		assert.Equal(t, 10*time.Minute, e.State().Remaining)
	})

	t.Run("running_keeps_countdown", func(t *testing.T) {
		clock := newFakeClock()
		e := newTestEngine(clock)
		e.Start()
		e.SetDuration(ModeFocus, 50)
		clock.Advance(time.Minute)
		st, _ := e.Tick()
		assert.Equal(t, 24*time.Minute, st.Remaining)
		assert.Equal(t, 50, e.Minutes(ModeFocus))
	})

	t.Run("below_one_clamps_to_last_valid", func(t *testing.T) {
		e := newTestEngine(newFakeClock())
		e.SetDuration(ModeFocus, 30)
		assert.Equal(t, 30, e.SetDuration(ModeFocus, 0))
		assert.Equal(t, 30, e.SetDuration(ModeFocus, -5))
		assert.Equal(t, 30*time.Minute, e.State().Total)
	})
}

func TestEngineSwitchMode(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	e.Start()
	clock.Advance(3 * time.Minute)
	e.SwitchMode(ModeBreak)

	st := e.State()
	assert.False(t, st.Running)
	assert.Equal(t, ModeBreak, st.Mode)
	assert.Equal(t, 5*time.Minute, st.Remaining)
}

func TestEngineAmbientSoundResetsAroundBreak(t *testing.T) {
	e := newTestEngine(newFakeClock())

	e.SetAmbientSound(true)
	e.SwitchMode(ModeFocus)
	assert.True(t, e.AmbientSound(), "focus to focus keeps the toggle")

	e.SwitchMode(ModeBreak)
	assert.False(t, e.AmbientSound())

	e.SetAmbientSound(true)
	e.SwitchMode(ModeFocus)
	assert.False(t, e.AmbientSound())
}

func TestEngineAutoStartPolicy(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(Config{FocusMinutes: 25, BreakMinutes: 5, Clock: clock, Policy: PolicySwitchAndStart})

	e.Start()
	clock.Advance(25 * time.Minute)
	st, expired := e.Tick()
	require.True(t, expired)
	assert.True(t, st.Running)
	assert.Equal(t, ModeBreak, st.Mode)

	clock.Advance(5 * time.Minute)
	st, expired = e.Tick()
	require.True(t, expired)
	assert.Equal(t, ModeFocus, st.Mode)
	assert.True(t, st.Running)
}

func TestEngineCallbackMayDriveEngine(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)
	e.OnExpire(func(Mode, time.Duration) {
		e.SwitchMode(ModeFocus)
	})

	e.Start()
	clock.Advance(25 * time.Minute)
	st, expired := e.Tick()
	assert.True(t, expired)
	assert.Equal(t, ModeFocus, st.Mode)
	assert.Equal(t, 25*time.Minute, st.Remaining)
}

func TestEngineToggle(t *testing.T) {
	e := newTestEngine(newFakeClock())
	e.Toggle()
	assert.True(t, e.State().Running)
	e.Toggle()
	assert.False(t, e.State().Running)
}

func TestStateProgress(t *testing.T) {
	assert.Equal(t, 0.0, State{}.Progress())
	assert.InDelta(t, 0.4, State{Remaining: 15 * time.Minute, Total: 25 * time.Minute}.Progress(), 1e-9)
	assert.Equal(t, 1.0, State{Remaining: 0, Total: time.Minute}.Progress())
	assert.Equal(t, 10*time.Minute, State{Remaining: 15 * time.Minute, Total: 25 * time.Minute}.Elapsed())
}

// =============================================================================
// Runner Tests
// =============================================================================

func TestRunnerStopsOnCancel(t *testing.T) {
	e := newTestEngine(newFakeClock())
	ctx, cancel := context.WithCancel(context.Background())

	var ticks int
	var mu sync.Mutex
	r := NewRunner(e, time.Millisecond, func(State, bool) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
	mu.Lock()
	assert.Greater(t, ticks, 0)
	mu.Unlock()
}

func TestRunnerUntilExpiry(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)
	e.Start()
	clock.Advance(26 * time.Minute)

	r := NewRunner(e, time.Millisecond, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	st, err := r.RunUntilExpiry(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModeBreak, st.Mode)
}

// =============================================================================
// Display Tests
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{25 * time.Minute, "25:00"},
		{90 * time.Second, "01:30"},
		{1500 * time.Millisecond, "00:02"},
		{time.Hour + 5*time.Minute + 9*time.Second, "01:05:09"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.d))
		})
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := RenderProgressBar(0.5, 10)
	assert.Equal(t, "[█████░░░░░] 50%", bar)
	assert.Equal(t, "[░░░░] 0%", RenderProgressBar(-1, 4))
}

func TestCountdownDisplayRenderTimer(t *testing.T) {
	cd := &CountdownDisplay{UseColor: false, BarWidth: 10}

	running := cd.RenderTimer(State{Mode: ModeFocus, Running: true, Remaining: 15 * time.Minute, Total: 25 * time.Minute}, "Write tests")
	assert.Contains(t, running, "FOCUS")
	assert.Contains(t, running, "Write tests")
	assert.Contains(t, running, "15:00")
	assert.Contains(t, running, "40%")
	assert.Contains(t, running, "SPACE to pause")

	paused := cd.RenderTimer(State{Mode: ModeBreak, Remaining: 5 * time.Minute, Total: 5 * time.Minute}, "Write tests")
	assert.Contains(t, paused, "BREAK")
	assert.NotContains(t, paused, "Write tests")
	assert.Contains(t, paused, "[PAUSED]")
}

func TestCountdownDisplayOutput(t *testing.T) {
	var buf bytes.Buffer
	cd := &CountdownDisplay{Writer: &buf, BarWidth: 4}

	cd.Print(cd.RenderLine(State{Mode: ModeFocus, Remaining: time.Minute, Total: 2 * time.Minute}))
	assert.True(t, strings.HasPrefix(buf.String(), "FOCUS 01:00 [██░░] 50%"))

	buf.Reset()
	cd.ClearScreen()
	assert.Equal(t, "\033[H\033[2J", buf.String())

	assert.Contains(t, cd.RenderComplete(ModeFocus, ModeBreak), "Next up: BREAK")
	assert.Contains(t, cd.RenderComplete(ModeBreak, ModeBreak), "Break is over")
}
