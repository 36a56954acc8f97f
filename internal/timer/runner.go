package timer

import (
	"context"
	"time"
)

// DefaultInterval is the tick period used by Runner.
const DefaultInterval = 200 * time.Millisecond

// TickFunc observes the engine after every tick.
type TickFunc func(state State, expired bool)

// Runner drives an Engine from a ticker until its context is cancelled.
type Runner struct {
	engine   *Engine
	interval time.Duration
	onTick   TickFunc
}

// NewRunner creates a runner ticking every interval. A non-positive
// interval uses DefaultInterval.
func NewRunner(engine *Engine, interval time.Duration, onTick TickFunc) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{engine: engine, interval: interval, onTick: onTick}
}

// Run ticks the engine until ctx is done. Ticks may be coalesced by the
// scheduler; the engine is unaffected because it reads the wall clock.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			state, expired := r.engine.Tick()
			if r.onTick != nil {
				r.onTick(state, expired)
			}
		}
	}
}

// RunUntilExpiry ticks until one interval ends or ctx is done.
func (r *Runner) RunUntilExpiry(ctx context.Context) (State, error) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.engine.State(), ctx.Err()
		case <-ticker.C:
			state, expired := r.engine.Tick()
			if r.onTick != nil {
				r.onTick(state, expired)
			}
			if expired {
				return state, nil
			}
		}
	}
}
