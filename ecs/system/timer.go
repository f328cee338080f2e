package system

import (
	"time"

	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/ecs"
)

// TimerSystem advances the round clock, firing spawns, decay, score accrual
// and per-hazard activation/expiry before anything else moves.
type TimerSystem struct {
	clock *clock.Scheduler
}

func NewTimerSystem(c *clock.Scheduler) *TimerSystem {
	return &TimerSystem{clock: c}
}

func (t *TimerSystem) Update(w *ecs.World, dt time.Duration) {
	if t == nil || t.clock == nil || w == nil {
		return
	}
	t.clock.Advance(w, dt)
}
