package system

import (
	"log"
	"time"

	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// WinCondition decides whether a round in progress has been won.
type WinCondition interface {
	Met(score, health int, elapsed time.Duration) (bool, error)
}

// RoundSystem evaluates termination once per tick, after timers and
// collisions have applied their effects. Loss is checked before the win
// condition.
type RoundSystem struct {
	clock *clock.Scheduler
	win   WinCondition
}

func NewRoundSystem(c *clock.Scheduler, win WinCondition) *RoundSystem {
	return &RoundSystem{clock: c, win: win}
}

func (r *RoundSystem) Update(w *ecs.World, dt time.Duration) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
	if !round.Playing() {
		return
	}
	round.Elapsed += dt

	if round.Health <= 0 {
		r.end(w, e, round, component.PhaseLost)
		return
	}

	if r.win == nil {
		return
	}
	won, err := r.win.Met(round.Score, round.Health, round.Elapsed)
	if err != nil {
		log.Printf("round: win condition disabled: %v", err)
		r.win = nil
		return
	}
	if won {
		r.end(w, e, round, component.PhaseWon)
	}
}

func (r *RoundSystem) end(w *ecs.World, e ecs.Entity, round *component.Round, phase component.Phase) {
	round.Phase = phase
	if round.Health < 0 {
		round.Health = 0
	}
	if r.clock != nil {
		r.clock.CancelAll()
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, player *component.Player, vel *component.Velocity) {
		player.Alive = false
		vel.X, vel.Y = 0, 0
	})

	w.Events().Push(ecs.Event{Kind: ecs.EventRoundOver, Entity: e})
}
