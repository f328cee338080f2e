package system

import (
	"testing"

	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

func TestCollisionHazardHit(t *testing.T) {
	tests := []struct {
		name      string
		effect    DeathEffect
		wantAlive bool
	}{
		{"animated_keeps_dying_entity", DeathAnimated, true},
		{"instant_destroys", DeathInstant, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, re := newRoundWorld(t, 100)
			addPlayer(t, w, 400, 500)
			h := addHazard(t, w, 410, 505)
			clk := clock.NewScheduler()
			clk.ScheduleOnce(5000*ms, h, func(*ecs.World, ecs.Entity) {})

			reaper := NewReaper(clk, DeathPolicy{Effect: tc.effect, Duration: 300 * ms, EndScale: 5})
			collision := NewCollisionSystem(reaper)
			collision.Update(w, 16*ms)

			round := mustRound(t, w, re)
			if round.Health != 99 {
				t.Fatalf("health = %d, want 99", round.Health)
			}
			if got := ecs.IsAlive(w, h); got != tc.wantAlive {
				t.Fatalf("hazard alive = %v, want %v", got, tc.wantAlive)
			}
			if clk.Len() != 0 {
				t.Fatalf("hazard timers should be cancelled, %d pending", clk.Len())
			}
			events := w.Events().Drain()
			if len(events) != 1 || events[0].Kind != ecs.EventHazardHit {
				t.Fatalf("events = %+v, want one hazard hit", events)
			}

			// A dying hazard never hurts again.
			collision.Update(w, 16*ms)
			if round.Health != 99 {
				t.Fatalf("health = %d after second pass, want 99", round.Health)
			}
		})
	}
}

func TestCollisionMissesDistantEntities(t *testing.T) {
	w, re := newRoundWorld(t, 100)
	addPlayer(t, w, 100, 500)
	addHazard(t, w, 600, 100)
	addPickup(t, w, 700, 500)

	NewCollisionSystem(NewReaper(clock.NewScheduler(), DeathPolicy{})).Update(w, 16*ms)

	round := mustRound(t, w, re)
	if round.Health != 100 || round.Score != 0 {
		t.Fatalf("round changed without overlap: %+v", *round)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("unexpected events")
	}
}

func TestCollisionPickup(t *testing.T) {
	t.Run("full_health_does_not_overheal", func(t *testing.T) {
		w, re := newRoundWorld(t, 100)
		addPlayer(t, w, 400, 500)
		pk := addPickup(t, w, 400, 510)

		NewCollisionSystem(NewReaper(clock.NewScheduler(), DeathPolicy{})).Update(w, 16*ms)

		round := mustRound(t, w, re)
		if round.Score != 10 || round.Health != 100 {
			t.Fatalf("score=%d health=%d, want 10 and 100", round.Score, round.Health)
		}
		if ecs.IsAlive(w, pk) {
			t.Fatalf("pickup should be destroyed")
		}
	})

	t.Run("heals_when_hurt", func(t *testing.T) {
		w, re := newRoundWorld(t, 100)
		mustRound(t, w, re).Health = 50
		addPlayer(t, w, 400, 500)
		addPickup(t, w, 400, 510)

		NewCollisionSystem(NewReaper(clock.NewScheduler(), DeathPolicy{})).Update(w, 16*ms)
		if got := mustRound(t, w, re).Health; got != 51 {
			t.Fatalf("health = %d, want 51", got)
		}
	})

	t.Run("same_overlap_twice_scores_once", func(t *testing.T) {
		w, re := newRoundWorld(t, 100)
		p := addPlayer(t, w, 400, 500)
		pk := addPickup(t, w, 400, 510)
		round := mustRound(t, w, re)
		c := NewCollisionSystem(NewReaper(clock.NewScheduler(), DeathPolicy{}))

		playerTr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
		playerCol, _ := ecs.Get(w, p, component.ColliderComponent.Kind())
		pickup, _ := ecs.Get(w, pk, component.PickupComponent.Kind())
		tr, _ := ecs.Get(w, pk, component.TransformComponent.Kind())
		col, _ := ecs.Get(w, pk, component.ColliderComponent.Kind())
		box := boxOf(playerTr, playerCol)

		first := c.collect(w, round, pk, pickup, box, tr, col)
		second := c.collect(w, round, pk, pickup, box, tr, col)
		if !first || second {
			t.Fatalf("collect = %v, %v; want true, false", first, second)
		}
		if round.Score != 10 {
			t.Fatalf("score = %d, want 10", round.Score)
		}
	})
}

func TestCollisionIgnoredWhenRoundOver(t *testing.T) {
	w, re := newRoundWorld(t, 100)
	round := mustRound(t, w, re)
	round.Phase = component.PhaseLost
	addPlayer(t, w, 400, 500)
	addHazard(t, w, 400, 500)
	addPickup(t, w, 400, 500)

	NewCollisionSystem(NewReaper(clock.NewScheduler(), DeathPolicy{})).Update(w, 16*ms)
	if round.Health != 100 || round.Score != 0 {
		t.Fatalf("lost round mutated: %+v", *round)
	}
}
