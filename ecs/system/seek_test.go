package system

import (
	"math"
	"testing"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

func TestSeekSystem(t *testing.T) {
	t.Run("dormant_keeps_velocity", func(t *testing.T) {
		w := ecs.NewWorld()
		addPlayer(t, w, 400, 500)
		h := addHazard(t, w, 400, 100)
		vel, _ := ecs.Get(w, h, component.VelocityComponent.Kind())
		vel.Y = 12

		NewSeekSystem(200, SeekEveryTick, 0).Update(w, 16*ms)
		if vel.X != 0 || vel.Y != 12 {
			t.Fatalf("dormant hazard velocity changed: %+v", *vel)
		}
	})

	t.Run("pursues_current_position", func(t *testing.T) {
		w := ecs.NewWorld()
		p := addPlayer(t, w, 400, 500)
		h := addHazard(t, w, 400, 100)
		if !Activate(w, h, p) {
			t.Fatalf("Activate should succeed on a dormant hazard")
		}
		if Activate(w, h, p) {
			t.Fatalf("Activate should only succeed once")
		}

		NewSeekSystem(200, SeekEveryTick, 0).Update(w, 16*ms)
		vel, _ := ecs.Get(w, h, component.VelocityComponent.Kind())
		tr, _ := ecs.Get(w, h, component.TransformComponent.Kind())
		if math.Abs(vel.X) > 1e-9 || math.Abs(vel.Y-200) > 1e-9 {
			t.Fatalf("velocity = %+v, want straight down at 200", *vel)
		}
		if math.Abs(tr.Rotation-math.Pi) > 1e-9 {
			t.Fatalf("rotation = %v, want pi", tr.Rotation)
		}

		playerTr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
		playerTr.X, playerTr.Y = 700, 100
		NewSeekSystem(200, SeekEveryTick, 0).Update(w, 16*ms)
		if math.Abs(vel.X-200) > 1e-9 || math.Abs(vel.Y) > 1e-9 {
			t.Fatalf("velocity = %+v, want straight right at 200", *vel)
		}
	})

	t.Run("dead_target_is_skipped", func(t *testing.T) {
		w := ecs.NewWorld()
		p := addPlayer(t, w, 400, 500)
		h := addHazard(t, w, 400, 100)
		Activate(w, h, p)
		vel, _ := ecs.Get(w, h, component.VelocityComponent.Kind())
		vel.X, vel.Y = 3, 4

		ecs.DestroyEntity(w, p)
		// Reuse the slot so a stale handle would alias a live entity.
		addPlayer(t, w, 0, 0)

		NewSeekSystem(200, SeekEveryTick, 0).Update(w, 16*ms)
		if vel.X != 3 || vel.Y != 4 {
			t.Fatalf("seek followed a stale target: %+v", *vel)
		}
	})

	t.Run("interval_mode_reaims_on_schedule", func(t *testing.T) {
		w := ecs.NewWorld()
		p := addPlayer(t, w, 400, 500)
		h := addHazard(t, w, 400, 100)
		Activate(w, h, p)
		seek := NewSeekSystem(200, SeekInterval, 900*ms)
		vel, _ := ecs.Get(w, h, component.VelocityComponent.Kind())

		seek.Update(w, 100*ms)
		if math.Abs(vel.Y-200) > 1e-9 {
			t.Fatalf("first interval update should aim immediately, got %+v", *vel)
		}

		playerTr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
		playerTr.X, playerTr.Y = 700, 100
		for i := 0; i < 8; i++ {
			seek.Update(w, 100*ms)
		}
		if math.Abs(vel.Y-200) > 1e-9 {
			t.Fatalf("re-aimed before the interval elapsed: %+v", *vel)
		}
		seek.Update(w, 100*ms)
		if math.Abs(vel.X-200) > 1e-9 {
			t.Fatalf("did not re-aim after the interval: %+v", *vel)
		}
	})
}
