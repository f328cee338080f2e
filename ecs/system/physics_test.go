package system

import (
	"testing"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

func TestPhysicsPlayerLandsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, 400, 400)
	ps := NewPhysicsSystem(800, 600)

	for i := 0; i < 180; i++ {
		ps.Update(w, 16*ms)
	}

	tr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
	if tr.Y < 570 || tr.Y > 590 {
		t.Fatalf("player y = %.2f, want resting on the floor near 584", tr.Y)
	}
	player, _ := ecs.Get(w, p, component.PlayerComponent.Kind())
	if !player.OnGround {
		t.Fatalf("player should be grounded")
	}
}

func TestPhysicsHazardLeavesField(t *testing.T) {
	w := ecs.NewWorld()
	h := addHazard(t, w, 400, 580)
	vel, _ := ecs.Get(w, h, component.VelocityComponent.Kind())
	vel.Y = 200
	ps := NewPhysicsSystem(800, 600)

	for i := 0; i < 30; i++ {
		ps.Update(w, 16*ms)
	}

	tr, _ := ecs.Get(w, h, component.TransformComponent.Kind())
	if tr.Y <= 600 {
		t.Fatalf("hazard y = %.2f, want past the floor", tr.Y)
	}
}

func TestPhysicsSensorFollowsSolid(t *testing.T) {
	w, _ := newRoundWorld(t, 100)
	p := addPlayer(t, w, 400, 400)
	h := addHazard(t, w, 200, 200)

	ps := NewPhysicsSystem(800, 600)
	ps.Update(w, 16*ms)

	tests := []struct {
		name       string
		e          ecs.Entity
		wantSensor bool
	}{
		{"player", p, false},
		{"hazard", h, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, ok := ecs.Get(w, tc.e, component.PhysicsBodyComponent.Kind())
			if !ok || body.Shape == nil {
				t.Fatalf("expected a shape after the first step")
			}
			if got := body.Shape.Sensor(); got != tc.wantSensor {
				t.Fatalf("sensor = %v, want %v", got, tc.wantSensor)
			}
		})
	}
}

func TestPhysicsRemovesBodies(t *testing.T) {
	w := ecs.NewWorld()
	a := addHazard(t, w, 100, 100)
	b := addHazard(t, w, 200, 100)
	ps := NewPhysicsSystem(800, 600)
	ps.Update(w, 16*ms)
	if ps.BodyCount() != 2 {
		t.Fatalf("bodies = %d, want 2", ps.BodyCount())
	}

	ecs.DestroyEntity(w, a)
	body, _ := ecs.Get(w, b, component.PhysicsBodyComponent.Kind())
	body.Disabled = true
	ps.Update(w, 16*ms)
	if ps.BodyCount() != 0 {
		t.Fatalf("bodies = %d, want 0", ps.BodyCount())
	}
	if body.Body != nil {
		t.Fatalf("disabled body pointer should be cleared")
	}
}

func TestBoundsSystemCullsOutsideHazards(t *testing.T) {
	w := ecs.NewWorld()
	inside := addHazard(t, w, 400, 10)
	edge := addHazard(t, w, -5, 100)
	outside := addHazard(t, w, 400, 700)

	NewBoundsSystem(800, 600, NewReaper(nil, DeathPolicy{}), true).Update(w, 16*ms)

	if !ecs.IsAlive(w, inside) || !ecs.IsAlive(w, edge) {
		t.Fatalf("hazards overlapping the field should stay")
	}
	if ecs.IsAlive(w, outside) {
		t.Fatalf("hazard outside the field should be culled")
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Kind != ecs.EventHazardExpired || events[0].Entity != outside {
		t.Fatalf("events = %+v", events)
	}
}
