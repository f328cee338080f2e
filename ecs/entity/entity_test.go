package entity

import (
	"testing"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

func TestNewPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w, PlayerParams{X: 400, Y: 575, Width: 32, Height: 48, MoveSpeed: 365, JumpSpeed: 500, Gravity: 400})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("expected player tag")
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || !p.Alive || p.MoveSpeed != 365 {
		t.Fatalf("unexpected player %+v", p)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || !body.Solid || body.Gravity != 400 {
		t.Fatalf("unexpected body %+v", body)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.ScaleX != 1 {
		t.Fatalf("expected default scale 1, got %v", tr.ScaleX)
	}
}

func TestNewHazard(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewHazard(w, HazardParams{X: 10, Y: 20, Size: 16, Scale: 1.5})
	if err != nil {
		t.Fatalf("NewHazard: %v", err)
	}
	h, ok := ecs.Get(w, e, component.HazardComponent.Kind())
	if !ok || h.Following || h.Damage != 1 {
		t.Fatalf("unexpected hazard %+v", h)
	}
	col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	if col.Width != 24 || col.Height != 24 {
		t.Fatalf("collider = %vx%v, want 24x24", col.Width, col.Height)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Solid {
		t.Fatalf("hazard body should be a sensor")
	}
}

func TestNewPickup(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPickup(w, PickupParams{X: 100, Y: 500, Size: 24, Score: 10, Heal: 1})
	if err != nil {
		t.Fatalf("NewPickup: %v", err)
	}
	p, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok || !p.Active || p.Score != 10 || p.Heal != 1 {
		t.Fatalf("unexpected pickup %+v", p)
	}
	if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("pickups should not carry a body")
	}
}

func TestBuildersRejectInvalidSize(t *testing.T) {
	w := ecs.NewWorld()
	tests := []struct {
		name  string
		build func() error
	}{
		{"player", func() error { _, err := NewPlayer(w, PlayerParams{Width: 0, Height: 48}); return err }},
		{"hazard", func() error { _, err := NewHazard(w, HazardParams{Size: -1}); return err }},
		{"pickup", func() error { _, err := NewPickup(w, PickupParams{}); return err }},
		{"round", func() error { _, err := NewRound(w, "r", 0); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.build(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewRoundSingleton(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewRound(w, "round-1", 100)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	r, _ := ecs.Get(w, e, component.RoundComponent.Kind())
	if r.Phase != component.PhasePlaying || r.Health != 100 || r.ID != "round-1" {
		t.Fatalf("unexpected round %+v", r)
	}
	if _, err := NewRound(w, "round-2", 100); err == nil {
		t.Fatalf("expected error for second round")
	}
}
