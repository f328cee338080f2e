package entity

import (
	"fmt"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

type PickupParams struct {
	X     float64
	Y     float64
	Size  float64
	Score int
	Heal  int
}

// NewPickup builds a static collectible. Pickups never move, so they carry
// no physics body.
func NewPickup(w *ecs.World, p PickupParams) (ecs.Entity, error) {
	if p.Size <= 0 {
		return 0, fmt.Errorf("pickup: invalid size %.1f", p.Size)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Score: p.Score, Heal: p.Heal, Active: true}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: p.Size, Height: p.Size}); err != nil {
		return 0, fmt.Errorf("pickup: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Kind: component.SpritePickup}); err != nil {
		return 0, fmt.Errorf("pickup: add sprite: %w", err)
	}
	return e, nil
}
