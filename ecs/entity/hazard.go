package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// HazardParams configures one seeking enemy.
type HazardParams struct {
	X         float64
	Y         float64
	Size      float64
	Scale     float64
	Gravity   float64
	Damage    int
	SpawnedAt time.Duration
}

// NewHazard builds a dormant hazard. Its body is a sensor: hazards pass
// through the field walls and are culled once outside.
func NewHazard(w *ecs.World, p HazardParams) (ecs.Entity, error) {
	if p.Size <= 0 {
		return 0, fmt.Errorf("hazard: invalid size %.1f", p.Size)
	}
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	damage := p.Damage
	if damage <= 0 {
		damage = 1
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HazardTagComponent.Kind(), &component.HazardTag{}); err != nil {
		return 0, fmt.Errorf("hazard: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		SpawnedAt: p.SpawnedAt,
		Damage:    damage,
	}); err != nil {
		return 0, fmt.Errorf("hazard: add hazard: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y, ScaleX: scale, ScaleY: scale}); err != nil {
		return 0, fmt.Errorf("hazard: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("hazard: add velocity: %w", err)
	}
	size := p.Size * scale
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: size, Height: size}); err != nil {
		return 0, fmt.Errorf("hazard: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   size,
		Height:  size,
		Mass:    1,
		Gravity: p.Gravity,
	}); err != nil {
		return 0, fmt.Errorf("hazard: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Kind: component.SpriteHazard}); err != nil {
		return 0, fmt.Errorf("hazard: add sprite: %w", err)
	}
	return e, nil
}
