package entity

import (
	"fmt"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// PlayerParams configures the avatar body.
type PlayerParams struct {
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Scale     float64
	MoveSpeed float64
	JumpSpeed float64
	Gravity   float64
}

func NewPlayer(w *ecs.World, p PlayerParams) (ecs.Entity, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return 0, fmt.Errorf("player: invalid size %.1fx%.1f", p.Width, p.Height)
	}
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: p.MoveSpeed,
		JumpSpeed: p.JumpSpeed,
		Alive:     true,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y, ScaleX: scale, ScaleY: scale}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: p.Width, Height: p.Height}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   p.Width,
		Height:  p.Height,
		Mass:    1,
		Gravity: p.Gravity,
		Solid:   true,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Kind: component.SpritePlayer}); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	return e, nil
}
