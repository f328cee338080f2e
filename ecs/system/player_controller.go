package system

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// airborneSlowdown is the share of MoveSpeed lost while not on the ground.
const airborneSlowdown = 0.10

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

// Update turns held directions into velocity. Horizontal velocity is reset
// every tick so the avatar stops when nothing is held; left wins over right
// and up over down.
func (p *PlayerControllerSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, vel *component.Velocity) {
			if !player.Alive {
				vel.X = 0
				return
			}

			speed := player.MoveSpeed
			if !player.OnGround {
				speed -= airborneSlowdown * player.MoveSpeed
			}

			vel.X = 0
			switch {
			case input.Left:
				vel.X = -speed
			case input.Right:
				vel.X = speed
			}

			switch {
			case input.Up:
				if player.OnGround {
					vel.Y = -player.JumpSpeed
					player.OnGround = false
				}
			case input.Down:
				vel.Y = player.MoveSpeed
			}
		})
}
