package round

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

type Direction = component.Direction

const (
	Left  = component.DirLeft
	Right = component.DirRight
	Up    = component.DirUp
	Down  = component.DirDown
)

type Phase = component.Phase

const (
	NotStarted = component.PhaseNotStarted
	Playing    = component.PhasePlaying
	Lost       = component.PhaseLost
	Won        = component.PhaseWon
)

type SpriteKind = component.SpriteKind

const (
	SpritePlayer    = component.SpritePlayer
	SpriteHazard    = component.SpriteHazard
	SpritePickup    = component.SpritePickup
	SpriteExplosion = component.SpriteExplosion
)

// Controls is the held-direction input, keyboard and touch alike.
type Controls interface {
	IsDown(Direction) bool
}

// Display receives score and health every tick and the final result once.
type Display interface {
	SetScore(score int)
	SetHealth(current, max int)
	RoundOver(phase Phase, score int)
}

// Sprites mirrors entity visuals.
type Sprites interface {
	Spawn(e ecs.Entity, kind SpriteKind, x, y float64)
	Move(e ecs.Entity, x, y, rotation, scale float64)
	Despawn(e ecs.Entity)
}

// Sounds plays fire-and-forget sounds: "hit", "pickup", "lose", "win".
type Sounds interface {
	Play(name string)
}

// Feedback shakes the camera.
type Feedback interface {
	Shake(intensity float64, d time.Duration)
}

// Ports bundles the host collaborators. Nil fields are replaced by no-ops.
type Ports struct {
	Controls Controls
	Display  Display
	Sprites  Sprites
	Sounds   Sounds
	Feedback Feedback
}

func (p Ports) withDefaults() Ports {
	if p.Controls == nil {
		p.Controls = nopPorts{}
	}
	if p.Display == nil {
		p.Display = nopPorts{}
	}
	if p.Sprites == nil {
		p.Sprites = nopPorts{}
	}
	if p.Sounds == nil {
		p.Sounds = nopPorts{}
	}
	if p.Feedback == nil {
		p.Feedback = nopPorts{}
	}
	return p
}

type nopPorts struct{}

func (nopPorts) IsDown(Direction) bool                               { return false }
func (nopPorts) SetScore(int)                                        {}
func (nopPorts) SetHealth(int, int)                                  {}
func (nopPorts) RoundOver(Phase, int)                                {}
func (nopPorts) Spawn(ecs.Entity, SpriteKind, float64, float64)      {}
func (nopPorts) Move(ecs.Entity, float64, float64, float64, float64) {}
func (nopPorts) Despawn(ecs.Entity)                                  {}
func (nopPorts) Play(string)                                         {}
func (nopPorts) Shake(float64, time.Duration)                        {}
