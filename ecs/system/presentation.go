package system

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// Display receives the numbers shown on screen. It is write-only.
type Display interface {
	SetScore(score int)
	SetHealth(current, max int)
	RoundOver(phase component.Phase, score int)
}

// Sprites mirrors entity visuals in the host.
type Sprites interface {
	Spawn(e ecs.Entity, kind component.SpriteKind, x, y float64)
	Move(e ecs.Entity, x, y, rotation, scale float64)
	Despawn(e ecs.Entity)
}

// PresentationSystem pushes round numbers and sprite changes to the host.
type PresentationSystem struct {
	display   Display
	sprites   Sprites
	shown     map[ecs.Entity]component.SpriteKind
	announced bool
}

func NewPresentationSystem(display Display, sprites Sprites) *PresentationSystem {
	return &PresentationSystem{
		display: display,
		sprites: sprites,
		shown:   make(map[ecs.Entity]component.SpriteKind),
	}
}

func (p *PresentationSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil {
		return
	}

	if e, ok := ecs.First(w, component.RoundComponent.Kind()); ok {
		round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
		p.display.SetScore(round.Score)
		p.display.SetHealth(round.DisplayHealth(), round.MaxHealth)
		if round.Phase.Terminal() && !p.announced {
			p.announced = true
			p.display.RoundOver(round.Phase, round.Score)
		}
	}

	seen := make(map[ecs.Entity]struct{}, len(p.shown))
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sprite *component.Sprite, tr *component.Transform) {
		seen[e] = struct{}{}
		kind, ok := p.shown[e]
		if ok && kind != sprite.Kind {
			p.sprites.Despawn(e)
			ok = false
		}
		if !ok {
			p.sprites.Spawn(e, sprite.Kind, tr.X, tr.Y)
			p.shown[e] = sprite.Kind
		}
		p.sprites.Move(e, tr.X, tr.Y, tr.Rotation, tr.ScaleX)
	})

	for e := range p.shown {
		if _, ok := seen[e]; ok {
			continue
		}
		p.sprites.Despawn(e)
		delete(p.shown, e)
	}
}

// Clear despawns everything this system has shown. It is used on restart.
func (p *PresentationSystem) Clear() {
	for e := range p.shown {
		p.sprites.Despawn(e)
		delete(p.shown, e)
	}
	p.announced = false
}
