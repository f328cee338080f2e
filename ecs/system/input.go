package system

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// Controls reports whether a direction is held, from keyboard or touch.
type Controls interface {
	IsDown(component.Direction) bool
}

type InputSystem struct {
	controls Controls
}

func NewInputSystem(controls Controls) *InputSystem {
	return &InputSystem{controls: controls}
}

func (i *InputSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil || i.controls == nil {
		return
	}

	left := i.controls.IsDown(component.DirLeft)
	right := i.controls.IsDown(component.DirRight)
	up := i.controls.IsDown(component.DirUp)
	down := i.controls.IsDown(component.DirDown)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Left = left
		input.Right = right
		input.Up = up
		input.Down = down
	})
}
