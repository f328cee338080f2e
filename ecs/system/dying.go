package system

import (
	"time"

	"github.com/milk9111/ketchup/common"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// DyingSystem plays the explosion scale tween and removes the entity when
// the window closes.
type DyingSystem struct {
	reaper *Reaper
}

func NewDyingSystem(reaper *Reaper) *DyingSystem {
	return &DyingSystem{reaper: reaper}
}

func (d *DyingSystem) Update(w *ecs.World, dt time.Duration) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.DyingComponent.Kind(), func(e ecs.Entity, dying *component.Dying) {
		dying.Elapsed += dt
		if dying.Elapsed >= dying.Duration {
			d.reaper.Destroy(w, e)
			return
		}

		t := float64(dying.Elapsed) / float64(dying.Duration)
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			scale := common.Lerp(dying.StartScale, dying.EndScale, t)
			tr.ScaleX = scale
			tr.ScaleY = scale
		}
	})
}
