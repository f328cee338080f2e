package system

import (
	"log"
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// BoundsSystem removes hazards that left the field entirely.
type BoundsSystem struct {
	width  float64
	height float64
	reaper *Reaper
	debug  bool
}

func NewBoundsSystem(width, height float64, reaper *Reaper, debug bool) *BoundsSystem {
	return &BoundsSystem{width: width, height: height, reaper: reaper, debug: debug}
}

func (b *BoundsSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.HazardTagComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, _ *component.HazardTag, tr *component.Transform, col *component.Collider) {
			if ecs.Has(w, e, component.DyingComponent.Kind()) {
				return
			}
			halfW, halfH := col.Width/2, col.Height/2
			inside := tr.X+halfW >= 0 && tr.X-halfW <= b.width && tr.Y+halfH >= 0 && tr.Y-halfH <= b.height
			if inside {
				return
			}
			if b.debug {
				log.Printf("bounds: culling hazard %s at (%.1f, %.1f)", e, tr.X, tr.Y)
			}
			w.Events().Push(ecs.Event{Kind: ecs.EventHazardExpired, Entity: e, X: tr.X, Y: tr.Y})
			b.reaper.Destroy(w, e)
		})
}
