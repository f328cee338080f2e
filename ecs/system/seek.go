package system

import (
	"math"
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// SeekMode selects how often a pursuing hazard re-aims.
type SeekMode string

const (
	// SeekEveryTick recomputes the heading toward the target every tick.
	SeekEveryTick SeekMode = "tick"
	// SeekInterval recomputes the heading every retarget interval and keeps
	// the previous velocity in between.
	SeekInterval SeekMode = "interval"
)

type SeekSystem struct {
	speed    float64
	mode     SeekMode
	interval time.Duration
}

func NewSeekSystem(speed float64, mode SeekMode, interval time.Duration) *SeekSystem {
	if mode != SeekInterval {
		mode = SeekEveryTick
	}
	return &SeekSystem{speed: speed, mode: mode, interval: interval}
}

func (s *SeekSystem) Update(w *ecs.World, dt time.Duration) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, hazard *component.Hazard, tr *component.Transform, vel *component.Velocity) {
			if !hazard.Following || ecs.Has(w, e, component.DyingComponent.Kind()) {
				return
			}

			target := ecs.Entity(hazard.Target)
			if !ecs.IsAlive(w, target) {
				return
			}
			targetTr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
			if !ok {
				return
			}

			if s.mode == SeekInterval {
				hazard.RetargetIn -= dt
				if hazard.RetargetIn > 0 {
					return
				}
				hazard.RetargetIn = s.interval
			}

			angle := math.Atan2(targetTr.Y-tr.Y, targetTr.X-tr.X)
			vel.X = math.Cos(angle) * s.speed
			vel.Y = math.Sin(angle) * s.speed
			tr.Rotation = angle + math.Pi/2
		})
}

// Activate switches a dormant hazard to pursuit of target. It is the body of
// the attack-delay timer and is a no-op for dying hazards.
func Activate(w *ecs.World, hazardEntity, target ecs.Entity) bool {
	hazard, ok := ecs.Get(w, hazardEntity, component.HazardComponent.Kind())
	if !ok || hazard.Following || ecs.Has(w, hazardEntity, component.DyingComponent.Kind()) {
		return false
	}
	hazard.Following = true
	hazard.Target = uint64(target)
	hazard.RetargetIn = 0
	return true
}
