package system

import (
	"time"

	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// DeathEffect selects what happens to a hazard that hits the player.
type DeathEffect string

const (
	DeathAnimated DeathEffect = "animated"
	DeathInstant  DeathEffect = "instant"
)

type DeathPolicy struct {
	Effect     DeathEffect
	Duration   time.Duration
	StartScale float64
	EndScale   float64
}

// Reaper removes entities together with the timers they own.
type Reaper struct {
	clock  *clock.Scheduler
	policy DeathPolicy
}

func NewReaper(c *clock.Scheduler, policy DeathPolicy) *Reaper {
	if policy.Effect != DeathInstant {
		policy.Effect = DeathAnimated
	}
	if policy.StartScale <= 0 {
		policy.StartScale = 1
	}
	return &Reaper{clock: c, policy: policy}
}

// Destroy cancels every timer owned by e and destroys it.
func (r *Reaper) Destroy(w *ecs.World, e ecs.Entity) bool {
	if r != nil && r.clock != nil {
		r.clock.CancelOwner(e)
	}
	return ecs.DestroyEntity(w, e)
}

// Kill ends a hazard according to the death policy. It reports false for
// entities that are gone or already dying.
func (r *Reaper) Kill(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) || ecs.Has(w, e, component.DyingComponent.Kind()) {
		return false
	}
	if r.policy.Effect == DeathInstant {
		return r.Destroy(w, e)
	}
	return r.startDying(w, e)
}

func (r *Reaper) startDying(w *ecs.World, e ecs.Entity) bool {
	if r.clock != nil {
		r.clock.CancelOwner(e)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Disabled = true
	}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.X, vel.Y = 0, 0
	}
	if hazard, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
		hazard.Following = false
		hazard.Target = 0
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tr.ScaleX = r.policy.StartScale
		tr.ScaleY = r.policy.StartScale
		tr.Rotation = 0
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Kind = component.SpriteExplosion
	}
	err := ecs.Add(w, e, component.DyingComponent.Kind(), &component.Dying{
		Duration:   r.policy.Duration,
		StartScale: r.policy.StartScale,
		EndScale:   r.policy.EndScale,
	})
	return err == nil
}
