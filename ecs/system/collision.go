package system

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// CollisionSystem resolves player overlaps with hazards and pickups against
// the transforms synced after the physics step.
type CollisionSystem struct {
	reaper *Reaper
}

func NewCollisionSystem(reaper *Reaper) *CollisionSystem {
	return &CollisionSystem{reaper: reaper}
}

type aabb struct {
	minX, minY, maxX, maxY float64
}

func boxOf(tr *component.Transform, col *component.Collider) aabb {
	return aabb{
		minX: tr.X - col.Width/2,
		minY: tr.Y - col.Height/2,
		maxX: tr.X + col.Width/2,
		maxY: tr.Y + col.Height/2,
	}
}

func (a aabb) overlaps(b aabb) bool {
	return a.minX < b.maxX && a.maxX > b.minX && a.minY < b.maxY && a.maxY > b.minY
}

func (c *CollisionSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil {
		return
	}

	roundEntity, ok := ecs.First(w, component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, roundEntity, component.RoundComponent.Kind())
	if !round.Playing() {
		return
	}

	playerEntity, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, playerEntity, component.PlayerComponent.Kind())
	if !ok || !player.Alive {
		return
	}
	playerTr, ok := ecs.Get(w, playerEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerCol, ok := ecs.Get(w, playerEntity, component.ColliderComponent.Kind())
	if !ok {
		return
	}
	playerBox := boxOf(playerTr, playerCol)

	ecs.ForEach3(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, hazard *component.Hazard, tr *component.Transform, col *component.Collider) {
			if ecs.Has(w, e, component.DyingComponent.Kind()) {
				return
			}
			if !playerBox.overlaps(boxOf(tr, col)) {
				return
			}
			round.Damage(hazard.Damage)
			w.Events().Push(ecs.Event{Kind: ecs.EventHazardHit, Entity: e, X: tr.X, Y: tr.Y})
			c.reaper.Kill(w, e)
		})

	ecs.ForEach3(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, pickup *component.Pickup, tr *component.Transform, col *component.Collider) {
			if !c.collect(w, round, e, pickup, playerBox, tr, col) {
				return
			}
			c.reaper.Destroy(w, e)
		})
}

// collect applies a pickup overlap. The pickup is deactivated before any
// effect is applied, so a repeated overlap in the same tick is ignored.
func (c *CollisionSystem) collect(w *ecs.World, round *component.Round, e ecs.Entity, pickup *component.Pickup, playerBox aabb, tr *component.Transform, col *component.Collider) bool {
	if !pickup.Active || !playerBox.overlaps(boxOf(tr, col)) {
		return false
	}
	pickup.Active = false
	round.AddScore(pickup.Score)
	round.Heal(pickup.Heal)
	w.Events().Push(ecs.Event{Kind: ecs.EventPickupTaken, Entity: e, X: tr.X, Y: tr.Y})
	return true
}
