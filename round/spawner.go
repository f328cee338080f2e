package round

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/common"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
	"github.com/milk9111/ketchup/ecs/entity"
	"github.com/milk9111/ketchup/ecs/system"
)

// Spawner materializes hazards and pickups on two independent repeating
// timers. Every hazard owns its attack-delay and TTL one-shots.
type Spawner struct {
	cfg    *Config
	clock  *clock.Scheduler
	reaper *system.Reaper
	rng    *rand.Rand
	debug  bool
}

func newSpawner(cfg *Config, c *clock.Scheduler, reaper *system.Reaper, rng *rand.Rand, debug bool) *Spawner {
	return &Spawner{cfg: cfg, clock: c, reaper: reaper, rng: rng, debug: debug}
}

func (sp *Spawner) Start() {
	sp.clock.ScheduleRepeating(sp.cfg.HazardSpawnInterval, 0, sp.spawnHazard)
	sp.clock.ScheduleRepeating(sp.cfg.PickupSpawnInterval, 0, sp.spawnPickup)
}

// HazardPosition is uniform over the top band [0,W]x[0,band].
func (sp *Spawner) HazardPosition() (x, y float64) {
	x = sp.rng.Float64() * sp.cfg.FieldWidth
	y = sp.rng.Float64() * sp.cfg.HazardBandHeight
	return common.Clamp(x, 0, sp.cfg.FieldWidth), common.Clamp(y, 0, sp.cfg.FieldHeight)
}

// PickupPosition is uniform over the lower band. The band is given for the
// pickup's top-left corner; the returned point is its center.
func (sp *Spawner) PickupPosition() (x, y float64) {
	size := sp.cfg.PickupSize
	minY := sp.cfg.FieldHeight/2 - sp.cfg.PickupBandOffset
	maxY := sp.cfg.FieldHeight - size
	if minY < 0 {
		minY = 0
	}
	if maxY < minY {
		maxY = minY
	}
	left := sp.rng.Float64() * (sp.cfg.FieldWidth - size)
	top := minY + sp.rng.Float64()*(maxY-minY)
	half := size / 2
	return common.Clamp(left+half, half, sp.cfg.FieldWidth-half), common.Clamp(top+half, half, sp.cfg.FieldHeight-half)
}

func (sp *Spawner) spawnHazard(w *ecs.World, _ ecs.Entity) {
	if sp.cfg.MaxHazards > 0 && ecs.Count(w, component.HazardTagComponent.Kind()) >= sp.cfg.MaxHazards {
		if sp.debug {
			log.Printf("spawner: hazard cap %d reached, skipping", sp.cfg.MaxHazards)
		}
		return
	}

	x, y := sp.HazardPosition()
	e, err := entity.NewHazard(w, entity.HazardParams{
		X:         x,
		Y:         y,
		Size:      sp.cfg.HazardSize,
		Scale:     sp.cfg.HazardScale,
		Gravity:   sp.cfg.HazardGravity,
		Damage:    sp.cfg.HazardDamage,
		SpawnedAt: sp.clock.Now(),
	})
	if err != nil {
		log.Printf("spawner: %v", err)
		return
	}

	sp.clock.ScheduleOnce(sp.cfg.AttackDelay, e, activateHazard)
	sp.clock.ScheduleOnce(sp.cfg.HazardTTL, e, sp.expireHazard)
}

func (sp *Spawner) spawnPickup(w *ecs.World, _ ecs.Entity) {
	if sp.cfg.MaxPickups > 0 && ecs.Count(w, component.PickupComponent.Kind()) >= sp.cfg.MaxPickups {
		if sp.debug {
			log.Printf("spawner: pickup cap %d reached, skipping", sp.cfg.MaxPickups)
		}
		return
	}

	x, y := sp.PickupPosition()
	if _, err := entity.NewPickup(w, entity.PickupParams{
		X:     x,
		Y:     y,
		Size:  sp.cfg.PickupSize,
		Score: sp.cfg.PickupScore,
		Heal:  sp.cfg.PickupHeal,
	}); err != nil {
		log.Printf("spawner: %v", err)
	}
}

// activateHazard points the hazard at whichever player is alive now.
func activateHazard(w *ecs.World, hazard ecs.Entity) {
	player, _ := ecs.First(w, component.PlayerTagComponent.Kind())
	system.Activate(w, hazard, player)
}

// expireHazard removes the hazard regardless of pursuit state. Destroying
// it also cancels a still-pending attack timer.
func (sp *Spawner) expireHazard(w *ecs.World, hazard ecs.Entity) {
	if tr, ok := ecs.Get(w, hazard, component.TransformComponent.Kind()); ok {
		w.Events().Push(ecs.Event{Kind: ecs.EventHazardExpired, Entity: hazard, X: tr.X, Y: tr.Y})
	}
	sp.reaper.Destroy(w, hazard)
}
