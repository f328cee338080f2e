package system

import (
	"testing"
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
	"github.com/milk9111/ketchup/ecs/entity"
)

const ms = time.Millisecond

func newRoundWorld(t *testing.T, health int) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	e, err := entity.NewRound(w, "test", health)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return w, e
}

func mustRound(t *testing.T, w *ecs.World, e ecs.Entity) *component.Round {
	t.Helper()
	r, ok := ecs.Get(w, e, component.RoundComponent.Kind())
	if !ok {
		t.Fatalf("round component missing")
	}
	return r
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayer(w, entity.PlayerParams{
		X: x, Y: y, Width: 32, Height: 32,
		MoveSpeed: 365, JumpSpeed: 365 * 1.38, Gravity: 400,
	})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return e
}

func addHazard(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewHazard(w, entity.HazardParams{X: x, Y: y, Size: 16, Scale: 1.5, Damage: 1})
	if err != nil {
		t.Fatalf("NewHazard: %v", err)
	}
	return e
}

func addPickup(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPickup(w, entity.PickupParams{X: x, Y: y, Size: 24, Score: 10, Heal: 1})
	if err != nil {
		t.Fatalf("NewPickup: %v", err)
	}
	return e
}

type fakeControls map[component.Direction]bool

func (f fakeControls) IsDown(d component.Direction) bool { return f[d] }

type fakeDisplay struct {
	score     int
	health    int
	maxHealth int
	overCalls int
	overPhase component.Phase
	overScore int
}

func (d *fakeDisplay) SetScore(score int) { d.score = score }

func (d *fakeDisplay) SetHealth(current, max int) { d.health, d.maxHealth = current, max }

func (d *fakeDisplay) RoundOver(phase component.Phase, score int) {
	d.overCalls++
	d.overPhase = phase
	d.overScore = score
}

type fakeSprites struct {
	live     map[ecs.Entity]component.SpriteKind
	spawns   int
	despawns int
	moves    int
}

func newFakeSprites() *fakeSprites {
	return &fakeSprites{live: make(map[ecs.Entity]component.SpriteKind)}
}

func (s *fakeSprites) Spawn(e ecs.Entity, kind component.SpriteKind, _, _ float64) {
	s.spawns++
	s.live[e] = kind
}

func (s *fakeSprites) Move(ecs.Entity, float64, float64, float64, float64) { s.moves++ }

func (s *fakeSprites) Despawn(e ecs.Entity) {
	s.despawns++
	delete(s.live, e)
}

type fakeSounds struct{ played []string }

func (s *fakeSounds) Play(name string) { s.played = append(s.played, name) }

type fakeFeedback struct {
	shakes    int
	intensity float64
	duration  time.Duration
}

func (f *fakeFeedback) Shake(intensity float64, d time.Duration) {
	f.shakes++
	f.intensity = intensity
	f.duration = d
}
