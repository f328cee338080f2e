package round

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
)

type fakeControls map[Direction]bool

func (f fakeControls) IsDown(d Direction) bool { return f[d] }

type fakeDisplay struct {
	score     int
	health    int
	max       int
	overCalls int
	overPhase Phase
	overScore int
}

func (d *fakeDisplay) SetScore(score int) { d.score = score }

func (d *fakeDisplay) SetHealth(current, max int) { d.health, d.max = current, max }

func (d *fakeDisplay) RoundOver(phase Phase, score int) {
	d.overCalls++
	d.overPhase = phase
	d.overScore = score
}

type fakeSprites struct {
	live map[ecs.Entity]SpriteKind
}

func newFakeSprites() *fakeSprites {
	return &fakeSprites{live: make(map[ecs.Entity]SpriteKind)}
}

func (s *fakeSprites) Spawn(e ecs.Entity, kind SpriteKind, _, _ float64) { s.live[e] = kind }

func (s *fakeSprites) Move(ecs.Entity, float64, float64, float64, float64) {}

func (s *fakeSprites) Despawn(e ecs.Entity) { delete(s.live, e) }

func (s *fakeSprites) count(kind SpriteKind) int {
	n := 0
	for _, k := range s.live {
		if k == kind {
			n++
		}
	}
	return n
}

type fakeSounds struct{ played []string }

func (s *fakeSounds) Play(name string) { s.played = append(s.played, name) }

type fakeFeedback struct{ shakes int }

func (f *fakeFeedback) Shake(float64, time.Duration) { f.shakes++ }
