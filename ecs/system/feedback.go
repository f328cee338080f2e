package system

import (
	"time"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

const (
	SoundHit    = "hit"
	SoundPickup = "pickup"
	SoundLose   = "lose"
	SoundWin    = "win"
)

// Sounds plays named one-shot sounds.
type Sounds interface {
	Play(name string)
}

// Feedback shakes the view.
type Feedback interface {
	Shake(intensity float64, d time.Duration)
}

// FeedbackSystem drains the tick's events into audio and camera feedback.
// It runs last; nothing after it reads the event queue.
type FeedbackSystem struct {
	sounds         Sounds
	feedback       Feedback
	shakeIntensity float64
	shakeDuration  time.Duration
}

func NewFeedbackSystem(sounds Sounds, feedback Feedback, shakeIntensity float64, shakeDuration time.Duration) *FeedbackSystem {
	return &FeedbackSystem{
		sounds:         sounds,
		feedback:       feedback,
		shakeIntensity: shakeIntensity,
		shakeDuration:  shakeDuration,
	}
}

func (f *FeedbackSystem) Update(w *ecs.World, _ time.Duration) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Kind {
		case ecs.EventHazardHit:
			f.sounds.Play(SoundHit)
			if f.shakeIntensity > 0 && f.shakeDuration > 0 {
				f.feedback.Shake(f.shakeIntensity, f.shakeDuration)
			}
		case ecs.EventPickupTaken:
			f.sounds.Play(SoundPickup)
		case ecs.EventRoundOver:
			round, ok := ecs.Get(w, evt.Entity, component.RoundComponent.Kind())
			if ok && round.Phase == component.PhaseWon {
				f.sounds.Play(SoundWin)
			} else {
				f.sounds.Play(SoundLose)
			}
		}
	}
}
