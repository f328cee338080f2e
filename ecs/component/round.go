package component

import "time"

// Phase is the round state machine position.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhaseLost
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlaying:
		return "playing"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen this round.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}

// Round is the singleton health/score economy of one round. Every mutator
// is a no-op outside PhasePlaying, which is what makes loss one-way.
type Round struct {
	ID        string
	Phase     Phase
	Health    int
	MaxHealth int
	Score     int
	Elapsed   time.Duration
}

var RoundComponent = NewComponent[Round]()

func (r *Round) Playing() bool {
	return r != nil && r.Phase == PhasePlaying
}

// Damage subtracts n. Health may dip to or below zero here; that is the loss
// trigger and it is clamped when the round system ends the round.
func (r *Round) Damage(n int) {
	if !r.Playing() || n <= 0 {
		return
	}
	r.Health -= n
}

// Heal adds n, clamped to MaxHealth.
func (r *Round) Heal(n int) {
	if !r.Playing() || n <= 0 {
		return
	}
	r.Health += n
	if r.Health > r.MaxHealth {
		r.Health = r.MaxHealth
	}
}

func (r *Round) AddScore(n int) {
	if !r.Playing() || n <= 0 {
		return
	}
	r.Score += n
}

// DisplayHealth is Health clamped to [0, MaxHealth].
func (r *Round) DisplayHealth() int {
	if r == nil {
		return 0
	}
	switch {
	case r.Health < 0:
		return 0
	case r.Health > r.MaxHealth:
		return r.MaxHealth
	default:
		return r.Health
	}
}

// HealthFraction is the health bar fill ratio.
func (r *Round) HealthFraction() float64 {
	if r == nil || r.MaxHealth <= 0 {
		return 0
	}
	return float64(r.DisplayHealth()) / float64(r.MaxHealth)
}
