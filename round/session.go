// Package round wires one playable round: the world, its clock, the
// spawner and the fixed tick order of systems.
package round

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/ketchup/clock"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
	"github.com/milk9111/ketchup/ecs/entity"
	"github.com/milk9111/ketchup/ecs/system"
)

var ErrRoundInProgress = errors.New("round: round already in progress")

type Option func(*Session)

// WithDebug logs dropped timers, culled hazards and skipped spawns.
func WithDebug(debug bool) Option {
	return func(s *Session) {
		s.debug = debug
	}
}

// WithIDGenerator replaces the uuid round IDs, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Session owns the current round. It is driven from a single goroutine:
// Tick, Start and Restart must not be called concurrently.
type Session struct {
	cfg   Config
	ports Ports
	win   *WinRule
	debug bool
	newID func() string
	seed  uint64
	count uint64
	// roundSeed is the seed of the round in progress. A session built with
	// Seed equal to it replays that round's spawns.
	roundSeed uint64

	world        *ecs.World
	clock        *clock.Scheduler
	scheduler    *ecs.Scheduler
	physics      *system.PhysicsSystem
	presentation *system.PresentationSystem
	spawner      *Spawner

	roundEntity ecs.Entity
	player      ecs.Entity
	reported    bool
}

// New validates cfg and compiles its win rule. The session starts in
// NotStarted; call Start to begin the first round.
func New(cfg Config, ports Ports, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	win, err := CompileWinRule(cfg.WinWhen, cfg.WinScript)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		ports: ports.withDefaults(),
		win:   win,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seed = cfg.Seed
	if s.seed == 0 {
		s.seed = rand.Uint64()
	}
	return s, nil
}

// Apply swaps the configuration used by the next round. The round in
// progress keeps its settings.
func (s *Session) Apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	win, err := CompileWinRule(cfg.WinWhen, cfg.WinScript)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.win = win
	if cfg.Seed != 0 && cfg.Seed != s.seed {
		s.seed = cfg.Seed
		s.count = 0
	}
	return nil
}

// Start begins a round. It fails while a round is being played.
func (s *Session) Start() error {
	if s.Phase() == Playing {
		return ErrRoundInProgress
	}
	return s.begin()
}

// Restart tears down whatever round exists and begins a fresh one.
func (s *Session) Restart() error {
	return s.begin()
}

func (s *Session) begin() error {
	s.teardown()

	cfg := s.cfg
	s.roundSeed = s.seed + s.count
	s.count++
	rng := rand.New(rand.NewPCG(s.roundSeed, 0))

	s.world = ecs.NewWorld()
	s.clock = clock.NewScheduler()
	s.clock.SetDebug(s.debug)
	s.reported = false

	roundEntity, err := entity.NewRound(s.world, s.newID(), cfg.InitialHealth)
	if err != nil {
		return fmt.Errorf("round: start: %w", err)
	}
	player, err := entity.NewPlayer(s.world, entity.PlayerParams{
		X:         cfg.FieldWidth / 2,
		Y:         cfg.FieldHeight - cfg.PlayerHeight/2 - 1,
		Width:     cfg.PlayerWidth,
		Height:    cfg.PlayerHeight,
		MoveSpeed: cfg.MoveSpeed,
		JumpSpeed: cfg.JumpSpeed,
		Gravity:   cfg.PlayerGravity,
	})
	if err != nil {
		return fmt.Errorf("round: start: %w", err)
	}
	s.roundEntity = roundEntity
	s.player = player

	reaper := system.NewReaper(s.clock, system.DeathPolicy{
		Effect:     cfg.DeathEffect,
		Duration:   cfg.DeathDuration,
		StartScale: 1,
		EndScale:   cfg.DeathEndScale,
	})
	s.physics = system.NewPhysicsSystem(cfg.FieldWidth, cfg.FieldHeight)
	s.presentation = system.NewPresentationSystem(s.ports.Display, s.ports.Sprites)

	var win system.WinCondition
	if s.win != nil {
		win = s.win
	}
	s.scheduler = ecs.NewScheduler(
		system.NewTimerSystem(s.clock),
		system.NewInputSystem(s.ports.Controls),
		system.NewPlayerControllerSystem(),
		system.NewSeekSystem(cfg.SeekSpeed, cfg.SeekMode, cfg.SeekRetargetInterval),
		s.physics,
		system.NewBoundsSystem(cfg.FieldWidth, cfg.FieldHeight, reaper, s.debug),
		system.NewCollisionSystem(reaper),
		system.NewDyingSystem(reaper),
		system.NewRoundSystem(s.clock, win),
		s.presentation,
		system.NewFeedbackSystem(s.ports.Sounds, s.ports.Feedback, cfg.ShakeIntensity, cfg.ShakeDuration),
	)

	s.startTimers()
	s.spawner = newSpawner(&cfg, s.clock, reaper, rng, s.debug)
	s.spawner.Start()

	log.Printf("round: %s started (variant=%s seed=%d)", s.RoundID(), cfg.Variant, s.roundSeed)
	return nil
}

// startTimers arms the passive health decay and score accrual.
func (s *Session) startTimers() {
	decay := s.cfg.HealthDecreaseAmount
	s.clock.ScheduleRepeating(s.cfg.HealthDecreaseInterval, s.roundEntity, func(w *ecs.World, owner ecs.Entity) {
		if r, ok := ecs.Get(w, owner, component.RoundComponent.Kind()); ok {
			r.Damage(decay)
		}
	})
	accrual := s.cfg.ScoreTickAmount
	s.clock.ScheduleRepeating(s.cfg.ScoreTickInterval, s.roundEntity, func(w *ecs.World, owner ecs.Entity) {
		if r, ok := ecs.Get(w, owner, component.RoundComponent.Kind()); ok {
			r.AddScore(accrual)
		}
	})
}

func (s *Session) teardown() {
	if s.clock != nil {
		s.clock.CancelAll()
	}
	if s.presentation != nil {
		s.presentation.Clear()
	}
	s.world = nil
	s.clock = nil
	s.scheduler = nil
	s.physics = nil
	s.presentation = nil
	s.spawner = nil
	s.roundEntity = 0
	s.player = 0
}

// Tick advances the round by dt. Outside Playing it does nothing.
func (s *Session) Tick(dt time.Duration) {
	if s.Phase() != Playing || dt < 0 {
		return
	}
	s.scheduler.Update(s.world, dt)

	if r := s.round(); r != nil && r.Phase.Terminal() && !s.reported {
		s.reported = true
		log.Printf("round: %s %s (score=%d elapsed=%s)", r.ID, r.Phase, r.Score, r.Elapsed.Truncate(time.Millisecond))
	}
}

func (s *Session) round() *component.Round {
	if s.world == nil {
		return nil
	}
	r, ok := ecs.Get(s.world, s.roundEntity, component.RoundComponent.Kind())
	if !ok {
		return nil
	}
	return r
}

func (s *Session) Phase() Phase {
	if r := s.round(); r != nil {
		return r.Phase
	}
	return NotStarted
}

func (s *Session) Score() int {
	if r := s.round(); r != nil {
		return r.Score
	}
	return 0
}

// Health is the displayed health, never negative.
func (s *Session) Health() int {
	if r := s.round(); r != nil {
		return r.DisplayHealth()
	}
	return 0
}

func (s *Session) MaxHealth() int {
	return s.cfg.InitialHealth
}

func (s *Session) Elapsed() time.Duration {
	if r := s.round(); r != nil {
		return r.Elapsed
	}
	return 0
}

func (s *Session) RoundID() string {
	if r := s.round(); r != nil {
		return r.ID
	}
	return ""
}

// HealthBarWidth scales full by the health fraction.
func (s *Session) HealthBarWidth(full float64) float64 {
	if r := s.round(); r != nil {
		return full * r.HealthFraction()
	}
	return 0
}

func (s *Session) Config() Config {
	return s.cfg
}

// World exposes the current round's world. It is nil before Start.
func (s *Session) World() *ecs.World {
	return s.world
}

func (s *Session) Player() ecs.Entity {
	return s.player
}

// PendingTimers reports how many round timers are armed.
func (s *Session) PendingTimers() int {
	if s.clock == nil {
		return 0
	}
	return s.clock.Len()
}

func (s *Session) Spawner() *Spawner {
	return s.spawner
}

// Seed is the seed of the current round, or of the next one before Start.
// Passing it as Config.Seed to a new session replays the round.
func (s *Session) Seed() uint64 {
	if s.world == nil {
		return s.seed
	}
	return s.roundSeed
}

// Physics is the current round's physics system, for debug overlays.
func (s *Session) Physics() *system.PhysicsSystem {
	return s.physics
}
