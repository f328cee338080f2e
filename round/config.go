package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/ketchup/ecs/system"
	"github.com/milk9111/ketchup/prefabs"
)

var ErrInvalidConfig = errors.New("round: invalid config")

// Config holds every tunable of one round. Variants are YAML presets of
// this struct.
type Config struct {
	Variant string
	// Seed drives spawn positions. Zero picks a fresh seed per session.
	Seed uint64

	FieldWidth  float64
	FieldHeight float64

	PlayerWidth   float64
	PlayerHeight  float64
	MoveSpeed     float64
	JumpSpeed     float64
	PlayerGravity float64

	InitialHealth          int
	HealthDecreaseInterval time.Duration
	HealthDecreaseAmount   int
	ScoreTickInterval      time.Duration
	ScoreTickAmount        int

	HazardSpawnInterval  time.Duration
	HazardBandHeight     float64
	MaxHazards           int
	HazardSize           float64
	HazardScale          float64
	HazardGravity        float64
	HazardDamage         int
	AttackDelay          time.Duration
	HazardTTL            time.Duration
	SeekSpeed            float64
	SeekMode             system.SeekMode
	SeekRetargetInterval time.Duration

	PickupSpawnInterval time.Duration
	PickupSize          float64
	PickupBandOffset    float64
	MaxPickups          int
	PickupScore         int
	PickupHeal          int

	DeathEffect   system.DeathEffect
	DeathDuration time.Duration
	DeathEndScale float64

	ShakeIntensity float64
	ShakeDuration  time.Duration

	// WinWhen is a tengo boolean expression over score, health and elapsed
	// (seconds). WinScript names a script under prefabs/scripts that sets
	// won. Both empty means the round can only be lost.
	WinWhen   string
	WinScript string
}

// DefaultConfig is the classic variant.
func DefaultConfig() Config {
	const moveSpeed = 365.0
	return Config{
		Variant:                "classic",
		FieldWidth:             800,
		FieldHeight:            600,
		PlayerWidth:            32,
		PlayerHeight:           48,
		MoveSpeed:              moveSpeed,
		JumpSpeed:              moveSpeed * 1.38,
		PlayerGravity:          400,
		InitialHealth:          100,
		HealthDecreaseInterval: 1800 * time.Millisecond,
		HealthDecreaseAmount:   1,
		ScoreTickInterval:      900 * time.Millisecond,
		ScoreTickAmount:        80,
		HazardSpawnInterval:    800 * time.Millisecond,
		HazardBandHeight:       150,
		HazardSize:             16,
		HazardScale:            1.5,
		HazardDamage:           1,
		AttackDelay:            500 * time.Millisecond,
		HazardTTL:              5000 * time.Millisecond,
		SeekSpeed:              200,
		SeekMode:               system.SeekEveryTick,
		SeekRetargetInterval:   900 * time.Millisecond,
		PickupSpawnInterval:    1500 * time.Millisecond,
		PickupSize:             24,
		PickupBandOffset:       64,
		PickupScore:            10,
		PickupHeal:             1,
		DeathEffect:            system.DeathAnimated,
		DeathDuration:          300 * time.Millisecond,
		DeathEndScale:          5,
		ShakeIntensity:         0.01,
		ShakeDuration:          250 * time.Millisecond,
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// ConfigFromSpec overlays a variant spec on DefaultConfig. Zero values in
// the spec keep the default, except for the optional amounts, where only a
// missing key does.
func ConfigFromSpec(spec prefabs.VariantSpec) Config {
	cfg := DefaultConfig()
	setString(&cfg.Variant, spec.Name)
	if spec.Seed != 0 {
		cfg.Seed = spec.Seed
	}

	setFloat(&cfg.FieldWidth, spec.Field.Width)
	setFloat(&cfg.FieldHeight, spec.Field.Height)

	setFloat(&cfg.PlayerWidth, spec.Player.Width)
	setFloat(&cfg.PlayerHeight, spec.Player.Height)
	if spec.Player.MoveSpeed > 0 {
		cfg.MoveSpeed = spec.Player.MoveSpeed
		cfg.JumpSpeed = spec.Player.MoveSpeed * 1.38
	}
	setFloat(&cfg.JumpSpeed, spec.Player.JumpSpeed)
	setFloat(&cfg.PlayerGravity, spec.Player.Gravity)

	setInt(&cfg.InitialHealth, spec.Round.InitialHealth)
	setDuration(&cfg.HealthDecreaseInterval, spec.Round.HealthDecreaseIntervalMS)
	setOptInt(&cfg.HealthDecreaseAmount, spec.Round.HealthDecreaseAmount)
	setDuration(&cfg.ScoreTickInterval, spec.Round.ScoreTickIntervalMS)
	setOptInt(&cfg.ScoreTickAmount, spec.Round.ScoreTickAmount)
	cfg.WinWhen = spec.Round.WinWhen
	cfg.WinScript = spec.Round.WinScript

	h := spec.Hazard
	setDuration(&cfg.HazardSpawnInterval, h.SpawnIntervalMS)
	setFloat(&cfg.HazardBandHeight, h.BandHeight)
	setInt(&cfg.MaxHazards, h.Max)
	setFloat(&cfg.HazardSize, h.Size)
	setFloat(&cfg.HazardScale, h.Scale)
	setFloat(&cfg.HazardGravity, h.Gravity)
	setInt(&cfg.HazardDamage, h.Damage)
	setDuration(&cfg.AttackDelay, h.AttackDelayMS)
	setDuration(&cfg.HazardTTL, h.TTLMS)
	setFloat(&cfg.SeekSpeed, h.SeekSpeed)
	if h.SeekMode != "" {
		cfg.SeekMode = system.SeekMode(h.SeekMode)
	}
	setDuration(&cfg.SeekRetargetInterval, h.SeekRetargetIntervalMS)

	p := spec.Pickup
	setDuration(&cfg.PickupSpawnInterval, p.SpawnIntervalMS)
	setFloat(&cfg.PickupSize, p.Size)
	setFloat(&cfg.PickupBandOffset, p.BandOffset)
	setInt(&cfg.MaxPickups, p.Max)
	setOptInt(&cfg.PickupScore, p.Score)
	setOptInt(&cfg.PickupHeal, p.Heal)

	if spec.Death.Effect != "" {
		cfg.DeathEffect = system.DeathEffect(spec.Death.Effect)
	}
	setDuration(&cfg.DeathDuration, spec.Death.DurationMS)
	setFloat(&cfg.DeathEndScale, spec.Death.EndScale)

	setFloat(&cfg.ShakeIntensity, spec.Feedback.ShakeIntensity)
	setDuration(&cfg.ShakeDuration, spec.Feedback.ShakeDurationMS)
	return cfg
}

// LoadConfig loads and validates a variant by name.
func LoadConfig(variant string) (Config, error) {
	spec, err := prefabs.LoadVariant(variant)
	if err != nil {
		return Config{}, err
	}
	cfg := ConfigFromSpec(spec)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("round: variant %s: %w", spec.Name, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		invalid("field size %.0fx%.0f must be positive", c.FieldWidth, c.FieldHeight)
	}
	if c.PlayerWidth <= 0 || c.PlayerHeight <= 0 {
		invalid("player size %.0fx%.0f must be positive", c.PlayerWidth, c.PlayerHeight)
	}
	if c.MoveSpeed < 0 || c.JumpSpeed < 0 {
		invalid("player speeds must not be negative")
	}
	if c.InitialHealth <= 0 {
		invalid("initial health %d must be positive", c.InitialHealth)
	}
	if c.HealthDecreaseInterval <= 0 {
		invalid("health decrease interval must be positive")
	}
	if c.HealthDecreaseAmount < 0 || c.ScoreTickAmount < 0 {
		invalid("passive amounts must not be negative")
	}
	if c.ScoreTickInterval <= 0 {
		invalid("score tick interval must be positive")
	}
	if c.HazardSpawnInterval <= 0 || c.PickupSpawnInterval <= 0 {
		invalid("spawn intervals must be positive")
	}
	if c.HazardBandHeight < 0 || c.HazardBandHeight > c.FieldHeight {
		invalid("hazard band height %.0f outside the field", c.HazardBandHeight)
	}
	if c.HazardSize <= 0 || c.HazardScale <= 0 || c.PickupSize <= 0 {
		invalid("entity sizes must be positive")
	}
	if c.PickupSize > c.FieldWidth || c.PickupSize > c.FieldHeight {
		invalid("pickup size %.0f does not fit the field", c.PickupSize)
	}
	if c.MaxHazards < 0 || c.MaxPickups < 0 {
		invalid("spawn caps must not be negative")
	}
	if c.HazardDamage <= 0 {
		invalid("hazard damage %d must be positive", c.HazardDamage)
	}
	if c.AttackDelay < 0 || c.HazardTTL <= 0 {
		invalid("hazard attack delay and ttl must be non-negative and positive")
	}
	if c.SeekSpeed < 0 {
		invalid("seek speed must not be negative")
	}
	switch c.SeekMode {
	case system.SeekEveryTick:
	case system.SeekInterval:
		if c.SeekRetargetInterval <= 0 {
			invalid("seek retarget interval must be positive in interval mode")
		}
	default:
		invalid("unknown seek mode %q", c.SeekMode)
	}
	if c.PickupScore < 0 || c.PickupHeal < 0 {
		invalid("pickup rewards must not be negative")
	}
	switch c.DeathEffect {
	case system.DeathInstant:
	case system.DeathAnimated:
		if c.DeathDuration <= 0 {
			invalid("animated death needs a positive duration")
		}
	default:
		invalid("unknown death effect %q", c.DeathEffect)
	}
	if c.ShakeIntensity < 0 || c.ShakeDuration < 0 {
		invalid("shake parameters must not be negative")
	}
	if c.WinWhen != "" && c.WinScript != "" {
		invalid("set win_when or win_script, not both")
	}
	return errors.Join(errs...)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setOptInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, ms int) {
	if ms != 0 {
		*dst = millis(ms)
	}
}
