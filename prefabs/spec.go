package prefabs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownVariant = errors.New("prefabs: unknown variant")

// VariantSpec is the on-disk shape of one game variant. Durations are in
// milliseconds.
type VariantSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Seed        uint64       `yaml:"seed"`
	Field       FieldSpec    `yaml:"field"`
	Player      PlayerSpec   `yaml:"player"`
	Round       RoundSpec    `yaml:"round"`
	Hazard      HazardSpec   `yaml:"hazard"`
	Pickup      PickupSpec   `yaml:"pickup"`
	Death       DeathSpec    `yaml:"death"`
	Feedback    FeedbackSpec `yaml:"feedback"`
}

type FieldSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MoveSpeed float64 `yaml:"move_speed"`
	// JumpSpeed defaults to MoveSpeed * 1.38 when zero.
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
}

// Amount fields are pointers so a variant can set them to 0 and turn the
// mechanic off; omitted keeps the default.
type RoundSpec struct {
	InitialHealth            int    `yaml:"initial_health"`
	HealthDecreaseIntervalMS int    `yaml:"health_decrease_interval_ms"`
	HealthDecreaseAmount     *int   `yaml:"health_decrease_amount"`
	ScoreTickIntervalMS      int    `yaml:"score_tick_interval_ms"`
	ScoreTickAmount          *int   `yaml:"score_tick_amount"`
	WinWhen                  string `yaml:"win_when"`
	WinScript                string `yaml:"win_script"`
}

type HazardSpec struct {
	SpawnIntervalMS        int     `yaml:"spawn_interval_ms"`
	BandHeight             float64 `yaml:"band_height"`
	Max                    int     `yaml:"max"`
	Size                   float64 `yaml:"size"`
	Scale                  float64 `yaml:"scale"`
	Gravity                float64 `yaml:"gravity"`
	Damage                 int     `yaml:"damage"`
	AttackDelayMS          int     `yaml:"attack_delay_ms"`
	TTLMS                  int     `yaml:"ttl_ms"`
	SeekSpeed              float64 `yaml:"seek_speed"`
	SeekMode               string  `yaml:"seek_mode"`
	SeekRetargetIntervalMS int     `yaml:"seek_retarget_interval_ms"`
}

type PickupSpec struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	Size            float64 `yaml:"size"`
	BandOffset      float64 `yaml:"band_offset"`
	Max             int     `yaml:"max"`
	Score           *int    `yaml:"score"`
	Heal            *int    `yaml:"heal"`
}

type DeathSpec struct {
	Effect     string  `yaml:"effect"`
	DurationMS int     `yaml:"duration_ms"`
	EndScale   float64 `yaml:"end_scale"`
}

type FeedbackSpec struct {
	ShakeIntensity  float64 `yaml:"shake_intensity"`
	ShakeDurationMS int     `yaml:"shake_duration_ms"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadVariant loads a variant by name ("classic") or file name
// ("classic.yaml").
func LoadVariant(name string) (VariantSpec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return VariantSpec{}, fmt.Errorf("%w: empty name", ErrUnknownVariant)
	}
	spec, err := LoadSpec[VariantSpec](name)
	if errors.Is(err, fs.ErrNotExist) {
		return VariantSpec{}, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
	}
	if err != nil {
		return VariantSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(path.Base(cleanVariantPath(name)), ".yaml")
	}
	return spec, nil
}

// VariantNames lists the embedded variants.
func VariantNames() []string {
	entries, err := fs.ReadDir(VariantsFS, "variants")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isSpecFile(entry.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}
