package match

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Physics profiles. The flat profile runs the duel on box2d; the lifted
// profile runs the kinematic backend with gravity, where knockback gains an
// out-of-plane component.
const (
	Profile2d = "2d"
	Profile3d = "3d"
)

type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Depth      float64 `yaml:"depth"`
	WallHeight float64 `yaml:"wall_height"`
}

// Config carries everything a match needs besides the two bot definitions.
// Durations are authored in suffixed units, like bot weapon cooldowns.
type Config struct {
	TicksPerSec      int         `yaml:"tps"`
	DurationSec      float64     `yaml:"duration_sec"`
	CountdownSec     float64     `yaml:"countdown_sec"`
	Profile          string      `yaml:"profile"`
	Arena            ArenaConfig `yaml:"arena"`
	MaxHealth        float64     `yaml:"max_health"`
	SpeedScale       float64     `yaml:"speed_scale"`
	BehaviorBudgetMs float64     `yaml:"behavior_budget_ms"`
	Seed             int64       `yaml:"seed"`
	ArchetypesFile   string      `yaml:"archetypes_file"`
}

func DefaultConfig() Config {
	return Config{
		TicksPerSec:      30,
		DurationSec:      90,
		CountdownSec:     3,
		Profile:          Profile2d,
		Arena:            ArenaConfig{Width: 100, Depth: 100, WallHeight: 4},
		MaxHealth:        100,
		SpeedScale:       3,
		BehaviorBudgetMs: 5,
		Seed:             0,
	}
}

// LoadConfigFile reads a yaml config over the defaults; absent keys keep
// their default values.
func LoadConfigFile(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading match config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing match config: %w", err)
	}

	return config, nil
}

func (config Config) validate() error {
	if config.TicksPerSec <= 0 {
		return fmt.Errorf("match config: tps must be positive, got %d", config.TicksPerSec)
	}
	if config.DurationSec <= 0 {
		return fmt.Errorf("match config: duration_sec must be positive, got %v", config.DurationSec)
	}
	if config.CountdownSec < 0 {
		return fmt.Errorf("match config: countdown_sec cannot be negative, got %v", config.CountdownSec)
	}
	if config.Profile != Profile2d && config.Profile != Profile3d {
		return fmt.Errorf("match config: unknown profile %q", config.Profile)
	}
	if config.Arena.Width <= 0 || config.Arena.Depth <= 0 {
		return fmt.Errorf("match config: arena dimensions must be positive, got %vx%v", config.Arena.Width, config.Arena.Depth)
	}
	if config.MaxHealth <= 0 {
		return fmt.Errorf("match config: max_health must be positive, got %v", config.MaxHealth)
	}
	if config.SpeedScale <= 0 {
		return fmt.Errorf("match config: speed_scale must be positive, got %v", config.SpeedScale)
	}
	if config.BehaviorBudgetMs < 0 {
		return fmt.Errorf("match config: behavior_budget_ms cannot be negative, got %v", config.BehaviorBudgetMs)
	}
	return nil
}
