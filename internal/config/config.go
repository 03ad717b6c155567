package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/nshapes/internal/game"
)

// Config is the top-level YAML structure of a game configuration file.
type Config struct {
	Round       Round       `yaml:"round" json:"round"`
	Weapons     []Weapon    `yaml:"weapons" json:"weapons"`
	Progression Progression `yaml:"progression" json:"progression"`
	Seed        int64       `yaml:"seed" json:"seed"` // 0 for random
	ForcedEnemy string      `yaml:"forced_enemy" json:"forced_enemy"`
}

// Round holds the per-round tuning knobs.
type Round struct {
	DurationSeconds int `yaml:"duration_seconds" json:"duration_seconds"`
	TargetScore     int `yaml:"target_score" json:"target_score"`
	BoardSize       int `yaml:"board_size" json:"board_size"`
	TickIntervalMs  int `yaml:"tick_interval_ms" json:"tick_interval_ms"`
	ScorePerMatch   int `yaml:"score_per_match" json:"score_per_match"`
	Hints           int `yaml:"hints" json:"hints"`
	Graces          int `yaml:"graces" json:"graces"`
}

// TickInterval returns the scheduler cadence as a duration.
func (r Round) TickInterval() time.Duration {
	return time.Duration(r.TickIntervalMs) * time.Millisecond
}

// Weapon is one entry of the player's loadout.
type Weapon struct {
	Type   game.WeaponType `yaml:"type" json:"type"`
	Chance float64         `yaml:"chance" json:"chance"` // trigger chance per valid match
}

// Progression lists the enemy tier for every stage of a run.
type Progression struct {
	Tiers []int `yaml:"tiers" json:"tiers"`
}

// Stages returns the number of stages in a run.
func (p Progression) Stages() int {
	return len(p.Tiers)
}

// TierFor returns the tier for a 1-indexed stage, clamped to the last stage.
func (p Progression) TierFor(stage int) int {
	if len(p.Tiers) == 0 {
		return 1
	}
	if stage < 1 {
		stage = 1
	}
	if stage > len(p.Tiers) {
		stage = len(p.Tiers)
	}
	return p.Tiers[stage-1]
}

// Default returns a playable configuration.
func Default() Config {
	return Config{
		Round: Round{
			DurationSeconds: 90,
			TargetScore:     100,
			BoardSize:       game.DefaultBoardSize,
			TickIntervalMs:  1000,
			ScorePerMatch:   10,
			Hints:           3,
			Graces:          2,
		},
		Weapons: []Weapon{
			{Type: game.WeaponExplosive, Chance: 0.15},
			{Type: game.WeaponHint, Chance: 0.2},
			{Type: game.WeaponTimeFreeze, Chance: 0.1},
		},
		Progression: Progression{Tiers: []int{1, 1, 2, 2, 3, 3, 4}},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations a round cannot run with.
func (c Config) Validate() error {
	r := c.Round
	if r.DurationSeconds <= 0 {
		return errors.Errorf("round.duration_seconds must be > 0, got %d", r.DurationSeconds)
	}
	if r.BoardSize < game.MatchSize {
		return errors.Errorf("round.board_size must be >= %d, got %d", game.MatchSize, r.BoardSize)
	}
	if r.TickIntervalMs <= 0 {
		return errors.Errorf("round.tick_interval_ms must be > 0, got %d", r.TickIntervalMs)
	}
	if r.TargetScore < 0 || r.ScorePerMatch < 0 || r.Hints < 0 || r.Graces < 0 {
		return errors.New("round values must not be negative")
	}
	for i, w := range c.Weapons {
		if !w.Type.IsValid() {
			return errors.Errorf("weapons[%d]: unknown weapon type %q", i, w.Type)
		}
		if w.Chance < 0 || w.Chance > 1 {
			return errors.Errorf("weapons[%d]: chance must be within [0, 1], got %v", i, w.Chance)
		}
	}
	for i, t := range c.Progression.Tiers {
		if t < 1 || t > 4 {
			return errors.Errorf("progression.tiers[%d]: tier must be 1-4, got %d", i, t)
		}
	}
	return nil
}
