package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/nshapes/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 90, cfg.Round.DurationSeconds)
	assert.Equal(t, game.DefaultBoardSize, cfg.Round.BoardSize)
	assert.Equal(t, 7, cfg.Progression.Stages())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
round:
  duration_seconds: 60
  target_score: 150
weapons:
  - type: laser
    chance: 0.3
seed: 42
forced_enemy: Nightmare Squid
`))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Round.DurationSeconds)
	assert.Equal(t, 150, cfg.Round.TargetScore)
	assert.Equal(t, 10, cfg.Round.ScorePerMatch, "unset keys keep defaults")
	assert.Equal(t, 1000, cfg.Round.TickIntervalMs)
	require.Len(t, cfg.Weapons, 1)
	assert.Equal(t, game.WeaponLaser, cfg.Weapons[0].Type)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "Nightmare Squid", cfg.ForcedEnemy)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "round: [",
		"zero duration":  "round:\n  duration_seconds: 0\n",
		"small board":    "round:\n  board_size: 2\n",
		"zero tick":      "round:\n  tick_interval_ms: 0\n",
		"negative hints": "round:\n  hints: -1\n",
		"unknown weapon": "weapons:\n  - type: slingshot\n    chance: 0.1\n",
		"chance above 1": "weapons:\n  - type: fire\n    chance: 1.5\n",
		"tier out range": "progression:\n  tiers: [1, 5]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("round:\n  graces: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Round.Graces)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTierFor(t *testing.T) {
	p := Progression{Tiers: []int{1, 2, 4}}
	assert.Equal(t, 1, p.TierFor(0))
	assert.Equal(t, 1, p.TierFor(1))
	assert.Equal(t, 2, p.TierFor(2))
	assert.Equal(t, 4, p.TierFor(3))
	assert.Equal(t, 4, p.TierFor(10))
	assert.Equal(t, 1, Progression{}.TierFor(3))
}
