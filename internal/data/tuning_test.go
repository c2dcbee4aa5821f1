package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	raw := []byte(`
player:
  max_health: 150
shuriken:
  damage: 40
  cap: 8
enemies:
  grunt:
    max_health: 60
    radius: 12
    move_speed: 80
    reward: 2
`)
	tun, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, 150.0, tun.Player.MaxHealth)
	assert.Equal(t, 40.0, tun.Shuriken.Damage)
	assert.Equal(t, 8, tun.Shuriken.Cap)
	// 未覆盖的字段保留内置值
	assert.Equal(t, 720.0, tun.Shuriken.Speed)
	assert.Equal(t, 7, tun.Gun.Pellets)
	assert.Equal(t, 60.0, tun.Enemy(models.EnemyGrunt).MaxHealth)
	assert.Equal(t, 180.0, tun.Enemy(models.EnemyElite).MaxHealth)
}

func TestParseStatsUsesSnakeCase(t *testing.T) {
	tun, err := Parse([]byte("player:\n  stats:\n    crit_chance: 0.3\n    lifesteal: 0.1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.3, tun.Player.Stats.CritChance)
	assert.Equal(t, 0.1, tun.Player.Stats.Lifesteal)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"health":    "player:\n  max_health: 0\n",
		"cap":       "shuriken:\n  cap: 0\n",
		"pellets":   "gun:\n  pellets: 0\n",
		"blink":     "mirror:\n  blink_min: 500\n",
		"waves":     "waves:\n  spawn_min: 900\n",
		"enemy":     "enemies:\n  elite:\n    max_health: 0\n    radius: 5\n",
		"malformed": "player: [1, 2",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestEnemyFallsBackToGrunt(t *testing.T) {
	tun := Default()
	assert.Equal(t, tun.Enemies[models.EnemyGrunt], tun.Enemy("unknown"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gun:\n  pellets: 5\n"), 0o644))

	tun, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, tun.Gun.Pellets)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
