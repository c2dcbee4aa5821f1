package game

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

func TestSwingAngleInterpolation(t *testing.T) {
	src := attacker{ID: "p", Faction: models.FactionPlayer, Stats: models.DefaultCombatStats()}
	tn := data.SwingTuning{Damage: 10, Range: 50, Duration: 0.2}

	cw := newSwing(src, vec(0, 0), vec(1, 0), 1, models.SwordNormal, tn, 0.1)
	assert.InDelta(t, -math.Pi/2, cw.angleAt(0), 1e-9)
	assert.InDelta(t, 0, cw.angleAt(0.5), 1e-9)
	assert.InDelta(t, math.Pi/2, cw.angleAt(1), 1e-9)
	assert.InDelta(t, -math.Pi/2, cw.Rotation, 1e-9)

	ccw := newSwing(src, vec(0, 0), vec(0, 1), -1, models.SwordNormal, tn, 0.1)
	assert.InDelta(t, math.Pi, ccw.angleAt(0), 1e-9)
	assert.InDelta(t, 0, ccw.angleAt(1), 1e-9)
}

func TestSwingStateMachine(t *testing.T) {
	ctx := context.Background()
	src := attacker{ID: "p", Faction: models.FactionPlayer, Stats: models.DefaultCombatStats()}
	s := newSwing(src, vec(0, 0), vec(1, 0), 1, models.SwordNormal, data.SwingTuning{Damage: 10, Range: 50, Duration: 0.2}, 0.1)
	require.Equal(t, swingSwinging, s.State())

	strike, err := s.advance(ctx, 0.1)
	require.NoError(t, err)
	assert.True(t, strike, "第一次更新结算伤害")
	assert.Equal(t, swingSwinging, s.State())

	strike, err = s.advance(ctx, 0.1)
	require.NoError(t, err)
	assert.False(t, strike)
	assert.Equal(t, swingRecovering, s.State())
	assert.Equal(t, 0.0, s.Elapsed)
	assert.InDelta(t, math.Pi/2, s.Rotation, 1e-9)

	_, err = s.advance(ctx, 0.05)
	require.NoError(t, err)
	assert.False(t, s.Done())

	_, err = s.advance(ctx, 0.06)
	require.NoError(t, err)
	assert.True(t, s.Done())
}

func TestSwordHitsOnlyInFront(t *testing.T) {
	w := newTestWorld(t)
	require.True(t, w.EquipWeapon(models.HandLeft, models.WeaponSword))
	front := staticEnemy(w, models.EnemyGrunt, vec(50, 0))
	behind := staticEnemy(w, models.EnemyGrunt, vec(-50, 0))
	side := staticEnemy(w, models.EnemyGrunt, vec(0, 50))
	far := staticEnemy(w, models.EnemyGrunt, vec(200, 0))

	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	require.Equal(t, 1, w.swings.len())

	assert.Equal(t, 5.0, front.Health.Current)
	assert.Equal(t, 50.0, behind.Health.Current)
	assert.Equal(t, 50.0, side.Health.Current, "垂直方向不在前方")
	assert.Equal(t, 50.0, far.Health.Current)

	for i := 0; i < 30; i++ {
		w.Tick(frameDT, Input{Cursor: vec(100, 0)})
	}
	assert.Equal(t, 5.0, front.Health.Current, "每次挥砍只结算一次")
	assert.Equal(t, 0, w.swings.len(), "收招结束后移除")
}

func TestSwordSkillTogglesMode(t *testing.T) {
	w := newTestWorld(t)
	w.EquipWeapon(models.HandLeft, models.WeaponSword)
	slot := &w.Player().Slots[models.HandLeft]

	w.Tick(frameDT, skill(models.HandLeft, vec(100, 0)))
	assert.Equal(t, models.SwordShattered, slot.Mode)
	assert.Equal(t, w.tuning.Sword.Shattered.Cooldown, slot.BaseCooldown)

	w.Tick(frameDT, skill(models.HandLeft, vec(100, 0)))
	assert.Equal(t, models.SwordShattered, slot.Mode, "技能冷却中")

	w.Tick(1.0, skill(models.HandLeft, vec(100, 0)))
	assert.Equal(t, models.SwordNormal, slot.Mode)
	assert.Equal(t, w.tuning.Sword.Normal.Cooldown, slot.BaseCooldown)
}

func TestShatteredSwordReachesFurther(t *testing.T) {
	w := newTestWorld(t)
	w.EquipWeapon(models.HandLeft, models.WeaponSword)
	e := staticEnemy(w, models.EnemyGrunt, vec(120, 0))

	in := press(models.HandLeft, vec(100, 0))
	in.Skill[models.HandLeft] = ButtonState{Pressed: true, JustPressed: true}
	w.Tick(frameDT, in)

	assert.Equal(t, 50.0-w.tuning.Sword.Shattered.Damage, e.Health.Current)
}
