package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

func fireN(w *World, src attacker, n, limit int) []*models.ProjectileEntity {
	t := w.tuning.Shuriken.ProjectileTuning
	out := make([]*models.ProjectileEntity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, w.fireShuriken(src, vec(0, 0), vec(1, 0), t, limit))
	}
	return out
}

func TestShurikenCapEvictsLeastRemaining(t *testing.T) {
	w := newTestWorld(t)
	src := playerAttacker(w.Player())
	limit := w.tuning.Shuriken.Cap

	fired := fireN(w, src, limit, limit)
	require.Len(t, w.ownedProjectiles(src.ID, models.ProjectileShuriken), 12)

	for i, s := range fired {
		s.Lifetime.Elapsed = 0.1 * float64(i)
	}
	victim := fired[5]
	victim.Lifetime.Elapsed = 2.9

	w.fireShuriken(src, vec(0, 0), vec(1, 0), w.tuning.Shuriken.ProjectileTuning, limit)

	owned := w.ownedProjectiles(src.ID, models.ProjectileShuriken)
	assert.Len(t, owned, 12)
	_, ok := w.Projectile(victim.ID)
	assert.False(t, ok, "剩余寿命最短的被移除")
	_, ok = w.Projectile(fired[0].ID)
	assert.True(t, ok, "最早发射的保留")
}

func TestShurikenCapTieEvictsEarliest(t *testing.T) {
	w := newTestWorld(t)
	src := playerAttacker(w.Player())

	fired := fireN(w, src, 4, 4)
	w.fireShuriken(src, vec(0, 0), vec(1, 0), w.tuning.Shuriken.ProjectileTuning, 4)

	_, ok := w.Projectile(fired[0].ID)
	assert.False(t, ok)
	assert.Len(t, w.ownedProjectiles(src.ID, models.ProjectileShuriken), 4)
}

func TestShurikenBelowCapKeepsAll(t *testing.T) {
	w := newTestWorld(t)
	src := playerAttacker(w.Player())

	fired := fireN(w, src, 9, w.tuning.Shuriken.Cap)
	assert.Len(t, w.ownedProjectiles(src.ID, models.ProjectileShuriken), 9)
	for _, s := range fired {
		_, ok := w.Projectile(s.ID)
		assert.True(t, ok)
	}
}

func TestShurikenCapIsPerOwner(t *testing.T) {
	w := newTestWorld(t)
	e := staticEnemy(w, models.EnemyElite, vec(500, 500))
	limit := w.tuning.Elite.ShurikenCap

	fireN(w, enemyAttacker(e), limit+3, limit)
	fireN(w, playerAttacker(w.Player()), 3, w.tuning.Shuriken.Cap)

	assert.Len(t, w.ownedProjectiles(e.ID, models.ProjectileShuriken), limit)
	assert.Len(t, w.ownedProjectiles(w.Player().ID, models.ProjectileShuriken), 3)
}

func TestShurikenTeleport(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	tn := w.tuning.Shuriken.ProjectileTuning
	near := w.fireShuriken(playerAttacker(p), vec(100, 0), vec(0, 1), tn, 12)
	far := w.fireShuriken(playerAttacker(p), vec(0, 100), vec(1, 0), tn, 12)

	w.Tick(frameDT, skill(models.HandLeft, vec(90, 10)))

	assert.Equal(t, near.Position, p.Position)
	_, ok := w.Projectile(near.ID)
	assert.False(t, ok, "传送后收回")
	_, ok = w.Projectile(far.ID)
	assert.True(t, ok)
	assert.Equal(t, w.Now(), p.Slots[models.HandLeft].LastSkillTime)
}

func TestShurikenTeleportWithoutShurikens(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()

	w.Tick(frameDT, skill(models.HandLeft, vec(90, 10)))

	assert.Equal(t, vec(0, 0), p.Position)
	assert.Less(t, p.Slots[models.HandLeft].LastSkillTime, 0.0, "未触发不进入冷却")
	assert.True(t, p.Slots[models.HandLeft].CanSkill(w.Now()))
}

func TestFireCooldown(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()

	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	assert.Len(t, w.ownedProjectiles(p.ID, models.ProjectileShuriken), 1)

	w.Tick(0.25, press(models.HandLeft, vec(100, 0)))
	assert.Len(t, w.ownedProjectiles(p.ID, models.ProjectileShuriken), 2)
}

func TestGunModeCycle(t *testing.T) {
	w := newTestWorld(t)
	require.True(t, w.EquipWeapon(models.HandLeft, models.WeaponGun))
	slot := &w.Player().Slots[models.HandLeft]
	require.Equal(t, models.GunSingle, slot.Mode)

	w.cycleGunMode(slot)
	assert.Equal(t, models.GunShotgun, slot.Mode)
	assert.Equal(t, w.tuning.Gun.Shotgun.Cooldown, slot.BaseCooldown)

	w.cycleGunMode(slot)
	assert.Equal(t, models.GunRapid, slot.Mode)
	assert.Equal(t, w.tuning.Gun.Rapid.Cooldown, slot.BaseCooldown)

	w.cycleGunMode(slot)
	assert.Equal(t, models.GunSingle, slot.Mode)
	assert.Equal(t, w.tuning.Gun.Single.Cooldown, slot.BaseCooldown)
}

func TestShotgunSpread(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	w.EquipWeapon(models.HandLeft, models.WeaponGun)

	in := press(models.HandLeft, vec(100, 0))
	in.Skill[models.HandLeft] = ButtonState{Pressed: true, JustPressed: true}
	w.Tick(frameDT, in)

	bullets := w.ownedProjectiles(p.ID, models.ProjectileBullet)
	require.Len(t, bullets, 7)

	spread := w.tuning.Gun.SpreadDeg * math.Pi / 180
	for i, b := range bullets {
		want := float64(i-3) * spread
		assert.InDelta(t, want, b.Direction.Angle(), 1e-9)
		assert.Equal(t, w.tuning.Gun.Shotgun.Damage, b.Damage)
	}
}

func TestRapidFiresWhileHeld(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	w.EquipWeapon(models.HandLeft, models.WeaponGun)

	held := Input{Cursor: vec(100, 0)}
	held.Fire[models.HandLeft] = ButtonState{Pressed: true}

	w.Tick(0.1, held)
	w.Tick(0.1, held)
	assert.Empty(t, w.ownedProjectiles(p.ID, models.ProjectileBullet), "单发需要重新按下")

	slot := &p.Slots[models.HandLeft]
	w.cycleGunMode(slot)
	w.cycleGunMode(slot)
	require.Equal(t, models.GunRapid, slot.Mode)

	for i := 0; i < 3; i++ {
		w.Tick(0.1, held)
	}
	bullets := w.ownedProjectiles(p.ID, models.ProjectileBullet)
	assert.Len(t, bullets, 3)

	jitter := w.tuning.Gun.JitterDeg * math.Pi / 180
	for _, b := range bullets {
		assert.LessOrEqual(t, math.Abs(b.Direction.Angle()), jitter+1e-9)
	}
}

func TestMagicSkillTogglesSpell(t *testing.T) {
	w := newTestWorld(t)
	slot := &w.Player().Slots[models.HandRight]
	require.Equal(t, models.SpellBolt, slot.ActiveSpellKind())
	require.Equal(t, w.tuning.Magic.Bolt.Cooldown, slot.BaseCooldown)

	w.Tick(frameDT, skill(models.HandRight, vec(100, 0)))
	assert.Equal(t, models.SpellNova, slot.ActiveSpellKind())
	assert.Equal(t, w.tuning.Magic.Nova.Cooldown, slot.BaseCooldown)

	w.Tick(0.5, skill(models.HandRight, vec(100, 0)))
	assert.Equal(t, models.SpellBolt, slot.ActiveSpellKind())
}

func TestCooldownReductionOnlyAffectsMagic(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	w.SetCombatStats(models.CombatStats{CritDamage: 1, DamageMultiplier: 1, CooldownReduction: 0.5})

	fire := func(dt float64) {
		in := Input{Cursor: vec(100, 0)}
		in.Fire[models.HandLeft] = ButtonState{Pressed: true, JustPressed: true}
		in.Fire[models.HandRight] = ButtonState{Pressed: true, JustPressed: true}
		w.Tick(dt, in)
	}

	fire(frameDT)
	fire(0.2)
	assert.Len(t, w.ownedProjectiles(p.ID, models.ProjectileShuriken), 1, "手里剑冷却0.25不受影响")

	fire(0.25)
	bolts :=w.ownedProjectiles(p.ID, models.ProjectileBolt)
	assert.Len(t, bolts, 2, "飞弹冷却0.8减半")
}
