package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

const frameDT = 1.0 / 60

func vec(x, y float64) models.Vector2D {
	return models.Vector2D{X: x, Y: y}
}

// newTestWorld 玩家在原点，暴击率为0
func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(data.Default(), Options{Seed: 7})
	w.SpawnPlayer(vec(0, 0))
	w.SetCombatStats(models.CombatStats{CritDamage: 1.5, DamageMultiplier: 1})
	return w
}

// staticEnemy 不移动的敌人
func staticEnemy(w *World, kind models.EnemyKind, pos models.Vector2D) *models.EnemyEntity {
	e := w.SpawnEnemy(kind, pos)
	e.MoveSpeed = 0
	return e
}

func press(hand models.Hand, cursor models.Vector2D) Input {
	in := Input{Cursor: cursor}
	in.Fire[hand] = ButtonState{Pressed: true, JustPressed: true}
	return in
}

func skill(hand models.Hand, cursor models.Vector2D) Input {
	in := Input{Cursor: cursor}
	in.Skill[hand] = ButtonState{Pressed: true, JustPressed: true}
	return in
}

func turret() attacker {
	return attacker{
		ID:      "turret",
		Faction: models.FactionEnemy,
		Stats:   models.CombatStats{CritDamage: 1, DamageMultiplier: 1},
	}
}

func TestShurikenHitsUntilDeath(t *testing.T) {
	var deaths []DeathEvent
	w := NewWorld(data.Default(), Options{Seed: 1, Hooks: Hooks{
		OnDeath: func(ev DeathEvent) { deaths = append(deaths, ev) },
	}})
	p := w.SpawnPlayer(vec(0, 0))
	w.SetCombatStats(models.CombatStats{CritDamage: 1.5, DamageMultiplier: 1})
	e := staticEnemy(w, models.EnemyGrunt, vec(20, 0))
	require.Equal(t, 50.0, e.Health.Current)

	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	assert.Equal(t, 20.0, e.Health.Current)
	assert.False(t, e.Dying)
	assert.Empty(t, deaths)
	assert.Equal(t, 0, p.Currency)
	assert.Empty(t, w.ownedProjectiles(p.ID, models.ProjectileShuriken), "命中后移除")

	w.Tick(0.3, Input{})
	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))

	assert.Len(t, deaths, 1)
	assert.Equal(t, e.ID, deaths[0].EntityID)
	assert.Equal(t, 1, p.Currency)
	assert.Equal(t, 1, p.Kills)
	_, alive := w.Enemy(e.ID)
	assert.False(t, alive)
	assert.Equal(t, 0, w.LiveEnemies())
}

func TestPlayerInvulnerabilityWindow(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	require.Equal(t, 100.0, p.Health.Current)
	require.False(t, p.Health.Invulnerable())

	shoot := func() {
		w.CreateProjectile(turret(), projectileSpec{
			Kind:     models.ProjectileShuriken,
			Position: p.Position,
			Damage:   10,
			Shape:    models.Circle{Radius: 4},
			Lifetime: 1,
		})
	}

	shoot()
	w.Tick(frameDT, Input{})
	assert.Equal(t, 90.0, p.Health.Current)
	assert.Equal(t, 0.0, p.Health.Invulnerability.Elapsed, "受击后重置无敌计时")
	assert.True(t, p.Health.Invulnerable())

	shoot()
	w.Tick(0.1, Input{})
	assert.Equal(t, 90.0, p.Health.Current, "无敌期间不受伤害")

	w.Tick(1.0, Input{})
	shoot()
	w.Tick(frameDT, Input{})
	assert.Equal(t, 80.0, p.Health.Current)
}

func TestPlayerDeathEndsGame(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	p.Health.Current = 5

	w.CreateProjectile(turret(), projectileSpec{
		Kind:     models.ProjectileShuriken,
		Position: p.Position,
		Damage:   10,
		Shape:    models.Circle{Radius: 4},
		Lifetime: 1,
	})
	w.Tick(frameDT, Input{})
	assert.Equal(t, 0.0, p.Health.Current)
	assert.Equal(t, StateOver, w.State())

	frame := w.Frame()
	w.Tick(frameDT, Input{})
	assert.Equal(t, frame, w.Frame(), "结束后不再推进")
}

func TestCritChanceExtremes(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 1000; i++ {
		_, crit := w.rollCrit(10, 1.0, 2)
		require.True(t, crit)
		_, crit = w.rollCrit(10, 0.0, 2)
		require.False(t, crit)
	}

	w.SetCombatStats(models.CombatStats{CritChance: 1, CritDamage: 2, DamageMultiplier: 1})
	e := staticEnemy(w, models.EnemyElite, vec(20, 0))
	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))

	snap := w.Snapshot()
	require.Len(t, snap.Damage, 1)
	assert.True(t, snap.Damage[0].IsCrit)
	assert.Equal(t, 60.0, snap.Damage[0].Amount)
	assert.Equal(t, 120.0, e.Health.Current)
}

func TestDamageMultiplier(t *testing.T) {
	w := newTestWorld(t)
	w.SetCombatStats(models.CombatStats{CritDamage: 1, DamageMultiplier: 1.5})
	e := staticEnemy(w, models.EnemyElite, vec(20, 0))

	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	assert.Equal(t, 180.0-45.0, e.Health.Current)
}

func TestSimultaneousKillsEmitOneDeath(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	e := staticEnemy(w, models.EnemyGrunt, vec(200, 0))
	e.Health.Current = 10

	src := playerAttacker(p)
	for i := 0; i < 2; i++ {
		w.CreateProjectile(src, projectileSpec{
			Kind:     models.ProjectileShuriken,
			Position: e.Position,
			Damage:   30,
			Shape:    models.Circle{Radius: 4},
			Lifetime: 1,
		})
	}
	w.Tick(frameDT, Input{})

	snap := w.Snapshot()
	assert.Len(t, snap.Deaths, 1)
	assert.Len(t, snap.Damage, 1, "第二个事件的目标已死亡，被丢弃")
	assert.Equal(t, 1, p.Currency)
}

func TestStaleEventsAreDropped(t *testing.T) {
	w := newTestWorld(t)
	e := staticEnemy(w, models.EnemyGrunt, vec(50, 0))

	w.collisions = append(w.collisions,
		CollisionEvent{ProjectileID: "gone", TargetID: e.ID},
	)
	pr := w.CreateProjectile(playerAttacker(w.Player()), projectileSpec{
		Kind:   models.ProjectileShuriken,
		Damage: 30,
		Shape:  models.Circle{Radius: 4},
	})
	w.collisions = append(w.collisions,
		CollisionEvent{ProjectileID: pr.ID, TargetID: "missing"},
	)

	assert.NotPanics(t, w.resolveCollisions)
	assert.Equal(t, 50.0, e.Health.Current)
	assert.Empty(t, w.collisions)
}

func TestLifestealHealsPlayer(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	p.Health.Current = 50
	w.SetCombatStats(models.CombatStats{CritDamage: 1, DamageMultiplier: 1, Lifesteal: 0.5})
	staticEnemy(w, models.EnemyGrunt, vec(20, 0))

	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))
	assert.Equal(t, 65.0, p.Health.Current, "30点伤害回复15")
}

func TestAreaLifestealHalfEfficiency(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	p.Health.Current = 50
	w.SetCombatStats(models.CombatStats{CritDamage: 1, DamageMultiplier: 1, Lifesteal: 0.5})
	staticEnemy(w, models.EnemyElite, vec(300, 0))

	w.castGlobalStrike(playerAttacker(p), p.Position, data.StrikeTuning{Damage: 50, Radius: 1000, Lifetime: 1})
	w.Tick(frameDT, Input{})
	assert.Equal(t, 62.5, p.Health.Current)
}

func TestNoLifestealAfterPlayerDeath(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	p.Health.Current = 50
	w.SetCombatStats(models.CombatStats{CritDamage: 1, DamageMultiplier: 1, Lifesteal: 0.5})
	e := staticEnemy(w, models.EnemyGrunt, vec(20, 0))

	// 敌方投射物先生成，同一帧内先于玩家的飞镖结算
	w.CreateProjectile(turret(), projectileSpec{
		Kind:     models.ProjectileShuriken,
		Position: p.Position,
		Damage:   1000,
		Shape:    models.Circle{Radius: 4},
		Lifetime: 1,
	})
	w.Tick(frameDT, press(models.HandLeft, vec(100, 0)))

	assert.Equal(t, 20.0, e.Health.Current, "飞镖在同一帧命中")
	assert.Equal(t, StateOver, w.State())
	assert.Equal(t, 0.0, p.Health.Current)
	assert.True(t, p.Health.IsDead())
}

func TestHiddenProjectileSkipsCollision(t *testing.T) {
	w := newTestWorld(t)
	e := staticEnemy(w, models.EnemyGrunt, vec(300, 0))

	shot := w.CreateProjectile(playerAttacker(w.Player()), projectileSpec{
		Kind:     models.ProjectileShuriken,
		Position: e.Position,
		Damage:   30,
		Shape:    models.Circle{Radius: 4},
		Lifetime: 1,
	})
	shot.Hidden = true

	w.rebuildGrid()
	w.detectCollisions()
	assert.Empty(t, w.collisions)
	for _, v := range w.Snapshot().Projectiles {
		assert.NotEqual(t, shot.ID, v.ID)
	}

	w.Tick(frameDT, Input{})
	assert.Equal(t, 50.0, e.Health.Current)
}

func TestDeadOwnerProjectilesHidden(t *testing.T) {
	w := newTestWorld(t)
	p := w.Player()
	e := staticEnemy(w, models.EnemyElite, vec(300, 0))

	shot := w.CreateProjectile(enemyAttacker(e), projectileSpec{
		Kind:     models.ProjectileShuriken,
		Position: vec(0, 300),
		Damage:   20,
		Shape:    models.Circle{Radius: 4},
		Lifetime: 5,
	})
	require.Len(t, w.Snapshot().Projectiles, 1)

	w.deaths = append(w.deaths, DeathEvent{EntityID: e.ID, Position: e.Position})
	w.handleDeaths()
	assert.True(t, shot.Hidden)
	assert.Empty(t, w.Snapshot().Projectiles)

	shot.Position = p.Position
	w.Tick(frameDT, Input{})
	assert.Equal(t, 100.0, p.Health.Current, "所有者死亡后投射物不再造成伤害")
}

func TestEnemyProjectilesIgnoreEnemies(t *testing.T) {
	w := newTestWorld(t)
	w.Player().Position = vec(1000, 1000)
	e := staticEnemy(w, models.EnemyGrunt, vec(0, 0))

	w.CreateProjectile(turret(), projectileSpec{
		Kind:     models.ProjectileShuriken,
		Position: e.Position,
		Damage:   30,
		Shape:    models.Circle{Radius: 4},
		Lifetime: 1,
	})
	w.Tick(frameDT, Input{})
	assert.Equal(t, 50.0, e.Health.Current)
}

func TestTickWithoutPlayer(t *testing.T) {
	w := NewWorld(nil, Options{Seed: 3})
	e := w.SpawnEnemy(models.EnemyElite, vec(10, 10))

	assert.NotPanics(t, func() {
		for i := 0; i < 300; i++ {
			w.Tick(frameDT, Input{})
		}
	})
	assert.Equal(t, vec(10, 10), e.Position, "没有目标时不移动")
	assert.Equal(t, 1, w.LiveEnemies())
	w.SetCombatStats(models.CombatStats{})
	assert.Equal(t, 0.0, w.HealPlayer(10))
}

func TestEnemiesChasePlayer(t *testing.T) {
	w := newTestWorld(t)
	e := w.SpawnEnemy(models.EnemyGrunt, vec(500, 0))

	for i := 0; i < 60; i++ {
		w.Tick(frameDT, Input{})
	}
	assert.Less(t, e.Position.X, 500.0)
	assert.InDelta(t, 0, e.Position.Y, 1e-9)
}

func TestSetCombatStatsClamps(t *testing.T) {
	w := newTestWorld(t)
	w.SetCombatStats(models.CombatStats{CritChance: 3, CritDamage: 0.2, Lifesteal: 2, CooldownReduction: 5})
	s := w.Player().Stats
	assert.Equal(t, 1.0, s.CritChance)
	assert.Equal(t, 1.0, s.CritDamage)
	assert.Equal(t, 0.5, s.Lifesteal)
	assert.Equal(t, 0.8, s.CooldownReduction)
}

func TestSameSeedSameOutcome(t *testing.T) {
	run := func() []DamageEvent {
		w := NewWorld(data.Default(), Options{Seed: 99})
		w.SpawnPlayer(vec(0, 0))
		w.SetCombatStats(models.CombatStats{CritChance: 0.5, CritDamage: 2, DamageMultiplier: 1})
		w.EquipWeapon(models.HandLeft, models.WeaponGun)
		for i := 0; i < 5; i++ {
			staticEnemy(w, models.EnemyElite, vec(60+float64(i)*30, float64(i%2)*10))
		}

		var out []DamageEvent
		for i := 0; i < 120; i++ {
			in := Input{Cursor: vec(200, 0)}
			in.Fire[models.HandLeft] = ButtonState{Pressed: true, JustPressed: i%20 == 0}
			w.Tick(frameDT, in)
			for _, d := range w.Snapshot().Damage {
				out = append(out, DamageEvent{Amount: d.Amount, IsCrit: d.IsCrit})
			}
		}
		return out
	}

	a, b := run(), run()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestSnapshotIsCopy(t *testing.T) {
	w := newTestWorld(t)
	e := staticEnemy(w, models.EnemyElite, vec(300, 0))
	w.Tick(frameDT, Input{})

	snap := w.Snapshot()
	require.Len(t, snap.Enemies, 1)
	snap.Enemies[0].Health.Current = 1
	snap.Player.Currency = 999
	snap.Enemies[0].EliteAI.Ranged.Elapsed = 100

	assert.Equal(t, 180.0, e.Health.Current)
	assert.Equal(t, 0, w.Player().Currency)
	assert.Less(t, e.EliteAI.Ranged.Elapsed, 100.0)

	frame := snap.ToFrame()
	assert.Equal(t, "game_frame", frame.Type)
	assert.Len(t, frame.Enemies, 1)
	require.NotNil(t, frame.Player)
	assert.Len(t, frame.Player.Weapons, 2)
}

func TestSpawnHooks(t *testing.T) {
	var spawned []models.EntityType
	w := NewWorld(data.Default(), Options{Seed: 1, Hooks: Hooks{
		OnSpawn: func(e models.Entity) { spawned = append(spawned, e.GetType()) },
	}})
	w.SpawnPlayer(vec(0, 0))
	w.SpawnEnemy(models.EnemyGrunt, vec(500, 500))
	w.Tick(frameDT, press(models.HandLeft, vec(1, 0)))

	assert.Equal(t, []models.EntityType{models.EntityPlayer, models.EntityEnemy, models.EntityProjectile}, spawned)
}
