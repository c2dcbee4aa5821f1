package game

import (
	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// spellCooldown 法术基础冷却
func (w *World) spellCooldown(kind models.SpellKind) float64 {
	m := w.tuning.Magic
	switch kind {
	case models.SpellBolt:
		return m.Bolt.Cooldown
	case models.SpellBeam:
		return m.Beam.Cooldown
	case models.SpellNova:
		return m.Nova.Cooldown
	case models.SpellVortex:
		return m.Vortex.Cooldown
	case models.SpellBlink:
		return m.Blink.Cooldown
	case models.SpellGlobalStrike:
		return m.GlobalStrike.Cooldown
	}
	return 0
}

// castSpell 施放法术，返回是否实际施放
func (w *World) castSpell(p *models.PlayerEntity, kind models.SpellKind, dir models.Vector2D) bool {
	src := playerAttacker(p)
	m := w.tuning.Magic

	switch kind {
	case models.SpellBolt:
		w.castBolt(src, p.Position, dir, m.Bolt)
	case models.SpellBeam:
		w.castBeam(src, p.Position, dir, m.Beam)
	case models.SpellNova:
		w.castForce(src, p.Position, models.ForcePush, models.ProjectileNova, m.Nova)
	case models.SpellVortex:
		w.castForce(src, p.Position, models.ForcePull, models.ProjectileVortex, m.Vortex)
	case models.SpellBlink:
		w.blink(p, w.input.Cursor, m.Blink.Range)
	case models.SpellGlobalStrike:
		w.castGlobalStrike(src, p.Position, m.GlobalStrike)
	default:
		return false
	}
	return true
}

// castBolt 飞弹，命中或到期时在原地爆炸
func (w *World) castBolt(src attacker, pos, dir models.Vector2D, t data.BoltTuning) *models.ProjectileEntity {
	explosion := t.Explosion
	return w.CreateProjectile(src, projectileSpec{
		Kind:      models.ProjectileBolt,
		Position:  pos,
		Direction: dir,
		Speed:     t.Speed,
		Damage:    t.Damage,
		Shape:     models.Circle{Radius: t.Radius},
		Lifetime:  t.Lifetime,
		Explosion: &explosion,
	})
}

// castBeam 瞬发光束，线段形状，贯穿路径上的所有敌人
func (w *World) castBeam(src attacker, pos, dir models.Vector2D, t data.BeamTuning) *models.ProjectileEntity {
	return w.CreateProjectile(src, projectileSpec{
		Kind:       models.ProjectileBeam,
		Position:   pos,
		Direction:  dir,
		Damage:     t.Damage,
		Shape:      models.LineSegment{Direction: dir.Normalize(), Length: t.Length, Width: t.Width},
		Lifetime:   t.Lifetime,
		Area:       true,
		IgnoreGrid: true,
	})
}

// castForce 以自身为中心的推/拉力场
func (w *World) castForce(src attacker, pos models.Vector2D, mode models.ForceMode, kind models.ProjectileKind, t data.ForceTuning) *models.ProjectileEntity {
	return w.CreateProjectile(src, projectileSpec{
		Kind:       kind,
		Position:   pos,
		Damage:     t.Damage,
		Shape:      models.Circle{Radius: t.Radius},
		Lifetime:   t.Lifetime,
		Area:       true,
		IgnoreGrid: true,
		Force: &models.ForcePayload{
			Mode:        mode,
			Origin:      pos,
			Radius:      t.Radius,
			Strength:    t.Strength,
			BonusDamage: t.BonusDamage,
		},
	})
}

// castGlobalStrike 全场打击，玩家与镜像法师共用
func (w *World) castGlobalStrike(src attacker, pos models.Vector2D, t data.StrikeTuning) *models.ProjectileEntity {
	return w.CreateProjectile(src, projectileSpec{
		Kind:       models.ProjectileGlobalStrike,
		Position:   pos,
		Damage:     t.Damage,
		Shape:      models.Circle{Radius: t.Radius},
		Lifetime:   t.Lifetime,
		Area:       true,
		IgnoreGrid: true,
	})
}

// blink 向光标传送，距离不超过maxRange
func (w *World) blink(p *models.PlayerEntity, target models.Vector2D, maxRange float64) {
	offset := target.Sub(p.Position)
	if d := offset.Len(); d > maxRange && d > 0 {
		offset = offset.Scale(maxRange / d)
	}
	p.Position = p.Position.Add(offset)
}
