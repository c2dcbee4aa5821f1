package game

import (
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// applyForce 力场命中时给目标施加瞬时冲量
// 推力沿 原点->目标 方向，拉力反向；冲量本身不随距离衰减
func (w *World) applyForce(src hitSource, e *models.EnemyEntity) {
	f := src.Force
	if f == nil {
		return
	}
	dir := f.Origin.DirectionTo(e.Position, models.Vector2D{})
	switch f.Mode {
	case models.ForcePush:
		e.Velocity.Linear = e.Velocity.Linear.Add(dir.Scale(f.Strength))
	case models.ForcePull:
		e.Velocity.Linear = e.Velocity.Linear.Sub(dir.Scale(f.Strength))
	}
}

// explode 携带延迟爆炸的投射物命中后，在命中点生成范围伤害
func (w *World) explode(src hitSource, ev CollisionEvent) {
	if src.Explosion == nil {
		return
	}
	w.detonate(src.attacker(), src.Explosion, ev.Position)
}

// detonate 从对象池取出爆炸投射物，忽略网格，命中列表为空
func (w *World) detonate(src attacker, payload *models.ExplosionPayload, pos models.Vector2D) *models.ProjectileEntity {
	p := w.pool.Get()
	w.initProjectile(p, src, projectileSpec{
		Kind:       models.ProjectileExplosion,
		Position:   pos,
		Damage:     payload.Damage,
		Shape:      models.Circle{Radius: payload.Radius},
		Lifetime:   payload.Lifetime,
		Area:       true,
		IgnoreGrid: true,
	})
	w.addProjectile(p)
	return p
}

// attacker 继承来源的所有者与暴击属性
func (s hitSource) attacker() attacker {
	return attacker{
		ID:      s.OwnerID,
		Faction: s.Faction,
		Stats: models.CombatStats{
			CritChance:       s.CritChance,
			CritDamage:       s.CritDamage,
			DamageMultiplier: s.Multiplier,
		},
	}
}

func projectileAttacker(p *models.ProjectileEntity) attacker {
	return attacker{
		ID:      p.OwnerID,
		Faction: p.Faction,
		Stats: models.CombatStats{
			CritChance:       p.CritChance,
			CritDamage:       p.CritDamage,
			DamageMultiplier: p.DamageMultiplier,
		},
	}
}
