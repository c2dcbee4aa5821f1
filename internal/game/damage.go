package game

import (
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// areaLifestealRate 范围伤害的吸血效率
const areaLifestealRate = 0.5

// hitSource 伤害来源，投射物或挥砍
type hitSource struct {
	ID         string
	OwnerID    string
	Faction    models.Faction
	Damage     float64
	Multiplier float64
	CritChance float64
	CritDamage float64
	Area       bool
	Force      *models.ForcePayload
	Explosion  *models.ExplosionPayload
}

// lookupSource 按ID查找伤害来源
func (w *World) lookupSource(id string) (hitSource, bool) {
	if p, ok := w.projectiles.get(id); ok {
		return hitSource{
			ID:         p.ID,
			OwnerID:    p.OwnerID,
			Faction:    p.Faction,
			Damage:     p.Damage,
			Multiplier: p.DamageMultiplier,
			CritChance: p.CritChance,
			CritDamage: p.CritDamage,
			Area:       p.IsAreaEffect,
			Force:      p.Force,
			Explosion:  p.Explosion,
		}, true
	}
	if s, ok := w.swings.get(id); ok {
		return hitSource{
			ID:         s.ID,
			OwnerID:    s.OwnerID,
			Faction:    s.Faction,
			Damage:     s.Damage,
			Multiplier: s.DamageMultiplier,
			CritChance: s.CritChance,
			CritDamage: s.CritDamage,
		}, true
	}
	return hitSource{}, false
}

// resolveCollisions 逐个消费碰撞事件
// 来源或目标已不存在的事件直接丢弃
func (w *World) resolveCollisions() {
	for _, ev := range w.collisions {
		src, ok := w.lookupSource(ev.ProjectileID)
		if !ok {
			w.log.Debug("丢弃过期碰撞事件", zap.String("source", ev.ProjectileID))
			continue
		}

		if w.player != nil && ev.TargetID == w.player.ID {
			w.damagePlayer(src)
		} else if e, ok := w.enemies.get(ev.TargetID); ok && !e.Dying {
			w.damageEnemy(src, e)
			w.applyForce(src, e)
		} else {
			w.log.Debug("丢弃过期碰撞事件", zap.String("target", ev.TargetID))
			continue
		}

		w.explode(src, ev)
	}
	w.collisions = w.collisions[:0]
}

// damagePlayer 玩家受击，无敌期间跳过
func (w *World) damagePlayer(src hitSource) {
	p := w.player
	if p.Health.Invulnerable() {
		return
	}

	amount, crit := w.rollCrit(src.Damage*src.Multiplier, src.CritChance, src.CritDamage)
	dealt := p.Health.Damage(amount)
	p.Health.Invulnerability.Reset()
	w.emitDamage(DamageEvent{EntityID: p.ID, Amount: dealt, IsCrit: crit})

	if p.Health.IsDead() {
		w.state = StateOver
		w.log.Info("玩家死亡，对局结束",
			zap.String("player_id", p.ID),
			zap.String("source", src.ID),
			zap.Int64("frame", w.frame))
	}
}

// damageEnemy 敌人受击；力场按距离附加伤害，玩家阵营触发吸血
func (w *World) damageEnemy(src hitSource, e *models.EnemyEntity) {
	base := src.Damage
	if f := src.Force; f != nil {
		base += ForceBonus(f, f.Origin.DistanceTo(e.Position))
	}

	amount, crit := w.rollCrit(base*src.Multiplier, src.CritChance, src.CritDamage)
	dealt := e.Health.Damage(amount)
	w.emitDamage(DamageEvent{EntityID: e.ID, Amount: dealt, IsCrit: crit})

	if src.Faction == models.FactionPlayer {
		w.applyLifesteal(dealt, src.Area)
	}

	if e.Health.IsDead() {
		e.Dying = true
		w.deaths = append(w.deaths, DeathEvent{EntityID: e.ID, Position: e.Position})
	}
}

// ForceBonus 力场附加伤害，t = clamp(dist/radius, 0, 1)
// 推力近处最大，拉力远处最大
func ForceBonus(f *models.ForcePayload, dist float64) float64 {
	if f == nil || f.Radius <= 0 {
		return 0
	}
	t := models.Clamp(dist/f.Radius, 0, 1)
	switch f.Mode {
	case models.ForcePush:
		return f.BonusDamage * (1 - t)
	case models.ForcePull:
		return f.BonusDamage * t
	default:
		return 0
	}
}

// rollCrit 暴击判定，每次命中都消耗一次随机数
func (w *World) rollCrit(damage, chance, critDamage float64) (float64, bool) {
	if w.rng.Float64() < chance {
		return damage * critDamage, true
	}
	return damage, false
}

// applyLifesteal 按实际伤害回复玩家生命，玩家已阵亡时不回复
func (w *World) applyLifesteal(dealt float64, area bool) {
	p := w.player
	if p == nil || dealt <= 0 || p.Stats.Lifesteal <= 0 {
		return
	}
	if w.state == StateOver || p.Health.IsDead() {
		return
	}
	heal := dealt * p.Stats.Lifesteal
	if area {
		heal *= areaLifestealRate
	}
	p.Health.Heal(heal)
}

func (w *World) emitDamage(ev DamageEvent) {
	w.damageLog = append(w.damageLog, ev)
	w.hooks.damaged(ev)
}
