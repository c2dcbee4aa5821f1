package game

import "github.com/jacl-coder/PixelStorm-Survival/internal/models"

// CollisionEvent 碰撞事件，由碰撞检测产生，伤害结算消费
// ProjectileID 也可能是挥砍实体ID
type CollisionEvent struct {
	ProjectileID string          `json:"projectile_id"`
	TargetID     string          `json:"target_id"`
	Position     models.Vector2D `json:"position"`
	Direction    models.Vector2D `json:"direction"`
}

// DeathEvent 敌人死亡通知
type DeathEvent struct {
	EntityID string          `json:"entity_id"`
	Position models.Vector2D `json:"position"`
}

// DamageEvent 伤害数字
type DamageEvent struct {
	EntityID string  `json:"entity_id"`
	Amount   float64 `json:"amount"`
	IsCrit   bool    `json:"is_crit"`
}

// Hooks 表现层回调，只通知不查询，均可为空
type Hooks struct {
	OnSpawn  func(e models.Entity)
	OnDamage func(ev DamageEvent)
	OnDeath  func(ev DeathEvent)
}

func (h *Hooks) spawned(e models.Entity) {
	if h.OnSpawn != nil {
		h.OnSpawn(e)
	}
}

func (h *Hooks) damaged(ev DamageEvent) {
	if h.OnDamage != nil {
		h.OnDamage(ev)
	}
}

func (h *Hooks) died(ev DeathEvent) {
	if h.OnDeath != nil {
		h.OnDeath(ev)
	}
}
