package game

import (
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// handleDeaths 处理死亡通知: 发放奖励，移除敌人，通知表现层
// 每个通知恰好一次奖励与一次移除，重复通知由伤害结算的Dying标记避免
func (w *World) handleDeaths() {
	for _, ev := range w.deaths {
		e, ok := w.enemies.get(ev.EntityID)
		if !ok {
			continue
		}
		if p := w.player; p != nil {
			p.Currency += e.Reward
			p.Kills++
		}
		w.enemies.remove(e.ID)
		w.hideOwned(e.ID)
		w.deathLog = append(w.deathLog, ev)
		w.hooks.died(ev)

		w.log.Debug("敌人死亡",
			zap.String("enemy_id", e.ID),
			zap.String("kind", string(e.Kind)),
			zap.Int("reward", e.Reward))
	}
	w.deaths = w.deaths[:0]
}

// hideOwned 所有者死亡后其投射物不再参与碰撞与渲染，寿命到期后照常回收
func (w *World) hideOwned(ownerID string) {
	w.projectiles.each(func(p *models.ProjectileEntity) {
		if p.OwnerID == ownerID {
			p.Hidden = true
		}
	})
}
