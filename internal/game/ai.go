package game

import (
	"math"

	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// updateAI 精英与镜像法师的计时行为，普通敌人只追击(见integrate)
func (w *World) updateAI(dt float64) {
	p := w.player
	if p == nil {
		w.log.Debug("没有玩家，跳过AI", zap.Int64("frame", w.frame))
		return
	}
	w.enemies.each(func(e *models.EnemyEntity) {
		if e.Dying {
			return
		}
		switch {
		case e.EliteAI != nil:
			w.updateElite(e, p, dt)
		case e.MirrorAI != nil:
			w.updateMirror(e, p, dt)
		}
	})
}

// updateElite 远程: 朝玩家加随机散布发射手里剑；传送: 按概率传送到离玩家最近的己方手里剑
func (w *World) updateElite(e *models.EnemyEntity, p *models.PlayerEntity, dt float64) {
	ai := e.EliteAI
	t := w.tuning.Elite
	ai.Ranged.Tick(dt)
	ai.Teleport.Tick(dt)

	if ai.Ranged.IsReady() {
		ai.Ranged.Reset()
		spread := degToRad(t.SpreadDeg)
		dir := e.Position.DirectionTo(p.Position, models.FromAngle(e.Rotation))
		dir = dir.Rotate((w.rng.Float64()*2 - 1) * spread)
		w.fireShuriken(enemyAttacker(e), e.Position, dir, t.Shuriken, t.ShurikenCap)
	}

	if ai.Teleport.IsReady() {
		ai.Teleport.Reset()
		if w.rng.Float64() >= t.TeleportChance {
			return
		}
		s := w.nearestOwned(e.ID, models.ProjectileShuriken, p.Position)
		if s == nil {
			return
		}
		e.Position = s.Position
		w.removeProjectile(s)
	}
}

// updateMirror 闪烁: 传送到玩家周围的环形区域；打击: 以自身为中心施放全场打击
func (w *World) updateMirror(e *models.EnemyEntity, p *models.PlayerEntity, dt float64) {
	ai := e.MirrorAI
	t := w.tuning.Mirror
	ai.Blink.Tick(dt)
	ai.Strike.Tick(dt)

	if ai.Blink.IsReady() {
		ai.Blink.Reset()
		e.Position = p.Position.Add(w.annulusOffset(t.BlinkMin, t.BlinkRange))
		e.Velocity.Linear = models.Vector2D{}
	}

	if ai.Strike.IsReady() {
		ai.Strike.Reset()
		w.castGlobalStrike(enemyAttacker(e), e.Position, t.Strike)
	}
}

// annulusOffset 环形区域[minR, maxR]内按面积均匀分布的随机偏移
func (w *World) annulusOffset(minR, maxR float64) models.Vector2D {
	angle := w.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(minR*minR + w.rng.Float64()*(maxR*maxR-minR*minR))
	return models.FromAngle(angle).Scale(r)
}
