package game

import (
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// ExplosionPool 爆炸投射物对象池，容量满时多余实例直接丢弃
type ExplosionPool struct {
	free     []*models.ProjectileEntity
	capacity int
	created  int
}

// NewExplosionPool 创建对象池
func NewExplosionPool(capacity int) *ExplosionPool {
	if capacity < 0 {
		capacity = 0
	}
	return &ExplosionPool{
		free:     make([]*models.ProjectileEntity, 0, capacity),
		capacity: capacity,
	}
}

// Get 取出一个已重置的实例，池为空时新建
func (p *ExplosionPool) Get() *models.ProjectileEntity {
	if n := len(p.free); n > 0 {
		e := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return e
	}
	p.created++
	return &models.ProjectileEntity{
		Pooled:  true,
		HitList: make(map[string]struct{}),
	}
}

// Put 重置并归还实例
func (p *ExplosionPool) Put(e *models.ProjectileEntity) {
	e.Reset()
	if len(p.free) < p.capacity {
		p.free = append(p.free, e)
	}
}

// Len 池中空闲实例数
func (p *ExplosionPool) Len() int {
	return len(p.free)
}

// Created 累计新建的实例数
func (p *ExplosionPool) Created() int {
	return p.created
}

// updateLifetimes 推进生命周期，移除过期或待移除的投射物与结束的挥砍
// 未命中就到期的飞弹在终点爆炸
func (w *World) updateLifetimes(dt float64) {
	w.projectiles.each(func(p *models.ProjectileEntity) {
		if p.PendingDespawn {
			w.removeProjectile(p)
			return
		}
		p.Lifetime.Tick(dt)
		if !p.Lifetime.IsReady() {
			return
		}
		if p.Explosion != nil {
			w.detonate(projectileAttacker(p), p.Explosion, p.Position)
		}
		w.removeProjectile(p)
	})

	w.swings.each(func(s *Swing) {
		if s.Done() {
			w.swings.remove(s.ID)
		}
	})

	w.projectiles.compact()
	w.swings.compact()
	w.enemies.compact()
}
