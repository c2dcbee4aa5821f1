package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/jacl-coder/PixelStorm-Survival/internal/collision"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// projectileSpec 投射物生成参数
type projectileSpec struct {
	Kind      models.ProjectileKind
	Position  models.Vector2D
	Direction models.Vector2D
	Speed     float64
	Damage    float64
	Shape     models.Shape
	Lifetime  float64
	Spin      float64 // 角速度，仅表现用

	Area       bool
	IgnoreGrid bool
	Force      *models.ForcePayload
	Explosion  *models.ExplosionPayload
}

// CreateProjectile 创建投射物并加入世界
func (w *World) CreateProjectile(src attacker, spec projectileSpec) *models.ProjectileEntity {
	p := &models.ProjectileEntity{}
	w.initProjectile(p, src, spec)
	w.addProjectile(p)
	return p
}

// initProjectile 填充投射物字段，保留Pooled与HitList
func (w *World) initProjectile(p *models.ProjectileEntity, src attacker, spec projectileSpec) {
	dir := spec.Direction.Normalize()
	p.BaseEntity = models.BaseEntity{
		ID:       uuid.New().String(),
		Type:     models.EntityProjectile,
		Position: spec.Position,
		Rotation: dir.Angle(),
		Velocity: models.Velocity{
			Linear:  dir.Scale(spec.Speed),
			Angular: spec.Spin,
		},
		Shape:     spec.Shape,
		CreatedAt: time.Now(),
	}
	p.Kind = spec.Kind
	p.OwnerID = src.ID
	p.Faction = src.Faction
	p.Damage = spec.Damage
	p.DamageMultiplier = src.Stats.DamageMultiplier
	p.Speed = spec.Speed
	p.Direction = dir
	p.CritChance = src.Stats.CritChance
	p.CritDamage = src.Stats.CritDamage
	p.Lifetime = models.NewCountdown(spec.Lifetime)
	p.IsAreaEffect = spec.Area
	p.IgnoreGrid = spec.IgnoreGrid
	p.Hidden = false
	p.PendingDespawn = false
	p.Force = spec.Force
	p.Explosion = spec.Explosion
	if spec.Area && p.HitList == nil {
		p.HitList = make(map[string]struct{})
	}
}

func (w *World) addProjectile(p *models.ProjectileEntity) {
	w.projectiles.add(p)
	w.hooks.spawned(p)
}

// removeProjectile 立即移除投射物，池化实例归还对象池
func (w *World) removeProjectile(p *models.ProjectileEntity) {
	if _, ok := w.projectiles.get(p.ID); !ok {
		return
	}
	w.projectiles.remove(p.ID)
	if p.Pooled {
		w.pool.Put(p)
	}
}

// detectCollisions 碰撞检测
// 非范围投射物首次命中即标记待移除并停止扫描；范围投射物对每个目标最多命中一次
func (w *World) detectCollisions() {
	w.projectiles.each(func(p *models.ProjectileEntity) {
		if p.Hidden || p.PendingDespawn {
			return
		}
		switch p.Faction {
		case models.FactionPlayer:
			w.detectAgainstEnemies(p)
		case models.FactionEnemy:
			w.detectAgainstPlayer(p)
		}
	})
}

// candidates 粗筛候选；全场打击取全部敌人，忽略网格的大范围投射物按包围盒查询
func (w *World) candidates(p *models.ProjectileEntity) []string {
	if isGlobal(p) {
		return w.grid.All()
	}
	if p.IgnoreGrid {
		min, max := p.Shape.Bounds(p.Position)
		return w.grid.QueryAABB(min, max)
	}
	return w.grid.QueryNearby(p.Position)
}

func (w *World) detectAgainstEnemies(p *models.ProjectileEntity) {
	for _, id := range w.candidates(p) {
		if id == p.OwnerID {
			continue
		}
		e, ok := w.enemies.get(id)
		if !ok || e.Dying {
			continue
		}
		if p.IsAreaEffect && p.HasHit(id) {
			continue
		}
		if !isGlobal(p) && !collision.Collide(p.Shape, p.Position, e.Shape, e.Position) {
			continue
		}

		w.collisions = append(w.collisions, CollisionEvent{
			ProjectileID: p.ID,
			TargetID:     id,
			Position:     p.Position,
			Direction:    hitDirection(p, e.Position),
		})
		if p.IsAreaEffect {
			p.MarkHit(id)
			continue
		}
		p.PendingDespawn = true
		return
	}
}

// detectAgainstPlayer 玩家不在网格中，单独检测
func (w *World) detectAgainstPlayer(p *models.ProjectileEntity) {
	pl := w.player
	if pl == nil || p.OwnerID == pl.ID {
		return
	}
	if p.IsAreaEffect && p.HasHit(pl.ID) {
		return
	}
	if !isGlobal(p) && !collision.Collide(p.Shape, p.Position, pl.Shape, pl.Position) {
		return
	}

	w.collisions = append(w.collisions, CollisionEvent{
		ProjectileID: p.ID,
		TargetID:     pl.ID,
		Position:     p.Position,
		Direction:    hitDirection(p, pl.Position),
	})
	if p.IsAreaEffect {
		p.MarkHit(pl.ID)
		return
	}
	p.PendingDespawn = true
}

// isGlobal 全场打击命中所有存活目标，形状只用于表现
func isGlobal(p *models.ProjectileEntity) bool {
	return p.Kind == models.ProjectileGlobalStrike
}

// hitDirection 力场以施法原点指向目标，其余沿飞行方向
func hitDirection(p *models.ProjectileEntity, target models.Vector2D) models.Vector2D {
	if p.Force != nil {
		return p.Force.Origin.DirectionTo(target, p.Direction)
	}
	if p.Direction.LenSq() > 0 {
		return p.Direction
	}
	return p.Position.DirectionTo(target, models.Vector2D{X: 1})
}

// ownedProjectiles 某所有者仍存活的某类投射物，按生成顺序
func (w *World) ownedProjectiles(ownerID string, kind models.ProjectileKind) []*models.ProjectileEntity {
	var owned []*models.ProjectileEntity
	w.projectiles.each(func(p *models.ProjectileEntity) {
		if p.OwnerID == ownerID && p.Kind == kind && !p.PendingDespawn {
			owned = append(owned, p)
		}
	})
	return owned
}

// nearestOwned 所有者离target最近的某类投射物
func (w *World) nearestOwned(ownerID string, kind models.ProjectileKind, target models.Vector2D) *models.ProjectileEntity {
	var best *models.ProjectileEntity
	bestDist := 0.0
	for _, p := range w.ownedProjectiles(ownerID, kind) {
		d := p.Position.DistanceSq(target)
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
