// entity.go

package models

import (
	"time"
)

// EntityType 实体类型
type EntityType string

const (
	// EntityPlayer 玩家实体
	EntityPlayer EntityType = "player"
	// EntityEnemy 敌人实体
	EntityEnemy EntityType = "enemy"
	// EntityProjectile 投射物实体
	EntityProjectile EntityType = "projectile"
	// EntitySwing 挥砍实体
	EntitySwing EntityType = "swing"
)

// Entity 游戏实体基础接口
type Entity interface {
	GetID() string
	GetType() EntityType
	GetPosition() Vector2D
	GetShape() Shape
}

// Velocity 线速度 + 角速度
type Velocity struct {
	Linear  Vector2D `json:"linear"`
	Angular float64  `json:"angular"`
}

// BaseEntity 基础实体结构
type BaseEntity struct {
	ID        string     `json:"id"`
	Type      EntityType `json:"type"`
	Position  Vector2D   `json:"position"`
	Rotation  float64    `json:"rotation"` // 弧度
	Velocity  Velocity   `json:"velocity"`
	Shape     Shape      `json:"shape"`
	CreatedAt time.Time  `json:"created_at"`
}

// GetID 获取实体ID
func (e *BaseEntity) GetID() string {
	return e.ID
}

// GetType 获取实体类型
func (e *BaseEntity) GetType() EntityType {
	return e.Type
}

// GetPosition 获取实体位置
func (e *BaseEntity) GetPosition() Vector2D {
	return e.Position
}

// GetShape 获取碰撞形状
func (e *BaseEntity) GetShape() Shape {
	return e.Shape
}

// PlayerEntity 玩家实体
type PlayerEntity struct {
	BaseEntity
	Health    Health                `json:"health"`
	Stats     CombatStats           `json:"stats"`
	Slots     [HandCount]WeaponSlot `json:"slots"`
	Currency  int                   `json:"currency"`
	Kills     int                   `json:"kills"`
	MoveSpeed float64               `json:"move_speed"`
}

// EnemyKind 敌人类型
type EnemyKind string

const (
	// EnemyGrunt 普通敌人，只会追击
	EnemyGrunt EnemyKind = "grunt"
	// EnemyElite 精英: 远程手里剑 + 传送
	EnemyElite EnemyKind = "elite"
	// EnemyMirrorCaster 镜像法师(黄色): 闪烁 + 全场打击
	EnemyMirrorCaster EnemyKind = "mirror_caster"
)

// EliteState 精英AI计时器
type EliteState struct {
	Ranged   Countdown `json:"ranged"`
	Teleport Countdown `json:"teleport"`
}

// MirrorState 镜像法师AI计时器
type MirrorState struct {
	Blink  Countdown `json:"blink"`
	Strike Countdown `json:"strike"`
}

// EnemyEntity 敌人实体
type EnemyEntity struct {
	BaseEntity
	Kind      EnemyKind `json:"kind"`
	Health    Health    `json:"health"`
	MoveSpeed float64   `json:"move_speed"`
	Reward    int       `json:"reward"`
	Elite     bool      `json:"elite"`

	// Dying 已发出死亡通知，等待死亡处理移除
	Dying bool `json:"dying"`

	EliteAI  *EliteState  `json:"elite_ai,omitempty"`
	MirrorAI *MirrorState `json:"mirror_ai,omitempty"`
}

// ProjectileKind 投射物类型
type ProjectileKind string

const (
	ProjectileShuriken     ProjectileKind = "shuriken"
	ProjectileBullet       ProjectileKind = "bullet"
	ProjectileBolt         ProjectileKind = "bolt"
	ProjectileExplosion    ProjectileKind = "explosion"
	ProjectileBeam         ProjectileKind = "beam"
	ProjectileNova         ProjectileKind = "nova"
	ProjectileVortex       ProjectileKind = "vortex"
	ProjectileGlobalStrike ProjectileKind = "global_strike"
)

// ForceMode 力场方向
type ForceMode uint8

const (
	// ForcePush 推开
	ForcePush ForceMode = iota + 1
	// ForcePull 拉近
	ForcePull
)

// ForcePayload 力场法术参数
type ForcePayload struct {
	Mode        ForceMode `json:"mode"`
	Origin      Vector2D  `json:"origin"`
	Radius      float64   `json:"radius"`
	Strength    float64   `json:"strength"`
	BonusDamage float64   `json:"bonus_damage"`
}

// ExplosionPayload 延迟爆炸参数
type ExplosionPayload struct {
	Damage   float64 `json:"damage" yaml:"damage"`
	Radius   float64 `json:"radius" yaml:"radius"`
	Lifetime float64 `json:"lifetime" yaml:"lifetime"`
}

// ProjectileEntity 投射物实体
type ProjectileEntity struct {
	BaseEntity
	Kind             ProjectileKind `json:"kind"`
	OwnerID          string         `json:"owner_id"`
	Faction          Faction        `json:"faction"`
	Damage           float64        `json:"damage"`
	DamageMultiplier float64        `json:"damage_multiplier"`
	Speed            float64        `json:"speed"`
	Direction        Vector2D       `json:"direction"`
	CritChance       float64        `json:"crit_chance"`
	CritDamage       float64        `json:"crit_damage"`
	Lifetime         Countdown      `json:"lifetime"`

	IsAreaEffect   bool `json:"is_area_effect"`
	IgnoreGrid     bool `json:"ignore_grid"`
	Hidden         bool `json:"hidden"`
	PendingDespawn bool `json:"pending_despawn"`
	Pooled         bool `json:"-"`

	// HitList 已命中目标，仅范围投射物使用
	HitList map[string]struct{} `json:"-"`

	Force     *ForcePayload     `json:"force,omitempty"`
	Explosion *ExplosionPayload `json:"explosion,omitempty"`
}

// HasHit 目标是否已被命中过
func (p *ProjectileEntity) HasHit(id string) bool {
	_, ok := p.HitList[id]
	return ok
}

// MarkHit 记录命中目标
func (p *ProjectileEntity) MarkHit(id string) {
	if p.HitList == nil {
		p.HitList = make(map[string]struct{})
	}
	p.HitList[id] = struct{}{}
}

// Reset 回收前清理状态，保留HitList的底层存储
func (p *ProjectileEntity) Reset() {
	hits := p.HitList
	for id := range hits {
		delete(hits, id)
	}
	*p = ProjectileEntity{Pooled: true, HitList: hits}
}
