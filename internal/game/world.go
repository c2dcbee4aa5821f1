package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
	"github.com/jacl-coder/PixelStorm-Survival/internal/spatial"
)

// GameState 对局状态
type GameState string

const (
	// StatePlaying 进行中
	StatePlaying GameState = "playing"
	// StateOver 玩家死亡，对局结束
	StateOver GameState = "over"
)

// steerRate 敌人速度向目标速度收敛的速率(每秒)，击退冲量随之衰减
const steerRate = 4.0

// ButtonState 按键状态，由输入层去抖后提供
type ButtonState struct {
	Pressed     bool `json:"pressed"`
	JustPressed bool `json:"just_pressed"`
}

// Input 每个tick的玩家输入
type Input struct {
	Cursor models.Vector2D               `json:"cursor"` // 世界坐标
	Move   models.Vector2D               `json:"move"`
	Fire   [models.HandCount]ButtonState `json:"fire"`
	Skill  [models.HandCount]ButtonState `json:"skill"`
}

// Options 世界创建参数
type Options struct {
	Seed     int64
	CellSize float64
	Logger   *zap.Logger
	Hooks    Hooks
}

// World 战斗模拟核心
// 单线程执行，Tick内各阶段顺序固定，不做任何加锁
type World struct {
	tuning *data.Tuning
	log    *zap.Logger
	rng    *rand.Rand
	hooks  Hooks
	grid   *spatial.Grid
	pool   *ExplosionPool

	now   float64
	frame int64
	state GameState
	input Input

	player      *models.PlayerEntity
	enemies     *store[*models.EnemyEntity]
	projectiles *store[*models.ProjectileEntity]
	swings      *store[*Swing]

	// 本tick的事件队列
	collisions []CollisionEvent
	deaths     []DeathEvent

	// 本tick对外可见的事件
	damageLog []DamageEvent
	deathLog  []DeathEvent
}

// NewWorld 创建世界，不包含玩家
func NewWorld(tuning *data.Tuning, opts Options) *World {
	if tuning == nil {
		tuning = data.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &World{
		tuning:      tuning,
		log:         log,
		rng:         rand.New(rand.NewSource(seed)),
		hooks:       opts.Hooks,
		grid:        spatial.NewGrid(opts.CellSize),
		pool:        NewExplosionPool(tuning.Pool.ExplosionCapacity),
		state:       StatePlaying,
		enemies:     newStore[*models.EnemyEntity](),
		projectiles: newStore[*models.ProjectileEntity](),
		swings:      newStore[*Swing](),
	}
}

// Now 当前模拟时间(秒)
func (w *World) Now() float64 { return w.now }

// Frame 已执行的tick数
func (w *World) Frame() int64 { return w.frame }

// State 对局状态
func (w *World) State() GameState { return w.state }

// Tuning 数值表
func (w *World) Tuning() *data.Tuning { return w.tuning }

// Player 当前玩家，可能为空
func (w *World) Player() *models.PlayerEntity { return w.player }

// Enemy 按ID查找敌人
func (w *World) Enemy(id string) (*models.EnemyEntity, bool) { return w.enemies.get(id) }

// Projectile 按ID查找投射物
func (w *World) Projectile(id string) (*models.ProjectileEntity, bool) { return w.projectiles.get(id) }

// Pool 爆炸对象池
func (w *World) Pool() *ExplosionPool { return w.pool }

// SpawnPlayer 在pos处创建玩家，已存在时替换
func (w *World) SpawnPlayer(pos models.Vector2D) *models.PlayerEntity {
	pt := w.tuning.Player
	p := &models.PlayerEntity{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntityPlayer,
			Position:  pos,
			Shape:     models.Circle{Radius: pt.Radius},
			CreatedAt: time.Now(),
		},
		Health:    models.NewHealth(pt.MaxHealth, pt.Invulnerable),
		Stats:     pt.Stats.Clamped(),
		MoveSpeed: pt.MoveSpeed,
	}
	p.Slots[models.HandLeft] = w.newWeaponSlot(pt.LeftWeapon)
	p.Slots[models.HandRight] = w.newWeaponSlot(pt.RightWeapon)

	w.player = p
	w.state = StatePlaying
	w.hooks.spawned(p)
	w.log.Debug("玩家进入战场", zap.String("player_id", p.ID))
	return p
}

// EquipWeapon 更换某只手的武器
func (w *World) EquipWeapon(hand models.Hand, kind models.WeaponKind) bool {
	if w.player == nil || hand < 0 || hand >= models.HandCount {
		return false
	}
	w.player.Slots[hand] = w.newWeaponSlot(kind)
	return true
}

// SetCombatStats 由成长系统写入战斗属性，超出范围的值会被截断
func (w *World) SetCombatStats(stats models.CombatStats) {
	if w.player == nil {
		w.log.Debug("没有玩家，忽略属性更新")
		return
	}
	w.player.Stats = stats.Clamped()
}

// HealPlayer 商店/治疗回复生命，返回实际回复量
func (w *World) HealPlayer(amount float64) float64 {
	if w.player == nil {
		return 0
	}
	return w.player.Health.Heal(amount)
}

// SpawnEnemy 生成敌人，供波次管理调用
func (w *World) SpawnEnemy(kind models.EnemyKind, pos models.Vector2D) *models.EnemyEntity {
	et := w.tuning.Enemy(kind)
	e := &models.EnemyEntity{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntityEnemy,
			Position:  pos,
			Shape:     models.Circle{Radius: et.Radius},
			CreatedAt: time.Now(),
		},
		Kind:      kind,
		Health:    models.NewHealth(et.MaxHealth, 0),
		MoveSpeed: et.MoveSpeed,
		Reward:    et.Reward,
		Elite:     kind == models.EnemyElite,
	}

	switch kind {
	case models.EnemyElite:
		e.EliteAI = &models.EliteState{
			Ranged:   models.NewCountdown(w.tuning.Elite.RangedInterval),
			Teleport: models.NewCountdown(w.tuning.Elite.TeleportInterval),
		}
	case models.EnemyMirrorCaster:
		e.MirrorAI = &models.MirrorState{
			Blink:  models.NewCountdown(w.tuning.Mirror.BlinkInterval),
			Strike: models.NewCountdown(w.tuning.Mirror.StrikeInterval),
		}
	}

	w.enemies.add(e)
	w.hooks.spawned(e)
	return e
}

// LiveEnemies 存活敌人数量，供波次管理判断阶段切换
func (w *World) LiveEnemies() int {
	n := 0
	w.enemies.each(func(e *models.EnemyEntity) {
		if !e.Dying {
			n++
		}
	})
	return n
}

// Tick 推进一帧
// 顺序: 积分 -> 重建网格 -> 武器/AI/挥砍 -> 碰撞检测 -> 伤害结算与反应 -> 死亡处理 -> 生命周期
func (w *World) Tick(dt float64, in Input) {
	if w.state == StateOver || dt <= 0 {
		return
	}
	w.frame++
	w.now += dt
	w.input = in
	w.damageLog = w.damageLog[:0]
	w.deathLog = w.deathLog[:0]

	w.integrate(dt)
	w.rebuildGrid()

	w.updateWeapons()
	w.updateAI(dt)
	w.updateSwings(dt)

	w.detectCollisions()
	w.resolveCollisions()
	w.handleDeaths()

	w.updateLifetimes(dt)
}

// integrate 移动积分，以及玩家无敌时间
func (w *World) integrate(dt float64) {
	p := w.player
	if p != nil {
		p.Health.Invulnerability.Tick(dt)
		p.Velocity.Linear = w.input.Move.Normalize().Scale(p.MoveSpeed)
		p.Position = p.Position.Add(p.Velocity.Linear.Scale(dt))
		if aim := w.input.Cursor.Sub(p.Position); aim.LenSq() > 0 {
			p.Rotation = aim.Angle()
		}
	} else {
		w.log.Debug("没有玩家，跳过玩家移动", zap.Int64("frame", w.frame))
	}

	blend := math.Min(1, steerRate*dt)
	w.enemies.each(func(e *models.EnemyEntity) {
		if e.Dying {
			return
		}
		var desired models.Vector2D
		if p != nil {
			desired = e.Position.DirectionTo(p.Position, models.Vector2D{}).Scale(e.MoveSpeed)
		}
		e.Velocity.Linear = e.Velocity.Linear.Add(desired.Sub(e.Velocity.Linear).Scale(blend))
		e.Position = e.Position.Add(e.Velocity.Linear.Scale(dt))
		if e.Velocity.Linear.LenSq() > 0 {
			e.Rotation = e.Velocity.Linear.Angle()
		}
	})

	w.projectiles.each(func(pr *models.ProjectileEntity) {
		pr.Position = pr.Position.Add(pr.Velocity.Linear.Scale(dt))
		pr.Rotation += pr.Velocity.Angular * dt
	})
}

// rebuildGrid 根据当前敌人位置重建网格
func (w *World) rebuildGrid() {
	w.grid.Clear()
	w.enemies.each(func(e *models.EnemyEntity) {
		if !e.Dying {
			w.grid.Insert(e.ID, e.Position)
		}
	})
}

// attacker 攻击发起者的阵营与属性
type attacker struct {
	ID      string
	Faction models.Faction
	Stats   models.CombatStats
}

func playerAttacker(p *models.PlayerEntity) attacker {
	return attacker{ID: p.ID, Faction: models.FactionPlayer, Stats: p.Stats}
}

// enemyAttacker 敌人不暴击，伤害倍率为1
func enemyAttacker(e *models.EnemyEntity) attacker {
	return attacker{
		ID:      e.ID,
		Faction: models.FactionEnemy,
		Stats:   models.CombatStats{CritDamage: 1, DamageMultiplier: 1},
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
