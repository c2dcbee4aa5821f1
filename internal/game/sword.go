package game

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/collision"
	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// 挥砍状态
const (
	swingSwinging   = "swinging"
	swingRecovering = "recovering"
	swingDone       = "done"

	eventRecover = "recover"
	eventFinish  = "finish"
)

// Swing 剑的挥砍实体
// 挥砍阶段朝向从 基准角-90° 线性转到 基准角+90°(乘以旋转方向)，之后进入短暂收招
type Swing struct {
	models.BaseEntity
	OwnerID   string            `json:"owner_id"`
	Faction   models.Faction    `json:"faction"`
	Mode      models.WeaponMode `json:"mode"`
	BaseAngle float64           `json:"base_angle"`
	Spin      float64           `json:"spin"`   // +1 或 -1
	Facing    models.Vector2D   `json:"facing"` // 初始朝向，用于前方半平面判定

	Damage           float64 `json:"damage"`
	DamageMultiplier float64 `json:"damage_multiplier"`
	CritChance       float64 `json:"crit_chance"`
	CritDamage       float64 `json:"crit_damage"`
	Range            float64 `json:"range"`
	Duration         float64 `json:"duration"`
	Recovery         float64 `json:"recovery"`
	Elapsed          float64 `json:"elapsed"`
	DamageDealt      bool    `json:"damage_dealt"`

	fsm *fsm.FSM
}

func newSwing(src attacker, pos models.Vector2D, facing models.Vector2D, spin float64, mode models.WeaponMode, t data.SwingTuning, recovery float64) *Swing {
	s := &Swing{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntitySwing,
			Position:  pos,
			Shape:     models.Circle{Radius: t.Range},
			CreatedAt: time.Now(),
		},
		OwnerID:          src.ID,
		Faction:          src.Faction,
		Mode:             mode,
		BaseAngle:        facing.Angle(),
		Spin:             spin,
		Facing:           facing,
		Damage:           t.Damage,
		DamageMultiplier: src.Stats.DamageMultiplier,
		CritChance:       src.Stats.CritChance,
		CritDamage:       src.Stats.CritDamage,
		Range:            t.Range,
		Duration:         t.Duration,
		Recovery:         recovery,
	}
	s.Rotation = s.angleAt(0)
	s.fsm = fsm.NewFSM(
		swingSwinging,
		fsm.Events{
			{Name: eventRecover, Src: []string{swingSwinging}, Dst: swingRecovering},
			{Name: eventFinish, Src: []string{swingRecovering}, Dst: swingDone},
		},
		fsm.Callbacks{
			"enter_" + swingRecovering: func(_ context.Context, _ *fsm.Event) {
				s.Elapsed = 0
			},
		},
	)
	return s
}

// State 当前阶段
func (s *Swing) State() string {
	return s.fsm.Current()
}

// Done 挥砍是否已结束
func (s *Swing) Done() bool {
	return s.fsm.Is(swingDone)
}

// angleAt 挥砍进度frac处的朝向角
func (s *Swing) angleAt(frac float64) float64 {
	return s.BaseAngle + s.Spin*(-math.Pi/2+math.Pi*frac)
}

// advance 推进挥砍状态机，返回本次是否需要结算伤害
func (s *Swing) advance(ctx context.Context, dt float64) (bool, error) {
	switch s.fsm.Current() {
	case swingSwinging:
		s.Elapsed += dt
		frac := 1.0
		if s.Duration > 0 {
			frac = math.Min(1, s.Elapsed/s.Duration)
		}
		s.Rotation = s.angleAt(frac)

		strike := !s.DamageDealt
		s.DamageDealt = true
		if s.Elapsed >= s.Duration {
			if err := s.fsm.Event(ctx, eventRecover); err != nil {
				return strike, err
			}
		}
		return strike, nil
	case swingRecovering:
		s.Elapsed += dt
		if s.Elapsed >= s.Recovery {
			return false, s.fsm.Event(ctx, eventFinish)
		}
	}
	return false, nil
}

// swordTuning 当前模式的挥砍参数
func (w *World) swordTuning(mode models.WeaponMode) data.SwingTuning {
	if mode == models.SwordShattered {
		return w.tuning.Sword.Shattered
	}
	return w.tuning.Sword.Normal
}

// toggleSwordMode 普通 <-> 碎剑
func (w *World) toggleSwordMode(slot *models.WeaponSlot) {
	if slot.Mode == models.SwordShattered {
		slot.Mode = models.SwordNormal
	} else {
		slot.Mode = models.SwordShattered
	}
	slot.BaseCooldown = w.swordTuning(slot.Mode).Cooldown
}

// fireSword 生成挥砍，旋转方向随机取±1
func (w *World) fireSword(p *models.PlayerEntity, slot *models.WeaponSlot, dir models.Vector2D) *Swing {
	spin := 1.0
	if w.rng.Intn(2) == 0 {
		spin = -1
	}
	s := newSwing(playerAttacker(p), p.Position, dir, spin, slot.Mode, w.swordTuning(slot.Mode), w.tuning.Sword.Recovery)
	w.swings.add(s)
	w.hooks.spawned(s)
	return s
}

// updateSwings 挥砍跟随所有者移动，第一次更新时结算伤害
func (w *World) updateSwings(dt float64) {
	ctx := context.Background()
	w.swings.each(func(s *Swing) {
		if p := w.player; p != nil && p.ID == s.OwnerID {
			s.Position = p.Position
		}
		strike, err := s.advance(ctx, dt)
		if err != nil {
			w.log.Warn("挥砍状态切换失败", zap.String("swing_id", s.ID), zap.Error(err))
		}
		if strike {
			w.sweep(s)
		}
	})
}

// sweep 对范围内且位于初始朝向前方的敌人产生碰撞事件
func (w *World) sweep(s *Swing) {
	min, max := s.Shape.Bounds(s.Position)
	for _, id := range w.grid.QueryAABB(min, max) {
		e, ok := w.enemies.get(id)
		if !ok || e.Dying {
			continue
		}
		if !collision.Collide(s.Shape, s.Position, e.Shape, e.Position) {
			continue
		}
		if !collision.InFrontHalfPlane(s.Position, s.Facing, e.Position) {
			continue
		}
		w.collisions = append(w.collisions, CollisionEvent{
			ProjectileID: s.ID,
			TargetID:     id,
			Position:     e.Position,
			Direction:    s.Position.DirectionTo(e.Position, s.Facing),
		})
	}
}
