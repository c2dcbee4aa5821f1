package protocol

import (
	"math"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// ConvertVector 将模型向量转换为协议坐标
func ConvertVector(v models.Vector2D) Vector2D {
	return Vector2D{X: float32(v.X), Y: float32(v.Y)}
}

// ToModelVector 将协议坐标转换为模型向量
func ToModelVector(v Vector2D) models.Vector2D {
	return models.Vector2D{X: float64(v.X), Y: float64(v.Y)}
}

// ConvertStats 将战斗属性转换为协议消息
func ConvertStats(s models.CombatStats) StatsInfo {
	return StatsInfo{
		CritChance:        float32(s.CritChance),
		CritDamage:        float32(s.CritDamage),
		Lifesteal:         float32(s.Lifesteal),
		CooldownReduction: float32(s.CooldownReduction),
		DamageMultiplier:  float32(s.DamageMultiplier),
	}
}

// ConvertWeapon 将武器槽转换为协议消息，now为模拟时间
func ConvertWeapon(slot *models.WeaponSlot, now, cooldownReduction float64) WeaponInfo {
	info := WeaponInfo{
		Kind:          string(slot.Kind),
		Mode:          int32(slot.Mode),
		FireCooldown:  float32(math.Max(0, slot.EffectiveCooldown(cooldownReduction)-(now-slot.LastFireTime))),
		SkillCooldown: float32(math.Max(0, slot.SkillCooldown-(now-slot.LastSkillTime))),
	}
	if slot.Kind == models.WeaponMagic {
		info.Spell = string(slot.ActiveSpellKind())
	}
	return info
}

// ConvertPlayer 将玩家实体转换为协议消息
func ConvertPlayer(p *models.PlayerEntity, now float64) *PlayerState {
	weapons := make([]WeaponInfo, len(p.Slots))
	for i := range p.Slots {
		weapons[i] = ConvertWeapon(&p.Slots[i], now, p.Stats.CooldownReduction)
	}

	return &PlayerState{
		Id:           p.ID,
		Position:     ConvertVector(p.Position),
		Rotation:     float32(p.Rotation),
		Health:       float32(p.Health.Current),
		MaxHealth:    float32(p.Health.Max),
		Invulnerable: p.Health.Invulnerable(),
		Currency:     int32(p.Currency),
		Kills:        int32(p.Kills),
		Stats:        ConvertStats(p.Stats),
		Weapons:      weapons,
	}
}

// ConvertEnemy 将敌人实体转换为协议消息
func ConvertEnemy(e *models.EnemyEntity) EnemyState {
	return EnemyState{
		Id:        e.ID,
		Kind:      string(e.Kind),
		Position:  ConvertVector(e.Position),
		Rotation:  float32(e.Rotation),
		Health:    float32(e.Health.Current),
		MaxHealth: float32(e.Health.Max),
		Elite:     e.Elite,
	}
}

// ConvertProjectile 将投射物转换为协议消息
func ConvertProjectile(p *models.ProjectileEntity) ProjectileState {
	state := ProjectileState{
		Id:       p.ID,
		Kind:     string(p.Kind),
		Faction:  p.Faction.String(),
		Position: ConvertVector(p.Position),
		Rotation: float32(p.Rotation),
	}

	switch s := p.Shape.(type) {
	case models.Circle:
		state.Shape = models.ShapeCircle.String()
		state.Radius = float32(s.Radius)
	case models.Rectangle:
		state.Shape = models.ShapeRectangle.String()
		state.Length = float32(s.HalfW * 2)
		state.Width = float32(s.HalfH * 2)
	case models.LineSegment:
		state.Shape = models.ShapeLine.String()
		state.Length = float32(s.Length)
		state.Width = float32(s.Width)
	}
	return state
}

// ToCombatStats 将客户端上报的属性转换为模型，未填写的倍率按1处理
func ToCombatStats(s StatsInfo) models.CombatStats {
	stats := models.CombatStats{
		CritChance:        float64(s.CritChance),
		CritDamage:        float64(s.CritDamage),
		Lifesteal:         float64(s.Lifesteal),
		CooldownReduction: float64(s.CooldownReduction),
		DamageMultiplier:  float64(s.DamageMultiplier),
	}
	if stats.CritDamage == 0 {
		stats.CritDamage = 1
	}
	if stats.DamageMultiplier == 0 {
		stats.DamageMultiplier = 1
	}
	return stats
}
