// combat.go

package models

// Faction 阵营，用于防止友军伤害
type Faction uint8

const (
	// FactionPlayer 玩家阵营
	FactionPlayer Faction = iota + 1
	// FactionEnemy 敌人阵营
	FactionEnemy
)

// String 阵营名
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// Health 生命值
// 不变量: 0 <= Current <= Max
type Health struct {
	Current         float64   `json:"current"`
	Max             float64   `json:"max"`
	Invulnerability Countdown `json:"invulnerability"`
}

// NewHealth 创建满血生命值，invuln为受击后的无敌时长
func NewHealth(max, invuln float64) Health {
	return Health{
		Current:         max,
		Max:             max,
		Invulnerability: ReadyCountdown(invuln),
	}
}

// Invulnerable 是否处于无敌时间
func (h *Health) Invulnerable() bool {
	return !h.Invulnerability.IsReady()
}

// Damage 扣除生命值，返回实际扣除量
func (h *Health) Damage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > h.Current {
		amount = h.Current
	}
	h.Current -= amount
	return amount
}

// Heal 恢复生命值，返回实际恢复量
func (h *Health) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if h.Current+amount > h.Max {
		amount = h.Max - h.Current
	}
	h.Current += amount
	return amount
}

// IsDead 是否死亡
func (h *Health) IsDead() bool {
	return h.Current <= 0
}

// CombatStats 战斗属性，由外部成长系统写入
// 暴击率[0,1]，暴击伤害>=1，吸血[0,0.5]，冷却缩减[0,0.8]
type CombatStats struct {
	CritChance        float64 `json:"crit_chance" yaml:"crit_chance"`
	CritDamage        float64 `json:"crit_damage" yaml:"crit_damage"`
	Lifesteal         float64 `json:"lifesteal" yaml:"lifesteal"`
	CooldownReduction float64 `json:"cooldown_reduction" yaml:"cooldown_reduction"`
	DamageMultiplier  float64 `json:"damage_multiplier" yaml:"damage_multiplier"`
}

// DefaultCombatStats 初始战斗属性
func DefaultCombatStats() CombatStats {
	return CombatStats{
		CritChance:       0.05,
		CritDamage:       1.5,
		DamageMultiplier: 1,
	}
}

// Clamped 返回限制在合法区间内的属性
func (s CombatStats) Clamped() CombatStats {
	s.CritChance = clamp(s.CritChance, 0, 1)
	if s.CritDamage < 1 {
		s.CritDamage = 1
	}
	s.Lifesteal = clamp(s.Lifesteal, 0, 0.5)
	s.CooldownReduction = clamp(s.CooldownReduction, 0, 0.8)
	if s.DamageMultiplier < 0 {
		s.DamageMultiplier = 0
	}
	return s
}

// Clamp 将v限制在[lo,hi]
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
