// weapon.go

package models

// WeaponKind 武器类型
type WeaponKind string

const (
	// WeaponShuriken 手里剑
	WeaponShuriken WeaponKind = "shuriken"
	// WeaponSword 剑
	WeaponSword WeaponKind = "sword"
	// WeaponGun 枪
	WeaponGun WeaponKind = "gun"
	// WeaponMagic 法术
	WeaponMagic WeaponKind = "magic"
)

// WeaponMode 武器模式，取值依武器类型而定
type WeaponMode uint8

const (
	// ModeDefault 无模式武器(手里剑、法术)
	ModeDefault WeaponMode = 0

	// SwordNormal 普通剑: 窄弧、高伤害
	SwordNormal WeaponMode = 1
	// SwordShattered 碎剑: 宽弧、低伤害
	SwordShattered WeaponMode = 2

	// GunSingle 单发
	GunSingle WeaponMode = 1
	// GunShotgun 散弹，固定7向
	GunShotgun WeaponMode = 2
	// GunRapid 连射，按住自动开火
	GunRapid WeaponMode = 3
)

// SpellKind 法术类型
type SpellKind string

const (
	// SpellBolt 飞弹，命中后延迟爆炸
	SpellBolt SpellKind = "bolt"
	// SpellBeam 瞬发光束
	SpellBeam SpellKind = "beam"
	// SpellNova 以自身为中心的推力爆发
	SpellNova SpellKind = "nova"
	// SpellVortex 以自身为中心的拉力爆发
	SpellVortex SpellKind = "vortex"
	// SpellBlink 传送到光标
	SpellBlink SpellKind = "blink"
	// SpellGlobalStrike 全场打击
	SpellGlobalStrike SpellKind = "global_strike"
)

// Hand 武器槽位
type Hand int

const (
	// HandLeft 左手
	HandLeft Hand = 0
	// HandRight 右手
	HandRight Hand = 1
	// HandCount 槽位数量
	HandCount = 2
)

// neverUsed 未使用过的时间戳
const neverUsed = -1e9

// WeaponSlot 武器槽状态
type WeaponSlot struct {
	Kind          WeaponKind `json:"kind"`
	Mode          WeaponMode `json:"mode"`
	LastFireTime  float64    `json:"last_fire_time"`
	LastSkillTime float64    `json:"last_skill_time"`
	BaseCooldown  float64    `json:"base_cooldown"`
	SkillCooldown float64    `json:"skill_cooldown"`

	// 法术槽: 主/副
	Spells      [2]SpellKind `json:"spells,omitempty"`
	ActiveSpell int          `json:"active_spell"`
}

// NewWeaponSlot 创建武器槽
func NewWeaponSlot(kind WeaponKind, mode WeaponMode, baseCooldown, skillCooldown float64) WeaponSlot {
	return WeaponSlot{
		Kind:          kind,
		Mode:          mode,
		LastFireTime:  neverUsed,
		LastSkillTime: neverUsed,
		BaseCooldown:  baseCooldown,
		SkillCooldown: skillCooldown,
	}
}

// EffectiveCooldown 实际攻击冷却；只有法术受冷却缩减影响
func (w *WeaponSlot) EffectiveCooldown(cooldownReduction float64) float64 {
	if w.Kind != WeaponMagic {
		return w.BaseCooldown
	}
	return w.BaseCooldown * (1 - Clamp(cooldownReduction, 0, 0.8))
}

// CanFire 攻击是否就绪
func (w *WeaponSlot) CanFire(now, cooldownReduction float64) bool {
	return now-w.LastFireTime >= w.EffectiveCooldown(cooldownReduction)
}

// CanSkill 技能是否就绪
func (w *WeaponSlot) CanSkill(now float64) bool {
	return now-w.LastSkillTime >= w.SkillCooldown
}

// ActiveSpellKind 当前法术
func (w *WeaponSlot) ActiveSpellKind() SpellKind {
	return w.Spells[w.ActiveSpell&1]
}
