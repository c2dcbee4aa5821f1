// Package data 战斗数值表
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// Tuning 战斗数值，字段为空时使用 Default 中的值
type Tuning struct {
	Player   PlayerTuning   `yaml:"player"`
	Shuriken ShurikenTuning `yaml:"shuriken"`
	Sword    SwordTuning    `yaml:"sword"`
	Gun      GunTuning      `yaml:"gun"`
	Magic    MagicTuning    `yaml:"magic"`
	Elite    EliteTuning    `yaml:"elite"`
	Mirror   MirrorTuning   `yaml:"mirror"`
	Pool     PoolTuning     `yaml:"pool"`
	Waves    WaveTuning     `yaml:"waves"`

	Enemies map[models.EnemyKind]EnemyTuning `yaml:"enemies"`
}

// PlayerTuning 玩家基础属性
type PlayerTuning struct {
	MaxHealth      float64            `yaml:"max_health"`
	Invulnerable   float64            `yaml:"invulnerable"` // 受击无敌时长(秒)
	Radius         float64            `yaml:"radius"`
	MoveSpeed      float64            `yaml:"move_speed"`
	Stats          models.CombatStats `yaml:"stats"`
	LeftWeapon     models.WeaponKind  `yaml:"left_weapon"`
	RightWeapon    models.WeaponKind  `yaml:"right_weapon"`
	PrimarySpell   models.SpellKind   `yaml:"primary_spell"`
	SecondarySpell models.SpellKind   `yaml:"secondary_spell"`
}

// ProjectileTuning 普通投射物参数
type ProjectileTuning struct {
	Damage   float64 `yaml:"damage"`
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
	Cooldown float64 `yaml:"cooldown"`
}

// ShurikenTuning 手里剑
type ShurikenTuning struct {
	ProjectileTuning `yaml:",inline"`
	Cap              int     `yaml:"cap"` // 每个所有者的存活上限
	SkillCooldown    float64 `yaml:"skill_cooldown"`
}

// SwingTuning 挥砍参数
type SwingTuning struct {
	Damage   float64 `yaml:"damage"`
	Range    float64 `yaml:"range"`
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
}

// SwordTuning 剑
type SwordTuning struct {
	Normal        SwingTuning `yaml:"normal"`
	Shattered     SwingTuning `yaml:"shattered"`
	Recovery      float64     `yaml:"recovery"`
	SkillCooldown float64     `yaml:"skill_cooldown"`
}

// GunTuning 枪
type GunTuning struct {
	Single        ProjectileTuning `yaml:"single"`
	Shotgun       ProjectileTuning `yaml:"shotgun"`
	Rapid         ProjectileTuning `yaml:"rapid"`
	Pellets       int              `yaml:"pellets"`
	SpreadDeg     float64          `yaml:"spread_deg"` // 相邻弹丸夹角
	JitterDeg     float64          `yaml:"jitter_deg"` // 连射随机偏移上限
	SkillCooldown float64          `yaml:"skill_cooldown"`
}

// BoltTuning 飞弹
type BoltTuning struct {
	ProjectileTuning `yaml:",inline"`
	Explosion        models.ExplosionPayload `yaml:"explosion"`
}

// BeamTuning 光束
type BeamTuning struct {
	Damage   float64 `yaml:"damage"`
	Length   float64 `yaml:"length"`
	Width    float64 `yaml:"width"`
	Lifetime float64 `yaml:"lifetime"`
	Cooldown float64 `yaml:"cooldown"`
}

// ForceTuning 推/拉力场
type ForceTuning struct {
	Damage      float64 `yaml:"damage"`
	BonusDamage float64 `yaml:"bonus_damage"`
	Radius      float64 `yaml:"radius"`
	Strength    float64 `yaml:"strength"`
	Lifetime    float64 `yaml:"lifetime"`
	Cooldown    float64 `yaml:"cooldown"`
}

// BlinkTuning 闪现
type BlinkTuning struct {
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
}

// StrikeTuning 全场打击，命中不受半径限制，Radius只决定表现范围
type StrikeTuning struct {
	Damage   float64 `yaml:"damage"`
	Radius   float64 `yaml:"radius"`
	Lifetime float64 `yaml:"lifetime"`
	Cooldown float64 `yaml:"cooldown"`
}

// MagicTuning 法术
type MagicTuning struct {
	SkillCooldown float64      `yaml:"skill_cooldown"`
	Bolt          BoltTuning   `yaml:"bolt"`
	Beam          BeamTuning   `yaml:"beam"`
	Nova          ForceTuning  `yaml:"nova"`
	Vortex        ForceTuning  `yaml:"vortex"`
	Blink         BlinkTuning  `yaml:"blink"`
	GlobalStrike  StrikeTuning `yaml:"global_strike"`
}

// EnemyTuning 敌人属性
type EnemyTuning struct {
	MaxHealth float64 `yaml:"max_health"`
	Radius    float64 `yaml:"radius"`
	MoveSpeed float64 `yaml:"move_speed"`
	Reward    int     `yaml:"reward"`
}

// EliteTuning 精英AI
type EliteTuning struct {
	RangedInterval   float64          `yaml:"ranged_interval"`
	TeleportInterval float64          `yaml:"teleport_interval"`
	TeleportChance   float64          `yaml:"teleport_chance"`
	SpreadDeg        float64          `yaml:"spread_deg"`
	ShurikenCap      int              `yaml:"shuriken_cap"`
	Shuriken         ProjectileTuning `yaml:"shuriken"`
}

// MirrorTuning 镜像法师AI
type MirrorTuning struct {
	BlinkInterval  float64      `yaml:"blink_interval"`
	BlinkMin       float64      `yaml:"blink_min"`
	BlinkRange     float64      `yaml:"blink_range"`
	StrikeInterval float64      `yaml:"strike_interval"`
	Strike         StrikeTuning `yaml:"strike"`
}

// PoolTuning 对象池
type PoolTuning struct {
	ExplosionCapacity int `yaml:"explosion_capacity"`
}

// WaveTuning 波次生成，每波数量 = 基础值 + 每波增量 * (波次-1)
type WaveTuning struct {
	Rest          float64 `yaml:"rest"` // 两波之间的间隔(秒)
	SpawnMin      float64 `yaml:"spawn_min"`
	SpawnMax      float64 `yaml:"spawn_max"`
	Grunts        int     `yaml:"grunts"`
	GruntsPerWave int     `yaml:"grunts_per_wave"`
	EliteFrom     int     `yaml:"elite_from"`
	ElitesPerWave float64 `yaml:"elites_per_wave"`
	MirrorFrom    int     `yaml:"mirror_from"`
	MirrorEvery   int     `yaml:"mirror_every"`
}

// Default 内置数值
func Default() *Tuning {
	return &Tuning{
		Player: PlayerTuning{
			MaxHealth:      100,
			Invulnerable:   1.0,
			Radius:         16,
			MoveSpeed:      220,
			Stats:          models.DefaultCombatStats(),
			LeftWeapon:     models.WeaponShuriken,
			RightWeapon:    models.WeaponMagic,
			PrimarySpell:   models.SpellBolt,
			SecondarySpell: models.SpellNova,
		},
		Shuriken: ShurikenTuning{
			ProjectileTuning: ProjectileTuning{Damage: 30, Speed: 720, Lifetime: 3.0, Radius: 8, Cooldown: 0.25},
			Cap:              12,
			SkillCooldown:    2.0,
		},
		Sword: SwordTuning{
			Normal:        SwingTuning{Damage: 45, Range: 90, Duration: 0.22, Cooldown: 0.45},
			Shattered:     SwingTuning{Damage: 24, Range: 130, Duration: 0.32, Cooldown: 0.55},
			Recovery:      0.12,
			SkillCooldown: 1.0,
		},
		Gun: GunTuning{
			Single:        ProjectileTuning{Damage: 22, Speed: 900, Lifetime: 1.2, Radius: 5, Cooldown: 0.35},
			Shotgun:       ProjectileTuning{Damage: 12, Speed: 820, Lifetime: 0.5, Radius: 5, Cooldown: 0.85},
			Rapid:         ProjectileTuning{Damage: 9, Speed: 950, Lifetime: 1.0, Radius: 4, Cooldown: 0.09},
			Pellets:       7,
			SpreadDeg:     8,
			JitterDeg:     4,
			SkillCooldown: 0.6,
		},
		Magic: MagicTuning{
			SkillCooldown: 0.4,
			Bolt: BoltTuning{
				ProjectileTuning: ProjectileTuning{Damage: 25, Speed: 520, Lifetime: 1.6, Radius: 10, Cooldown: 0.8},
				Explosion:        models.ExplosionPayload{Damage: 35, Radius: 90, Lifetime: 0.2},
			},
			Beam:         BeamTuning{Damage: 40, Length: 520, Width: 24, Lifetime: 0.1, Cooldown: 1.2},
			Nova:         ForceTuning{Damage: 20, BonusDamage: 30, Radius: 160, Strength: 650, Lifetime: 0.15, Cooldown: 2.5},
			Vortex:       ForceTuning{Damage: 15, BonusDamage: 25, Radius: 260, Strength: 500, Lifetime: 0.15, Cooldown: 3.0},
			Blink:        BlinkTuning{Range: 320, Cooldown: 1.8},
			GlobalStrike: StrikeTuning{Damage: 50, Radius: 4000, Lifetime: 0.2, Cooldown: 12},
		},
		Elite: EliteTuning{
			RangedInterval:   1.8,
			TeleportInterval: 3.5,
			TeleportChance:   0.35,
			SpreadDeg:        12,
			ShurikenCap:      6,
			Shuriken:         ProjectileTuning{Damage: 10, Speed: 420, Lifetime: 3.0, Radius: 7},
		},
		Mirror: MirrorTuning{
			BlinkInterval:  4.0,
			BlinkMin:       120,
			BlinkRange:     280,
			StrikeInterval: 6.0,
			Strike:         StrikeTuning{Damage: 12, Radius: 360, Lifetime: 0.2},
		},
		Pool: PoolTuning{ExplosionCapacity: 32},
		Waves: WaveTuning{
			Rest:          3,
			SpawnMin:      420,
			SpawnMax:      640,
			Grunts:        6,
			GruntsPerWave: 3,
			EliteFrom:     3,
			ElitesPerWave: 0.5,
			MirrorFrom:    5,
			MirrorEvery:   2,
		},
		Enemies: map[models.EnemyKind]EnemyTuning{
			models.EnemyGrunt:        {MaxHealth: 50, Radius: 14, MoveSpeed: 90, Reward: 1},
			models.EnemyElite:        {MaxHealth: 180, Radius: 20, MoveSpeed: 70, Reward: 5},
			models.EnemyMirrorCaster: {MaxHealth: 120, Radius: 18, MoveSpeed: 60, Reward: 4},
		},
	}
}

// Load 从YAML文件加载数值，覆盖内置值
func Load(path string) (*Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数值表失败: %w", err)
	}
	return Parse(raw)
}

// Parse 解析YAML数值，覆盖内置值
func Parse(raw []byte) (*Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("解析数值表失败: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Enemy 获取敌人属性，未配置时回退到普通敌人
func (t *Tuning) Enemy(kind models.EnemyKind) EnemyTuning {
	if e, ok := t.Enemies[kind]; ok {
		return e
	}
	return t.Enemies[models.EnemyGrunt]
}

// Validate 检查数值合法性
func (t *Tuning) Validate() error {
	if t.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.max_health 必须大于0")
	}
	if t.Shuriken.Cap <= 0 || t.Elite.ShurikenCap <= 0 {
		return fmt.Errorf("手里剑上限必须大于0")
	}
	if t.Gun.Pellets <= 0 {
		return fmt.Errorf("gun.pellets 必须大于0")
	}
	if t.Mirror.BlinkMin < 0 || t.Mirror.BlinkMin > t.Mirror.BlinkRange {
		return fmt.Errorf("mirror.blink_min 必须在 [0, blink_range] 内")
	}
	if t.Waves.SpawnMin < 0 || t.Waves.SpawnMin > t.Waves.SpawnMax {
		return fmt.Errorf("waves.spawn_min 必须在 [0, spawn_max] 内")
	}
	if _, ok := t.Enemies[models.EnemyGrunt]; !ok {
		return fmt.Errorf("缺少 %s 敌人数值", models.EnemyGrunt)
	}
	for kind, e := range t.Enemies {
		if e.MaxHealth <= 0 || e.Radius <= 0 {
			return fmt.Errorf("敌人 %s 数值非法", kind)
		}
	}
	return nil
}
