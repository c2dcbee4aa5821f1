// Package protocol 客户端通信协议: 帧结构与编解码
package protocol

// 客户端消息类型
const (
	MsgPlayerInput = "player_input"
	MsgSetStats    = "set_stats"
)

// 服务端消息类型
const (
	MsgGameFrame = "game_frame"
	MsgGameOver  = "game_over"
	MsgError     = "error"
)

// Vector2D 二维坐标
type Vector2D struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// PlayerInput 玩家输入，按键为当前是否按下
type PlayerInput struct {
	Cursor Vector2D `json:"cursor"`
	Move   Vector2D `json:"move"`
	Fire   [2]bool  `json:"fire"`
	Skill  [2]bool  `json:"skill"`
}

// StatsInfo 战斗属性
type StatsInfo struct {
	CritChance        float32 `json:"crit_chance"`
	CritDamage        float32 `json:"crit_damage"`
	Lifesteal         float32 `json:"lifesteal"`
	CooldownReduction float32 `json:"cooldown_reduction"`
	DamageMultiplier  float32 `json:"damage_multiplier"`
}

// WeaponInfo 武器槽状态，冷却为剩余秒数
type WeaponInfo struct {
	Kind          string  `json:"kind"`
	Mode          int32   `json:"mode"`
	Spell         string  `json:"spell,omitempty"`
	FireCooldown  float32 `json:"fire_cooldown"`
	SkillCooldown float32 `json:"skill_cooldown"`
}

// PlayerState 玩家状态
type PlayerState struct {
	Id           string       `json:"id"`
	Position     Vector2D     `json:"position"`
	Rotation     float32      `json:"rotation"`
	Health       float32      `json:"health"`
	MaxHealth    float32      `json:"max_health"`
	Invulnerable bool         `json:"invulnerable"`
	Currency     int32        `json:"currency"`
	Kills        int32        `json:"kills"`
	Stats        StatsInfo    `json:"stats"`
	Weapons      []WeaponInfo `json:"weapons"`
}

// EnemyState 敌人状态
type EnemyState struct {
	Id        string   `json:"id"`
	Kind      string   `json:"kind"`
	Position  Vector2D `json:"position"`
	Rotation  float32  `json:"rotation"`
	Health    float32  `json:"health"`
	MaxHealth float32  `json:"max_health"`
	Elite     bool     `json:"elite"`
}

// ProjectileState 投射物状态
type ProjectileState struct {
	Id       string   `json:"id"`
	Kind     string   `json:"kind"`
	Faction  string   `json:"faction"`
	Position Vector2D `json:"position"`
	Rotation float32  `json:"rotation"`
	Shape    string   `json:"shape"`
	Radius   float32  `json:"radius,omitempty"`
	Length   float32  `json:"length,omitempty"`
	Width    float32  `json:"width,omitempty"`
}

// SwingState 挥砍状态
type SwingState struct {
	Id       string   `json:"id"`
	Position Vector2D `json:"position"`
	Rotation float32  `json:"rotation"`
	Range    float32  `json:"range"`
	Mode     int32    `json:"mode"`
	Phase    string   `json:"phase"`
}

// DamageInfo 伤害数字
type DamageInfo struct {
	EntityId string  `json:"entity_id"`
	Amount   float32 `json:"amount"`
	Crit     bool    `json:"crit"`
}

// DeathInfo 死亡位置
type DeathInfo struct {
	EntityId string   `json:"entity_id"`
	Position Vector2D `json:"position"`
}

// GameFrame 每帧下发的游戏状态
type GameFrame struct {
	Type        string            `json:"type"`
	FrameId     int64             `json:"frame_id"`
	Time        float64           `json:"time"`
	State       string            `json:"state"`
	Wave        int32             `json:"wave"`
	LiveEnemies int32             `json:"live_enemies"`
	Player      *PlayerState      `json:"player,omitempty"`
	Enemies     []EnemyState      `json:"enemies"`
	Projectiles []ProjectileState `json:"projectiles"`
	Swings      []SwingState      `json:"swings"`
	Damage      []DamageInfo      `json:"damage,omitempty"`
	Deaths      []DeathInfo       `json:"deaths,omitempty"`
}

// ErrorMessage 错误通知
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
