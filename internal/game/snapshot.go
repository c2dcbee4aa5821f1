package game

import (
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
	"github.com/jacl-coder/PixelStorm-Survival/internal/protocol"
)

// SwingView 挥砍只读视图
type SwingView struct {
	ID       string            `json:"id"`
	Position models.Vector2D   `json:"position"`
	Rotation float64           `json:"rotation"`
	Range    float64           `json:"range"`
	Mode     models.WeaponMode `json:"mode"`
	Phase    string            `json:"phase"`
}

// Snapshot 一帧结束时的只读状态副本，可交给其他协程使用
type Snapshot struct {
	FrameID     int64                     `json:"frame_id"`
	Time        float64                   `json:"time"`
	State       GameState                 `json:"state"`
	Wave        int                       `json:"wave"`
	LiveEnemies int                       `json:"live_enemies"`
	Player      *models.PlayerEntity      `json:"player,omitempty"`
	Enemies     []models.EnemyEntity      `json:"enemies"`
	Projectiles []models.ProjectileEntity `json:"projectiles"`
	Swings      []SwingView               `json:"swings"`
	Damage      []DamageEvent             `json:"damage"`
	Deaths      []DeathEvent              `json:"deaths"`
}

// Snapshot 复制当前状态；隐藏的投射物不包含在内
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		FrameID:     w.frame,
		Time:        w.now,
		State:       w.state,
		LiveEnemies: w.LiveEnemies(),
		Enemies:     make([]models.EnemyEntity, 0, w.enemies.len()),
		Projectiles: make([]models.ProjectileEntity, 0, w.projectiles.len()),
		Swings:      make([]SwingView, 0, w.swings.len()),
		Damage:      append([]DamageEvent(nil), w.damageLog...),
		Deaths:      append([]DeathEvent(nil), w.deathLog...),
	}

	if w.player != nil {
		p := *w.player
		s.Player = &p
	}

	w.enemies.each(func(e *models.EnemyEntity) {
		c := *e
		if e.EliteAI != nil {
			ai := *e.EliteAI
			c.EliteAI = &ai
		}
		if e.MirrorAI != nil {
			ai := *e.MirrorAI
			c.MirrorAI = &ai
		}
		s.Enemies = append(s.Enemies, c)
	})

	w.projectiles.each(func(p *models.ProjectileEntity) {
		if p.Hidden {
			return
		}
		c := *p
		c.HitList = nil
		s.Projectiles = append(s.Projectiles, c)
	})

	w.swings.each(func(sw *Swing) {
		s.Swings = append(s.Swings, SwingView{
			ID:       sw.ID,
			Position: sw.Position,
			Rotation: sw.Rotation,
			Range:    sw.Range,
			Mode:     sw.Mode,
			Phase:    sw.State(),
		})
	})

	return s
}

// ToFrame 转换为下行协议帧
func (s *Snapshot) ToFrame() *protocol.GameFrame {
	frame := &protocol.GameFrame{
		Type:        protocol.MsgGameFrame,
		FrameId:     s.FrameID,
		Time:        s.Time,
		State:       string(s.State),
		Wave:        int32(s.Wave),
		LiveEnemies: int32(s.LiveEnemies),
		Enemies:     make([]protocol.EnemyState, 0, len(s.Enemies)),
		Projectiles: make([]protocol.ProjectileState, 0, len(s.Projectiles)),
		Swings:      make([]protocol.SwingState, 0, len(s.Swings)),
	}
	if s.State == StateOver {
		frame.Type = protocol.MsgGameOver
	}

	if s.Player != nil {
		frame.Player = protocol.ConvertPlayer(s.Player, s.Time)
	}
	for i := range s.Enemies {
		frame.Enemies = append(frame.Enemies, protocol.ConvertEnemy(&s.Enemies[i]))
	}
	for i := range s.Projectiles {
		frame.Projectiles = append(frame.Projectiles, protocol.ConvertProjectile(&s.Projectiles[i]))
	}
	for _, sw := range s.Swings {
		frame.Swings = append(frame.Swings, protocol.SwingState{
			Id:       sw.ID,
			Position: protocol.ConvertVector(sw.Position),
			Rotation: float32(sw.Rotation),
			Range:    float32(sw.Range),
			Mode:     int32(sw.Mode),
			Phase:    sw.Phase,
		})
	}
	for _, d := range s.Damage {
		frame.Damage = append(frame.Damage, protocol.DamageInfo{
			EntityId: d.EntityID,
			Amount:   float32(d.Amount),
			Crit:     d.IsCrit,
		})
	}
	for _, d := range s.Deaths {
		frame.Deaths = append(frame.Deaths, protocol.DeathInfo{
			EntityId: d.EntityID,
			Position: protocol.ConvertVector(d.Position),
		})
	}
	return frame
}
