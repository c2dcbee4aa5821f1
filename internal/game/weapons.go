package game

import (
	"go.uber.org/zap"

	"github.com/jacl-coder/PixelStorm-Survival/internal/data"
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// shurikenSpin 手里剑旋转速度(弧度/秒)
const shurikenSpin = 18.0

// newWeaponSlot 按数值表创建武器槽
func (w *World) newWeaponSlot(kind models.WeaponKind) models.WeaponSlot {
	t := w.tuning
	switch kind {
	case models.WeaponSword:
		return models.NewWeaponSlot(kind, models.SwordNormal, t.Sword.Normal.Cooldown, t.Sword.SkillCooldown)
	case models.WeaponGun:
		return models.NewWeaponSlot(kind, models.GunSingle, t.Gun.Single.Cooldown, t.Gun.SkillCooldown)
	case models.WeaponMagic:
		slot := models.NewWeaponSlot(kind, models.ModeDefault, 0, t.Magic.SkillCooldown)
		slot.Spells = [2]models.SpellKind{t.Player.PrimarySpell, t.Player.SecondarySpell}
		slot.BaseCooldown = w.spellCooldown(slot.ActiveSpellKind())
		return slot
	default:
		return models.NewWeaponSlot(models.WeaponShuriken, models.ModeDefault, t.Shuriken.Cooldown, t.Shuriken.SkillCooldown)
	}
}

// updateWeapons 按输入驱动两只手的武器状态机
// 技能先于攻击判定，切换模式后的攻击使用新模式
func (w *World) updateWeapons() {
	p := w.player
	if p == nil {
		w.log.Debug("没有玩家，跳过武器更新", zap.Int64("frame", w.frame))
		return
	}

	for hand := 0; hand < models.HandCount; hand++ {
		slot := &p.Slots[hand]

		if w.input.Skill[hand].JustPressed && slot.CanSkill(w.now) {
			if w.useSkill(p, slot) {
				slot.LastSkillTime = w.now
			}
		}

		trigger := w.input.Fire[hand].JustPressed
		if slot.Kind == models.WeaponGun && slot.Mode == models.GunRapid {
			trigger = w.input.Fire[hand].Pressed
		}
		if trigger && slot.CanFire(w.now, p.Stats.CooldownReduction) {
			if w.fire(p, slot) {
				slot.LastFireTime = w.now
			}
		}
	}
}

// aim 玩家指向光标的方向，光标与玩家重合时沿当前朝向
func (w *World) aim(p *models.PlayerEntity) models.Vector2D {
	return p.Position.DirectionTo(w.input.Cursor, models.FromAngle(p.Rotation))
}

// fire 攻击，返回是否实际触发(触发才进入冷却)
func (w *World) fire(p *models.PlayerEntity, slot *models.WeaponSlot) bool {
	dir := w.aim(p)
	switch slot.Kind {
	case models.WeaponShuriken:
		t := w.tuning.Shuriken
		w.fireShuriken(playerAttacker(p), p.Position, dir, t.ProjectileTuning, t.Cap)
		return true
	case models.WeaponSword:
		w.fireSword(p, slot, dir)
		return true
	case models.WeaponGun:
		w.fireGun(p, slot, dir)
		return true
	case models.WeaponMagic:
		return w.castSpell(p, slot.ActiveSpellKind(), dir)
	}
	return false
}

// useSkill 技能，返回是否实际触发
func (w *World) useSkill(p *models.PlayerEntity, slot *models.WeaponSlot) bool {
	switch slot.Kind {
	case models.WeaponShuriken:
		return w.shurikenTeleport(p, w.input.Cursor)
	case models.WeaponSword:
		w.toggleSwordMode(slot)
		return true
	case models.WeaponGun:
		w.cycleGunMode(slot)
		return true
	case models.WeaponMagic:
		slot.ActiveSpell = (slot.ActiveSpell + 1) & 1
		slot.BaseCooldown = w.spellCooldown(slot.ActiveSpellKind())
		return true
	}
	return false
}

// fireShuriken 发射手里剑，达到上限时先移除剩余寿命最短的一枚
// 玩家和精英敌人共用，上限按所有者分别计算
func (w *World) fireShuriken(src attacker, pos, dir models.Vector2D, t data.ProjectileTuning, limit int) *models.ProjectileEntity {
	w.evictShurikens(src.ID, limit)
	return w.CreateProjectile(src, projectileSpec{
		Kind:      models.ProjectileShuriken,
		Position:  pos,
		Direction: dir,
		Speed:     t.Speed,
		Damage:    t.Damage,
		Shape:     models.Circle{Radius: t.Radius},
		Lifetime:  t.Lifetime,
		Spin:      shurikenSpin,
	})
}

// evictShurikens 保证新发射后数量不超过limit
// 按剩余寿命淘汰，而非发射顺序；寿命相同时淘汰先发射的
func (w *World) evictShurikens(ownerID string, limit int) {
	if limit <= 0 {
		return
	}
	owned := w.ownedProjectiles(ownerID, models.ProjectileShuriken)
	for len(owned) >= limit {
		victim := 0
		for i := 1; i < len(owned); i++ {
			if owned[i].Lifetime.Remaining() < owned[victim].Lifetime.Remaining() {
				victim = i
			}
		}
		w.removeProjectile(owned[victim])
		owned = append(owned[:victim], owned[victim+1:]...)
	}
}

// shurikenTeleport 传送到离target最近的己方手里剑并收回它
// 没有手里剑时不触发，也不进入冷却
func (w *World) shurikenTeleport(p *models.PlayerEntity, target models.Vector2D) bool {
	s := w.nearestOwned(p.ID, models.ProjectileShuriken, target)
	if s == nil {
		return false
	}
	p.Position = s.Position
	w.removeProjectile(s)
	return true
}

// gunTuning 当前模式的弹道参数
func (w *World) gunTuning(mode models.WeaponMode) data.ProjectileTuning {
	switch mode {
	case models.GunShotgun:
		return w.tuning.Gun.Shotgun
	case models.GunRapid:
		return w.tuning.Gun.Rapid
	default:
		return w.tuning.Gun.Single
	}
}

// cycleGunMode 单发 -> 散弹 -> 连射 -> 单发
func (w *World) cycleGunMode(slot *models.WeaponSlot) {
	switch slot.Mode {
	case models.GunSingle:
		slot.Mode = models.GunShotgun
	case models.GunShotgun:
		slot.Mode = models.GunRapid
	default:
		slot.Mode = models.GunSingle
	}
	slot.BaseCooldown = w.gunTuning(slot.Mode).Cooldown
}

// fireGun 单发一枚；散弹固定角度扇形；连射带随机偏移
func (w *World) fireGun(p *models.PlayerEntity, slot *models.WeaponSlot, dir models.Vector2D) {
	t := w.gunTuning(slot.Mode)
	src := playerAttacker(p)
	bullet := func(d models.Vector2D) {
		w.CreateProjectile(src, projectileSpec{
			Kind:      models.ProjectileBullet,
			Position:  p.Position,
			Direction: d,
			Speed:     t.Speed,
			Damage:    t.Damage,
			Shape:     models.Circle{Radius: t.Radius},
			Lifetime:  t.Lifetime,
		})
	}

	switch slot.Mode {
	case models.GunShotgun:
		n := w.tuning.Gun.Pellets
		spread := degToRad(w.tuning.Gun.SpreadDeg)
		for i := 0; i < n; i++ {
			offset := (float64(i) - float64(n-1)/2) * spread
			bullet(dir.Rotate(offset))
		}
	case models.GunRapid:
		jitter := degToRad(w.tuning.Gun.JitterDeg)
		bullet(dir.Rotate((w.rng.Float64()*2 - 1) * jitter))
	default:
		bullet(dir)
	}
}
