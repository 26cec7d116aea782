package components

import "github.com/decker502/bulletheaven/pkg/types"

// ActiveEffect 生效中的道具效果
type ActiveEffect struct {
	Remaining float64 // 剩余时间（秒）
	Magnitude float64 // 效果数值（倍率或次数）
}

// PlayerComponent 玩家专属状态
// 基础属性由升级修改，有效属性 = 基础属性叠加道具效果，每次效果变化后重新计算
type PlayerComponent struct {
	BaseSpeed    float64
	BaseDamage   float64
	BaseFireRate float64

	Speed    float64 // 有效移动速度
	Damage   float64 // 有效伤害
	FireRate float64 // 有效射速

	// 初始伤害与射速，有效值相对它们的比例作用于武器
	StartDamage   float64
	StartFireRate float64

	ProjectileSpeed float64
	PickupRange     float64
	Piercing        bool // 升级获得的永久穿透

	XP            int
	Level         int
	XPToNextLevel int

	Effects map[types.PowerUpType]*ActiveEffect

	IsShooting bool
	ShootTimer float64
}

// HasEffect 检查道具效果是否生效
func (p *PlayerComponent) HasEffect(t types.PowerUpType) bool {
	_, ok := p.Effects[t]
	return ok
}

// EffectMagnitude 返回效果数值，未生效时返回 fallback
func (p *PlayerComponent) EffectMagnitude(t types.PowerUpType, fallback float64) float64 {
	if e, ok := p.Effects[t]; ok {
		return e.Magnitude
	}
	return fallback
}

// ShieldActive 护盾道具：受到的伤害减半
func (p *PlayerComponent) ShieldActive() bool {
	return p.HasEffect(types.PowerUpShield)
}

// Invincible 无敌道具：不受伤害
func (p *PlayerComponent) Invincible() bool {
	return p.HasEffect(types.PowerUpInvincibility)
}

// RecomputeStats 根据基础属性和生效中的道具重新计算有效属性
func (p *PlayerComponent) RecomputeStats() {
	p.Speed = p.BaseSpeed
	p.Damage = p.BaseDamage
	p.FireRate = p.BaseFireRate

	if e, ok := p.Effects[types.PowerUpSpeed]; ok {
		p.Speed = float64(int(p.BaseSpeed * e.Magnitude))
	}
	if e, ok := p.Effects[types.PowerUpDamage]; ok {
		p.Damage = float64(int(p.BaseDamage * e.Magnitude))
	}
	if e, ok := p.Effects[types.PowerUpRapidFire]; ok {
		p.FireRate = p.BaseFireRate * e.Magnitude
	}
}

// DamageScale 有效伤害相对初始伤害的倍率
func (p *PlayerComponent) DamageScale() float64 {
	if p.StartDamage <= 0 {
		return 1
	}
	return p.Damage / p.StartDamage
}

// FireRateScale 有效射速相对初始射速的倍率
func (p *PlayerComponent) FireRateScale() float64 {
	if p.StartFireRate <= 0 {
		return 1
	}
	return p.FireRate / p.StartFireRate
}
