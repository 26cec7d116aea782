// Package events 定义敌人技能效果与表现层事件
//
// Effect 是每个敌人自己的 FIFO 队列中的条目，由 AbilitySystem 产生、EffectSystem 消费；
// Event 是整局共享队列中的条目，由模拟核心产生、由渲染/音效/飘字等外部协作者消费。
// 两者都是封闭的联合类型：接口带有未导出的标记方法，包外无法新增变体。
package events

import (
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// Effect 敌人技能产生的待处理效果
type Effect interface {
	isEffect()
}

// HealEffect 治疗半径内的其他敌人
type HealEffect struct {
	Radius float64
	Amount int
}

// ExplosionEffect 自爆者爆炸
type ExplosionEffect struct {
	Pos    utils.Vec2
	Radius float64
	Damage float64
}

// ShootEffect 向目标发射一枚敌方子弹
type ShootEffect struct {
	Target utils.Vec2
	Damage float64
	Speed  float64
}

// LaserChargeEffect 激光开始蓄力（纯表现）
type LaserChargeEffect struct {
	Duration float64
}

// LaserFireEffect 激光发射，线段判定
type LaserFireEffect struct {
	From   utils.Vec2
	To     utils.Vec2
	Width  float64
	Damage float64
}

// MortarFireEffect 向目标投射迫击炮弹，落点爆炸
type MortarFireEffect struct {
	Target utils.Vec2
	Radius float64
	Damage float64
	Speed  float64
}

// SummonEffect 在召唤者附近生成一个敌人
type SummonEffect struct {
	Types []types.EnemyType
}

// StealthEffect 进入隐身
type StealthEffect struct{}

// BackstabEffect 退出隐身，下一次接触伤害乘以 Multiplier
type BackstabEffect struct {
	Multiplier float64
}

// DashChargeEffect 超级 Boss 开始蓄力冲刺，Target 为快照位置
type DashChargeEffect struct {
	Target utils.Vec2
}

// DashExecuteEffect 超级 Boss 冲刺到快照位置
type DashExecuteEffect struct {
	From utils.Vec2
	To   utils.Vec2
}

// StompEffect 坦克践踏，以自身为中心的范围伤害
type StompEffect struct {
	Radius float64
	Damage float64
}

// ShockwaveEffect Boss 冲击波，以自身为中心的范围伤害
type ShockwaveEffect struct {
	Radius float64
	Damage float64
}

// PhaseChangeEffect 超级 Boss 进入新阶段
type PhaseChangeEffect struct {
	Phase int
}

// PhaseDashEffect 超级 Boss 相位闪现
type PhaseDashEffect struct {
	From utils.Vec2
	To   utils.Vec2
}

// MultiAttackEffect 超级 Boss 连击窗口开启
type MultiAttackEffect struct {
	Duration float64
}

func (HealEffect) isEffect()        {}
func (ExplosionEffect) isEffect()   {}
func (ShootEffect) isEffect()       {}
func (LaserChargeEffect) isEffect() {}
func (LaserFireEffect) isEffect()   {}
func (MortarFireEffect) isEffect()  {}
func (SummonEffect) isEffect()      {}
func (StealthEffect) isEffect()     {}
func (BackstabEffect) isEffect()    {}
func (DashChargeEffect) isEffect()  {}
func (DashExecuteEffect) isEffect() {}
func (StompEffect) isEffect()       {}
func (ShockwaveEffect) isEffect()   {}
func (PhaseChangeEffect) isEffect() {}
func (PhaseDashEffect) isEffect()   {}
func (MultiAttackEffect) isEffect() {}

// EffectName 返回效果的名称（用于日志）
func EffectName(e Effect) string {
	switch e.(type) {
	case HealEffect:
		return "heal"
	case ExplosionEffect:
		return "explosion"
	case ShootEffect:
		return "shoot"
	case LaserChargeEffect:
		return "laser_charge"
	case LaserFireEffect:
		return "laser_fire"
	case MortarFireEffect:
		return "mortar_fire"
	case SummonEffect:
		return "summon"
	case StealthEffect:
		return "stealth"
	case BackstabEffect:
		return "backstab"
	case DashChargeEffect:
		return "dash_charge"
	case DashExecuteEffect:
		return "dash_execute"
	case StompEffect:
		return "stomp"
	case ShockwaveEffect:
		return "shockwave"
	case PhaseChangeEffect:
		return "phase_change"
	case PhaseDashEffect:
		return "phase_dash"
	case MultiAttackEffect:
		return "multi_attack"
	}
	return "unknown"
}
