package components

import (
	"image/color"

	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// EnemyComponent 敌人的类型、数值与技能状态
type EnemyComponent struct {
	Type            types.EnemyType
	Elite           bool // 生成时按精英概率掷出
	Speed           float64
	CollisionDamage float64
	Damage          float64
	XPValue         int
	Size            float64
	Color           color.RGBA
	KeepDistance    float64 // 远程敌人与玩家保持的距离，0 表示直接追击
	Zigzag          float64 // 之字形摆动幅度

	// 技能：按声明顺序排列的技能名与剩余冷却
	Abilities []string
	Cooldowns map[string]float64

	// 类型专属的瞬时状态
	ShieldActive          bool
	ShieldTimer           float64
	Dashing               bool
	DashTimer             float64
	DashSpeedMultiplier   float64
	Phased                bool
	PhaseTimer            float64
	Raged                 bool
	Phase                 int // 超级 Boss 阶段 1..4，只增不减
	IsChargingDash        bool
	DashChargeTime        float64
	DashTarget            utils.Vec2
	IsChargingLaser       bool
	LaserChargeTimer      float64
	Stealthed             bool
	BackstabMultiplier    float64 // >0 表示下一次接触伤害的倍率
	MultiAttackTimer      float64
	MultiAttackMultiplier float64
	CurrentSummons        int
	MaxSummons            int
	SummonTypes           []types.EnemyType
	HasExploded           bool

	// Effects 等待 EffectSystem 处理的效果，先进先出
	Effects []events.Effect
}

// HasAbility 检查敌人是否拥有某个技能
func (e *EnemyComponent) HasAbility(name string) bool {
	for _, a := range e.Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// PushEffect 追加效果到队列尾部
func (e *EnemyComponent) PushEffect(effect events.Effect) {
	e.Effects = append(e.Effects, effect)
}

// DrainEffects 取出全部待处理效果并清空队列
func (e *EnemyComponent) DrainEffects() []events.Effect {
	if len(e.Effects) == 0 {
		return nil
	}
	out := e.Effects
	e.Effects = nil
	return out
}

// SpeedModifier 当前移动速度倍率：护盾 0.5 优先于冲刺
func (e *EnemyComponent) SpeedModifier() float64 {
	modifier := 1.0
	if e.Dashing {
		modifier = e.DashSpeedMultiplier
		if modifier <= 0 {
			modifier = 2
		}
	}
	if e.ShieldActive || e.Phased {
		modifier = 0.5
	}
	return modifier
}

// ContactDamage 本次接触造成的伤害（含连击窗口倍率）
func (e *EnemyComponent) ContactDamage() float64 {
	damage := e.CollisionDamage
	if e.MultiAttackTimer > 0 && e.MultiAttackMultiplier > 0 {
		damage *= e.MultiAttackMultiplier
	}
	if e.BackstabMultiplier > 0 {
		damage *= e.BackstabMultiplier
	}
	return damage
}

// VisualState 供渲染层使用的状态标签
func (e *EnemyComponent) VisualState() string {
	switch {
	case e.IsChargingDash || e.IsChargingLaser:
		return "charging"
	case e.Stealthed:
		return "stealthed"
	case e.ShieldActive:
		return "shielded"
	case e.Phased:
		return "phased"
	case e.Dashing:
		return "dashing"
	case e.Raged:
		return "raged"
	}
	return "normal"
}
