package events

import (
	"image/color"

	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// Kind 表现层事件的种类，用于订阅
type Kind string

const (
	KindEnemyDeath       Kind = "EnemyDeath"
	KindExplosion        Kind = "Explosion"
	KindDamageNumber     Kind = "DamageNumber"
	KindAnnouncement     Kind = "Announcement"
	KindComboMilestone   Kind = "ComboMilestone"
	KindLevelUp          Kind = "LevelUp"
	KindPowerUpCollected Kind = "PowerUpCollected"
	KindUnlock           Kind = "Unlock"
	KindEnemyAbility     Kind = "EnemyAbility"
	KindLaser            Kind = "Laser"
)

// Event 模拟核心产生的表现层事件
type Event interface {
	Kind() Kind
}

// EnemyDeath 敌人死亡
type EnemyDeath struct {
	ID    ecs.EntityID
	Type  types.EnemyType
	Pos   utils.Vec2
	Color color.RGBA
}

// Explosion 爆炸（子弹、自爆者、迫击炮、践踏、冲击波）
type Explosion struct {
	Pos    utils.Vec2
	Radius float64
}

// DamageNumber 伤害飘字
type DamageNumber struct {
	Pos      utils.Vec2
	Amount   int
	Critical bool
	ToPlayer bool
}

// Announcement 屏幕公告（波次开始、Boss 击败等）
type Announcement struct {
	Text  string
	Color color.RGBA
}

// ComboMilestone 连击达到里程碑
type ComboMilestone struct {
	Count int
}

// LevelUp 玩家升级
type LevelUp struct {
	Level int
}

// PowerUpCollected 拾取道具
type PowerUpCollected struct {
	Type types.PowerUpType
	Pos  utils.Vec2
}

// Unlock 等级解锁通知
type Unlock struct {
	Message string
}

// EnemyAbility 敌人技能的可视化提示（蓄力、隐身、阶段变化等）
type EnemyAbility struct {
	ID     ecs.EntityID
	Name   string
	Pos    utils.Vec2
	Target utils.Vec2
}

// Laser 激光束
type Laser struct {
	From, To utils.Vec2
}

func (EnemyDeath) Kind() Kind       { return KindEnemyDeath }
func (Explosion) Kind() Kind        { return KindExplosion }
func (DamageNumber) Kind() Kind     { return KindDamageNumber }
func (Announcement) Kind() Kind     { return KindAnnouncement }
func (ComboMilestone) Kind() Kind   { return KindComboMilestone }
func (LevelUp) Kind() Kind          { return KindLevelUp }
func (PowerUpCollected) Kind() Kind { return KindPowerUpCollected }
func (Unlock) Kind() Kind           { return KindUnlock }
func (EnemyAbility) Kind() Kind     { return KindEnemyAbility }
func (Laser) Kind() Kind            { return KindLaser }
