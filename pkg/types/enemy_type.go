// Package types 定义共享的基础类型
package types

import "fmt"

// EnemyType 定义敌人的类型
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota

	EnemyBasic    // 普通敌人
	EnemyTank     // 坦克：护盾、践踏
	EnemyFast     // 快速：冲刺、相位
	EnemyBoss     // Boss：狂暴、召唤、冲击波
	EnemySniper   // 狙击手
	EnemySwarmer  // 蜂群
	EnemyHealer   // 治疗者
	EnemyBomber   // 自爆者
	EnemyMegaBoss // 超级 Boss：多阶段
	EnemyProjectile
	EnemyLaser
	EnemyMortar
	EnemySummoner
	EnemyAssassin
)

var enemyTypeNames = map[EnemyType]string{
	EnemyBasic:      "basic",
	EnemyTank:       "tank",
	EnemyFast:       "fast",
	EnemyBoss:       "boss",
	EnemySniper:     "sniper",
	EnemySwarmer:    "swarmer",
	EnemyHealer:     "healer",
	EnemyBomber:     "bomber",
	EnemyMegaBoss:   "mega_boss",
	EnemyProjectile: "projectile",
	EnemyLaser:      "laser",
	EnemyMortar:     "mortar",
	EnemySummoner:   "summoner",
	EnemyAssassin:   "assassin",
}

// AllEnemyTypes 按声明顺序返回所有有效敌人类型
func AllEnemyTypes() []EnemyType {
	return []EnemyType{
		EnemyBasic, EnemyTank, EnemyFast, EnemyBoss, EnemySniper, EnemySwarmer, EnemyHealer,
		EnemyBomber, EnemyMegaBoss, EnemyProjectile, EnemyLaser, EnemyMortar, EnemySummoner, EnemyAssassin,
	}
}

// String 返回配置文件中使用的类型键
func (t EnemyType) String() string {
	if name, ok := enemyTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsElite 精英敌人享有更高的道具掉落率
func (t EnemyType) IsElite() bool {
	switch t {
	case EnemyTank, EnemyFast, EnemyBoss, EnemyMegaBoss:
		return true
	}
	return false
}

// IsBoss 检查是否为 Boss 级敌人
func (t EnemyType) IsBoss() bool {
	return t == EnemyBoss || t == EnemyMegaBoss
}

// ParseEnemyType 将配置键解析为敌人类型
func ParseEnemyType(name string) (EnemyType, error) {
	for t, n := range enemyTypeNames {
		if n == name {
			return t, nil
		}
	}
	return EnemyUnknown, fmt.Errorf("unknown enemy type %q", name)
}
