package config

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/types"
)

// LevelUnlock 按等级解锁的条目
type LevelUnlock struct {
	Level     int      `yaml:"level"`
	Types     []string `yaml:"types"`
	Abilities []string `yaml:"abilities"`
	Weapons   []string `yaml:"weapons"`
}

// EliteEnhancement 高等级时精英敌人的强化倍率
type EliteEnhancement struct {
	HPMultiplier     float64 `yaml:"hpMultiplier"`
	DamageMultiplier float64 `yaml:"damageMultiplier"`
}

// SpawnWeight 按等级变化的生成权重
type SpawnWeight struct {
	Base         int `yaml:"base"`
	LevelDivisor int `yaml:"levelDivisor"`
	PerStep      int `yaml:"perStep"`
	Min          int `yaml:"min"`
	MinLevel     int `yaml:"minLevel"`
}

// LevelScaling 新生成敌人随玩家等级的属性成长
type LevelScaling struct {
	HPPerLevel     float64 `yaml:"hpPerLevel"`
	DamagePerLevel float64 `yaml:"damagePerLevel"`
	SpeedPerLevel  float64 `yaml:"speedPerLevel"`
}

// ProgressionConfig 等级解锁配置
type ProgressionConfig struct {
	EnemyUnlocks       []LevelUnlock          `yaml:"enemyUnlocks"`
	AbilityUnlocks     []LevelUnlock          `yaml:"abilityUnlocks"`
	WeaponUnlocks      []LevelUnlock          `yaml:"weaponUnlocks"`
	EliteEnhanced      EliteEnhancement       `yaml:"eliteEnhanced"`
	DefaultSpawnWeight int                    `yaml:"defaultSpawnWeight"`
	SpawnWeights       map[string]SpawnWeight `yaml:"spawnWeights"`
	LevelScaling       LevelScaling           `yaml:"levelScaling"`
}

func validateProgressionConfig(cfg *ProgressionConfig) error {
	for _, u := range cfg.EnemyUnlocks {
		for _, name := range u.Types {
			if _, err := types.ParseEnemyType(name); err != nil {
				return fmt.Errorf("enemy unlock at level %d: %w", u.Level, err)
			}
		}
	}
	for _, u := range cfg.WeaponUnlocks {
		for _, name := range u.Weapons {
			if _, err := types.ParseProjectileType(name); err != nil {
				return fmt.Errorf("weapon unlock at level %d: %w", u.Level, err)
			}
		}
	}
	if cfg.EliteEnhanced.HPMultiplier <= 0 || cfg.EliteEnhanced.DamageMultiplier <= 0 {
		return fmt.Errorf("eliteEnhanced multipliers must be positive")
	}
	for name, w := range cfg.SpawnWeights {
		if _, err := types.ParseEnemyType(name); err != nil {
			return fmt.Errorf("spawnWeights: %w", err)
		}
		if w.LevelDivisor < 0 || w.Min < 0 {
			return fmt.Errorf("spawnWeights %s: levelDivisor and min cannot be negative", name)
		}
	}
	return nil
}

// SpawnWeightFor 返回玩家等级 level 时某类型的生成权重
func (c *ProgressionConfig) SpawnWeightFor(t types.EnemyType, level int) int {
	w, ok := c.SpawnWeights[t.String()]
	if !ok {
		return c.DefaultSpawnWeight
	}
	if level < w.MinLevel {
		return 0
	}
	weight := w.Base
	if w.LevelDivisor > 0 {
		weight += (level / w.LevelDivisor) * w.PerStep
	}
	if weight < w.Min {
		weight = w.Min
	}
	return weight
}

// Multipliers 返回等级 level 下的 hp、伤害、速度倍率
func (s LevelScaling) Multipliers(level int) (hp, damage, speed float64) {
	n := float64(level - 1)
	if n < 0 {
		n = 0
	}
	return 1 + n*s.HPPerLevel, 1 + n*s.DamagePerLevel, 1 + n*s.SpeedPerLevel
}

// EnemyUnlockLevel 返回敌人类型的解锁等级
// 第二个返回值为 false 表示该类型不受等级表约束
func (c *ProgressionConfig) EnemyUnlockLevel(t types.EnemyType) (int, bool) {
	for _, u := range c.EnemyUnlocks {
		for _, name := range u.Types {
			if name == t.String() {
				return u.Level, true
			}
		}
	}
	return 0, false
}

// AbilityUnlockLevel 返回技能解锁键对应的等级，未配置返回 false
func (c *ProgressionConfig) AbilityUnlockLevel(key string) (int, bool) {
	for _, u := range c.AbilityUnlocks {
		for _, name := range u.Abilities {
			if name == key {
				return u.Level, true
			}
		}
	}
	return 0, false
}

// WeaponUnlockLevel 返回武器类型的解锁等级，未配置返回 false
func (c *ProgressionConfig) WeaponUnlockLevel(t types.ProjectileType) (int, bool) {
	for _, u := range c.WeaponUnlocks {
		for _, name := range u.Weapons {
			if name == t.String() {
				return u.Level, true
			}
		}
	}
	return 0, false
}
