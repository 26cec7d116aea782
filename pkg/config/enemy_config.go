package config

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/types"
)

// AbilityConfig 单个敌人技能的参数
// 未使用的字段保持零值，由对应的触发规则决定读取哪些字段
type AbilityConfig struct {
	Name            string  `yaml:"name"`            // 技能名（如 shield、dash）
	InitialCooldown float64 `yaml:"initialCooldown"` // 生成时的初始冷却（秒）
	Cooldown        float64 `yaml:"cooldown"`        // 触发后重置的冷却（秒）
	MinRange        float64 `yaml:"minRange"`        // 触发距离下限（不含）
	MaxRange        float64 `yaml:"maxRange"`        // 触发距离上限（不含），0 表示不限
	HpBelow         float64 `yaml:"hpBelow"`         // 血量比例低于该值触发，0 表示不检查
	Duration        float64 `yaml:"duration"`        // 状态持续时间（秒）
	Damage          float64 `yaml:"damage"`          // 技能伤害，0 表示使用敌人的 damage
	Radius          float64 `yaml:"radius"`          // 作用半径 / 激光宽度 / 相位冲刺停止距离
	Amount          int     `yaml:"amount"`          // 治疗量
	ChargeTime      float64 `yaml:"chargeTime"`      // 蓄力时间（秒）
	Speed           float64 `yaml:"speed"`           // 发射物速度
	Multiplier      float64 `yaml:"multiplier"`      // 速度或伤害倍率
	Unlock          string  `yaml:"unlock"`          // 需要的技能解锁键，空表示始终可用
}

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	MaxHP                 int             `yaml:"maxHp"`
	Speed                 float64         `yaml:"speed"`
	Size                  float64         `yaml:"size"`
	CollisionDamage       int             `yaml:"collisionDamage"`
	Damage                float64         `yaml:"damage"` // 远程/爆炸攻击伤害
	XPValue               int             `yaml:"xpValue"`
	Color                 []int           `yaml:"color"`
	KeepDistance          float64         `yaml:"keepDistance"` // 远程敌人保持的距离，0 表示直接追击
	Zigzag                float64         `yaml:"zigzag"`       // 之字形移动幅度
	ExplosionRadius       float64         `yaml:"explosionRadius"`
	RageThreshold         float64         `yaml:"rageThreshold"`
	PhaseThresholds       []float64       `yaml:"phaseThresholds"`
	PhaseSpeedMultiplier  float64         `yaml:"phaseSpeedMultiplier"`
	PhaseDamageMultiplier float64         `yaml:"phaseDamageMultiplier"`
	PhaseColors           [][]int         `yaml:"phaseColors"`
	MaxSummons            int             `yaml:"maxSummons"`
	SummonTypes           []string        `yaml:"summonTypes"`
	Abilities             []AbilityConfig `yaml:"abilities"`
}

// EnemyConfig 敌人配置文件结构
type EnemyConfig struct {
	DefaultSummonTypes   []string              `yaml:"defaultSummonTypes"`
	EnemyProjectileSpeed float64               `yaml:"enemyProjectileSpeed"`
	EnemyProjectileSize  float64               `yaml:"enemyProjectileSize"`
	Enemies              map[string]EnemyStats `yaml:"enemies"`
}

// validateEnemyConfig 验证敌人配置的完整性和合法性
func validateEnemyConfig(cfg *EnemyConfig) error {
	if len(cfg.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	for name, stats := range cfg.Enemies {
		if _, err := types.ParseEnemyType(name); err != nil {
			return err
		}
		if stats.MaxHP <= 0 {
			return fmt.Errorf("enemy %s: maxHp must be positive, got %d", name, stats.MaxHP)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %f", name, stats.Speed)
		}
		if stats.Size <= 0 {
			return fmt.Errorf("enemy %s: size must be positive, got %f", name, stats.Size)
		}
		if stats.CollisionDamage < 0 {
			return fmt.Errorf("enemy %s: collisionDamage cannot be negative, got %d", name, stats.CollisionDamage)
		}
		for i := 1; i < len(stats.PhaseThresholds); i++ {
			if stats.PhaseThresholds[i] >= stats.PhaseThresholds[i-1] {
				return fmt.Errorf("enemy %s: phaseThresholds must be strictly decreasing", name)
			}
		}
		for _, t := range stats.SummonTypes {
			if _, err := types.ParseEnemyType(t); err != nil {
				return fmt.Errorf("enemy %s: %w", name, err)
			}
		}
		seen := make(map[string]bool)
		for _, a := range stats.Abilities {
			if a.Name == "" {
				return fmt.Errorf("enemy %s: ability name is required", name)
			}
			if seen[a.Name] {
				return fmt.Errorf("enemy %s: duplicate ability %s", name, a.Name)
			}
			seen[a.Name] = true
			if a.Cooldown < 0 || a.InitialCooldown < 0 {
				return fmt.Errorf("enemy %s: ability %s cooldown cannot be negative", name, a.Name)
			}
		}
	}

	for _, t := range cfg.DefaultSummonTypes {
		if _, err := types.ParseEnemyType(t); err != nil {
			return fmt.Errorf("defaultSummonTypes: %w", err)
		}
	}
	return nil
}

// GetEnemyStats 获取指定敌人类型的属性
// 如果类型不存在，返回 nil 和 false
func (c *EnemyConfig) GetEnemyStats(t types.EnemyType) (*EnemyStats, bool) {
	stats, ok := c.Enemies[t.String()]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// SummonTypesFor 返回召唤者可召唤的类型列表，未配置时使用默认列表
func (c *EnemyConfig) SummonTypesFor(stats *EnemyStats) []types.EnemyType {
	names := c.DefaultSummonTypes
	if stats != nil && len(stats.SummonTypes) > 0 {
		names = stats.SummonTypes
	}
	result := make([]types.EnemyType, 0, len(names))
	for _, n := range names {
		if t, err := types.ParseEnemyType(n); err == nil {
			result = append(result, t)
		}
	}
	return result
}

// Ability 按名称查找技能配置
func (s *EnemyStats) Ability(name string) (*AbilityConfig, bool) {
	for i := range s.Abilities {
		if s.Abilities[i].Name == name {
			return &s.Abilities[i], true
		}
	}
	return nil, false
}
