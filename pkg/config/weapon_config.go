package config

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/types"
)

// WeaponStats 单个武器类型的基础属性
type WeaponStats struct {
	Damage      float64 `yaml:"damage"`
	FireRate    float64 `yaml:"fireRate"` // 每秒发射次数
	Count       int     `yaml:"count"`
	Lifetime    float64 `yaml:"lifetime"`
	SpreadAngle float64 `yaml:"spreadAngle"` // 度，0 表示使用默认值
	MaxBounces  int     `yaml:"maxBounces"`
}

// ExplosionTuning 爆炸伤害参数：伤害倍率 = DamageBase + level*DamagePerLevel
// 范围伤害 = 伤害 * AreaFraction，半径 = RadiusBase + (level-1)*RadiusPerLevel
type ExplosionTuning struct {
	DamageBase     float64 `yaml:"damageBase"`
	DamagePerLevel float64 `yaml:"damagePerLevel"`
	AreaFraction   float64 `yaml:"areaFraction"`
	RadiusBase     float64 `yaml:"radiusBase"`
	RadiusPerLevel float64 `yaml:"radiusPerLevel"`
}

// HomingTuning 追踪参数
type HomingTuning struct {
	StrengthBase     float64 `yaml:"strengthBase"`
	StrengthPerLevel float64 `yaml:"strengthPerLevel"`
	Range            float64 `yaml:"range"`
}

// WeaponConfig 武器配置文件结构
type WeaponConfig struct {
	DefaultSpeed       float64                `yaml:"defaultSpeed"`
	DefaultSpreadAngle float64                `yaml:"defaultSpreadAngle"`
	DefaultSize        float64                `yaml:"defaultSize"`
	LevelDamageStep    float64                `yaml:"levelDamageStep"`
	CritChance         float64                `yaml:"critChance"`
	CritMultiplier     float64                `yaml:"critMultiplier"`
	Explosive          ExplosionTuning        `yaml:"explosive"`
	HybridExplosive    ExplosionTuning        `yaml:"hybridExplosive"`
	Homing             HomingTuning           `yaml:"homing"`
	HybridHoming       HomingTuning           `yaml:"hybridHoming"`
	Weapons            map[string]WeaponStats `yaml:"weapons"`
}

func validateWeaponConfig(cfg *WeaponConfig) error {
	if cfg.DefaultSpeed <= 0 {
		return fmt.Errorf("defaultSpeed must be positive, got %f", cfg.DefaultSpeed)
	}
	for name, w := range cfg.Weapons {
		if _, err := types.ParseProjectileType(name); err != nil {
			return err
		}
		if w.FireRate <= 0 {
			return fmt.Errorf("weapon %s: fireRate must be positive, got %f", name, w.FireRate)
		}
		if w.Count < 1 {
			return fmt.Errorf("weapon %s: count must be at least 1, got %d", name, w.Count)
		}
		if w.Lifetime <= 0 {
			return fmt.Errorf("weapon %s: lifetime must be positive, got %f", name, w.Lifetime)
		}
	}
	return nil
}

// GetWeaponStats 获取武器属性，不存在时回退到 basic
func (c *WeaponConfig) GetWeaponStats(t types.ProjectileType) WeaponStats {
	if w, ok := c.Weapons[t.String()]; ok {
		return w
	}
	if w, ok := c.Weapons[types.ProjectileBasic.String()]; ok {
		return w
	}
	return WeaponStats{Damage: 10, FireRate: 1, Count: 1, Lifetime: 2}
}
