package config

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/types"
)

// PowerUpStats 单个道具类型的效果
type PowerUpStats struct {
	Duration float64 `yaml:"duration"` // 0 表示即时效果
	Value    float64 `yaml:"value"`
	Weight   float64 `yaml:"weight"`
}

// PowerUpConfig 道具配置文件结构
type PowerUpConfig struct {
	Lifetime        float64                 `yaml:"lifetime"`
	SpawnInterval   float64                 `yaml:"spawnInterval"`
	SpawnMargin     float64                 `yaml:"spawnMargin"`
	Size            float64                 `yaml:"size"`
	DropChance      float64                 `yaml:"dropChance"`
	EliteDropChance float64                 `yaml:"eliteDropChance"`
	EliteDropPool   []string                `yaml:"eliteDropPool"`
	PowerUps        map[string]PowerUpStats `yaml:"powerUps"`
}

func validatePowerUpConfig(cfg *PowerUpConfig) error {
	if cfg.DropChance < 0 || cfg.DropChance > 1 || cfg.EliteDropChance < 0 || cfg.EliteDropChance > 1 {
		return fmt.Errorf("drop chances must be within [0,1]")
	}
	for name, p := range cfg.PowerUps {
		if _, err := types.ParsePowerUpType(name); err != nil {
			return err
		}
		if p.Duration < 0 || p.Weight < 0 {
			return fmt.Errorf("power-up %s: duration and weight cannot be negative", name)
		}
	}
	for _, name := range cfg.EliteDropPool {
		if _, err := types.ParsePowerUpType(name); err != nil {
			return fmt.Errorf("eliteDropPool: %w", err)
		}
	}
	return nil
}

// GetPowerUpStats 获取道具效果，未配置返回零值和 false
func (c *PowerUpConfig) GetPowerUpStats(t types.PowerUpType) (PowerUpStats, bool) {
	p, ok := c.PowerUps[t.String()]
	return p, ok
}

// EliteTypes 返回精英掉落池中的道具类型
func (c *PowerUpConfig) EliteTypes() []types.PowerUpType {
	result := make([]types.PowerUpType, 0, len(c.EliteDropPool))
	for _, name := range c.EliteDropPool {
		if t, err := types.ParsePowerUpType(name); err == nil {
			result = append(result, t)
		}
	}
	return result
}
