package config

import (
	"fmt"
	"math"

	"github.com/decker502/bulletheaven/pkg/types"
)

// WaveUnlock 波次类型解锁阈值
type WaveUnlock struct {
	Wave  int      `yaml:"wave"`
	Types []string `yaml:"types"`
}

// WaveTable 波次生成参数（来自 waves.yaml）
type WaveTable struct {
	TotalWaves          int          `yaml:"totalWaves"`
	PreparationDuration float64      `yaml:"preparationDuration"`
	BreakDuration       float64      `yaml:"breakDuration"`
	BonusXPPerWave      int          `yaml:"bonusXpPerWave"`
	BossWaveEvery       int          `yaml:"bossWaveEvery"`
	MegaBossWaveEvery   int          `yaml:"megaBossWaveEvery"`
	SpawnMargin         float64      `yaml:"spawnMargin"`
	BaseEnemyCount      int          `yaml:"baseEnemyCount"`
	EnemiesPerWave      int          `yaml:"enemiesPerWave"`
	BaseSpawnInterval   float64      `yaml:"baseSpawnInterval"`
	SpawnIntervalStep   float64      `yaml:"spawnIntervalStep"`
	MinSpawnInterval    float64      `yaml:"minSpawnInterval"`
	BaseEliteChance     float64      `yaml:"baseEliteChance"`
	EliteChanceStep     float64      `yaml:"eliteChanceStep"`
	MaxEliteChance      float64      `yaml:"maxEliteChance"`
	DifficultyStep      float64      `yaml:"difficultyStep"`
	BaseDuration        float64      `yaml:"baseDuration"`
	DurationPerWave     float64      `yaml:"durationPerWave"`
	Unlocks             []WaveUnlock `yaml:"unlocks"`
}

// WaveConfig 单个波次的配置（由 WaveTable 生成）
type WaveConfig struct {
	Number               int
	EnemyCount           int
	SpawnInterval        float64 // 两次生成之间的秒数
	EliteChance          float64
	BossWave             bool
	MegaBossWave         bool
	EnemyTypes           []types.EnemyType
	DifficultyMultiplier float64
	Duration             float64
}

// validateWaveTable 验证波次表
func validateWaveTable(t *WaveTable) error {
	if t.TotalWaves < 1 {
		return fmt.Errorf("totalWaves must be at least 1, got %d", t.TotalWaves)
	}
	if t.MinSpawnInterval <= 0 {
		return fmt.Errorf("minSpawnInterval must be positive, got %f", t.MinSpawnInterval)
	}
	if t.PreparationDuration < 0 || t.BreakDuration < 0 {
		return fmt.Errorf("phase durations cannot be negative")
	}
	last := 0
	for _, u := range t.Unlocks {
		if u.Wave <= last {
			return fmt.Errorf("wave unlock thresholds must be strictly increasing, got %d after %d", u.Wave, last)
		}
		last = u.Wave
		for _, name := range u.Types {
			if _, err := types.ParseEnemyType(name); err != nil {
				return fmt.Errorf("wave unlock %d: %w", u.Wave, err)
			}
		}
	}
	return nil
}

// AvailableTypes 返回第 wave 波可用的敌人类型（所有阈值 <= wave 的并集，按解锁顺序）
// 没有任何阈值匹配时返回 basic
func (t *WaveTable) AvailableTypes(wave int) []types.EnemyType {
	result := make([]types.EnemyType, 0)
	for _, u := range t.Unlocks {
		if wave < u.Wave {
			break
		}
		for _, name := range u.Types {
			if et, err := types.ParseEnemyType(name); err == nil {
				result = append(result, et)
			}
		}
	}
	if len(result) == 0 {
		result = append(result, types.EnemyBasic)
	}
	return result
}

// Wave 生成第 n 波的配置
func (t *WaveTable) Wave(n int) WaveConfig {
	fn := float64(n)
	return WaveConfig{
		Number:               n,
		EnemyCount:           t.BaseEnemyCount + t.EnemiesPerWave*n,
		SpawnInterval:        math.Max(t.MinSpawnInterval, t.BaseSpawnInterval-t.SpawnIntervalStep*fn),
		EliteChance:          math.Min(t.MaxEliteChance, t.BaseEliteChance+t.EliteChanceStep*fn),
		BossWave:             t.BossWaveEvery > 0 && n%t.BossWaveEvery == 0,
		MegaBossWave:         t.MegaBossWaveEvery > 0 && n%t.MegaBossWaveEvery == 0,
		EnemyTypes:           t.AvailableTypes(n),
		DifficultyMultiplier: 1 + (fn-1)*t.DifficultyStep,
		Duration:             t.BaseDuration + t.DurationPerWave*fn,
	}
}

// Waves 生成全部波次配置，下标 0 对应第 1 波
func (t *WaveTable) Waves() []WaveConfig {
	result := make([]WaveConfig, 0, t.TotalWaves)
	for n := 1; n <= t.TotalWaves; n++ {
		result = append(result, t.Wave(n))
	}
	return result
}
