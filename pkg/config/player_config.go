package config

import "fmt"

// PlayerStats 玩家初始属性
type PlayerStats struct {
	MaxHP               int     `yaml:"maxHp"`
	Speed               float64 `yaml:"speed"`
	Damage              float64 `yaml:"damage"`
	FireRate            float64 `yaml:"fireRate"`
	ProjectileSpeed     float64 `yaml:"projectileSpeed"`
	PickupRange         float64 `yaml:"pickupRange"`
	Size                float64 `yaml:"size"`
	EdgeMargin          float64 `yaml:"edgeMargin"`
	XPToFirstLevel      int     `yaml:"xpToFirstLevel"`
	XPGrowth            float64 `yaml:"xpGrowth"`
	LevelUpHealFraction float64 `yaml:"levelUpHealFraction"`
}

// XPOrbStats 经验球参数
type XPOrbStats struct {
	Lifetime    float64 `yaml:"lifetime"`
	PickupSpeed float64 `yaml:"pickupSpeed"`
	Friction    float64 `yaml:"friction"`
	DriftSpeed  float64 `yaml:"driftSpeed"`
	Size        float64 `yaml:"size"`
}

// ComboStats 连击参数
type ComboStats struct {
	Timeout    float64 `yaml:"timeout"`
	Milestones []int   `yaml:"milestones"`
}

// CleanupStats 越界清理边距
type CleanupStats struct {
	ProjectileMargin float64 `yaml:"projectileMargin"`
	EnemyMargin      float64 `yaml:"enemyMargin"`
}

// PlayerConfig player.yaml 结构
type PlayerConfig struct {
	ArenaWidth   float64      `yaml:"arenaWidth"`
	ArenaHeight  float64      `yaml:"arenaHeight"`
	SurvivalTime float64      `yaml:"survivalTime"` // 0 表示不启用生存胜利
	Player       PlayerStats  `yaml:"player"`
	XPOrb        XPOrbStats   `yaml:"xpOrb"`
	Combo        ComboStats   `yaml:"combo"`
	Cleanup      CleanupStats `yaml:"cleanup"`
}

func validatePlayerConfig(cfg *PlayerConfig) error {
	if cfg.ArenaWidth <= 0 || cfg.ArenaHeight <= 0 {
		return fmt.Errorf("arena size must be positive, got %fx%f", cfg.ArenaWidth, cfg.ArenaHeight)
	}
	if cfg.Player.MaxHP <= 0 {
		return fmt.Errorf("player maxHp must be positive, got %d", cfg.Player.MaxHP)
	}
	if cfg.Player.XPToFirstLevel <= 0 {
		return fmt.Errorf("player xpToFirstLevel must be positive, got %d", cfg.Player.XPToFirstLevel)
	}
	if cfg.Player.XPGrowth < 1 {
		return fmt.Errorf("player xpGrowth must be at least 1, got %f", cfg.Player.XPGrowth)
	}
	if cfg.Combo.Timeout <= 0 {
		return fmt.Errorf("combo timeout must be positive, got %f", cfg.Combo.Timeout)
	}
	return nil
}
