package components

import "github.com/decker502/bulletheaven/pkg/types"

// WeaponComponent 玩家当前武器
type WeaponComponent struct {
	Type            types.ProjectileType
	Level           int
	HybridTypes     []types.ProjectileType // 仅混合武器
	Damage          float64
	Speed           float64
	FireRate        float64
	ProjectileCount int
	SpreadAngle     float64 // 度
	Lifetime        float64
	MaxBounces      int
}

// IsHybrid 检查是否为混合武器
func (w *WeaponComponent) IsHybrid() bool {
	return len(w.HybridTypes) > 0
}

// LevelDamageMultiplier 武器等级伤害倍率 1 + (level-1)*step
func (w *WeaponComponent) LevelDamageMultiplier(step float64) float64 {
	return 1 + float64(w.Level-1)*step
}
