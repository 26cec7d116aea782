package entities

import (
	"math"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/types"
)

// hybridDamageFactor 混合武器伤害 = 两种武器伤害之和 * 该系数
const hybridDamageFactor = 0.8

// NewWeapon 按配置创建指定类型的武器
// 参数:
//   - t: 武器类型
//   - level: 武器等级（更换武器时保留原等级）
//   - cfg: 武器配置
func NewWeapon(t types.ProjectileType, level int, cfg *config.WeaponConfig) *components.WeaponComponent {
	stats := cfg.GetWeaponStats(t)
	spread := stats.SpreadAngle
	if spread == 0 {
		spread = cfg.DefaultSpreadAngle
	}
	if level < 1 {
		level = 1
	}
	return &components.WeaponComponent{
		Type:            t,
		Level:           level,
		Damage:          stats.Damage,
		Speed:           cfg.DefaultSpeed,
		FireRate:        stats.FireRate,
		ProjectileCount: stats.Count,
		SpreadAngle:     spread,
		Lifetime:        stats.Lifetime,
		MaxBounces:      stats.MaxBounces,
	}
}

// NewHybridWeapon 将当前武器与另一种武器组合为混合武器
// 伤害取两者之和的 80%，速度取平均，射速、子弹数量、散射角、寿命、弹跳次数取较大值
func NewHybridWeapon(current *components.WeaponComponent, other types.ProjectileType, cfg *config.WeaponConfig) *components.WeaponComponent {
	otherWeapon := NewWeapon(other, current.Level, cfg)

	base := current.Type
	if current.IsHybrid() {
		base = current.HybridTypes[0]
	}

	return &components.WeaponComponent{
		Type:            types.ProjectileHybrid,
		Level:           current.Level,
		HybridTypes:     []types.ProjectileType{base, other},
		Damage:          (current.Damage + otherWeapon.Damage) * hybridDamageFactor,
		Speed:           (current.Speed + otherWeapon.Speed) / 2,
		FireRate:        math.Max(current.FireRate, otherWeapon.FireRate),
		ProjectileCount: maxInt(current.ProjectileCount, otherWeapon.ProjectileCount),
		SpreadAngle:     math.Max(current.SpreadAngle, otherWeapon.SpreadAngle),
		Lifetime:        math.Max(current.Lifetime, otherWeapon.Lifetime),
		MaxBounces:      maxInt(current.MaxBounces, otherWeapon.MaxBounces),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
