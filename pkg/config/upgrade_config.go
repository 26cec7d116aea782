package config

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/types"
)

// UpgradeKind 升级效果类型
type UpgradeKind string

const (
	UpgradeDamageAdd          UpgradeKind = "damage_add"
	UpgradeDamageMult         UpgradeKind = "damage_mult"
	UpgradeFireRateAdd        UpgradeKind = "fire_rate_add"
	UpgradeFireRateMult       UpgradeKind = "fire_rate_mult"
	UpgradeSpeedAdd           UpgradeKind = "speed_add"
	UpgradeSpeedMult          UpgradeKind = "speed_mult"
	UpgradeProjectileCountAdd UpgradeKind = "projectile_count_add"
	UpgradeProjectileSpeedAdd UpgradeKind = "projectile_speed_add"
	UpgradePickupRangeAdd     UpgradeKind = "pickup_range_add"
	UpgradePickupRangeMult    UpgradeKind = "pickup_range_mult"
	UpgradeHeal               UpgradeKind = "heal"
	UpgradeHealFull           UpgradeKind = "heal_full"
	UpgradeMaxHPAdd           UpgradeKind = "max_hp_add"
	UpgradeWeapon             UpgradeKind = "weapon"
	UpgradeHybrid             UpgradeKind = "hybrid"
	UpgradeEnhance            UpgradeKind = "enhance"
	UpgradeUltimateDamage     UpgradeKind = "ultimate_damage"
	UpgradeUltimateFireRate   UpgradeKind = "ultimate_fire_rate"
	UpgradeUltimateSpeed      UpgradeKind = "ultimate_speed"
	UpgradeUltimateHealth     UpgradeKind = "ultimate_health"
)

var knownUpgradeKinds = map[UpgradeKind]bool{
	UpgradeDamageAdd: true, UpgradeDamageMult: true, UpgradeFireRateAdd: true, UpgradeFireRateMult: true,
	UpgradeSpeedAdd: true, UpgradeSpeedMult: true, UpgradeProjectileCountAdd: true, UpgradeProjectileSpeedAdd: true,
	UpgradePickupRangeAdd: true, UpgradePickupRangeMult: true, UpgradeHeal: true, UpgradeHealFull: true,
	UpgradeMaxHPAdd: true, UpgradeWeapon: true, UpgradeHybrid: true, UpgradeEnhance: true,
	UpgradeUltimateDamage: true, UpgradeUltimateFireRate: true, UpgradeUltimateSpeed: true, UpgradeUltimateHealth: true,
}

// UpgradeDef 单张升级卡
type UpgradeDef struct {
	Title    string      `yaml:"title"`
	Kind     UpgradeKind `yaml:"kind"`
	Amount   float64     `yaml:"amount"`
	Weapon   string      `yaml:"weapon"`
	Piercing bool        `yaml:"piercing"`
}

// WeaponType 返回卡片引用的武器类型
func (u UpgradeDef) WeaponType() types.ProjectileType {
	t, _ := types.ParseProjectileType(u.Weapon)
	return t
}

// UpgradeConfig upgrades.yaml 结构
type UpgradeConfig struct {
	Choices            int          `yaml:"choices"`
	MaxHPCap           int          `yaml:"maxHpCap"`
	MaxProjectileCount int          `yaml:"maxProjectileCount"`
	Upgrades           []UpgradeDef `yaml:"upgrades"`
}

func validateUpgradeConfig(cfg *UpgradeConfig) error {
	if cfg.Choices < 1 {
		return fmt.Errorf("choices must be at least 1, got %d", cfg.Choices)
	}
	for _, u := range cfg.Upgrades {
		if !knownUpgradeKinds[u.Kind] {
			return fmt.Errorf("upgrade %q: unknown kind %q", u.Title, u.Kind)
		}
		if u.Kind == UpgradeWeapon || u.Kind == UpgradeHybrid {
			if _, err := types.ParseProjectileType(u.Weapon); err != nil {
				return fmt.Errorf("upgrade %q: %w", u.Title, err)
			}
		}
	}
	return nil
}
