package game

import (
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// Upgrade 一个可供选择的升级项
type Upgrade struct {
	Title string
	Def   config.UpgradeDef
}

// UpgradeChooser 升级选择协作方
// 升级时被同步调用，返回所选候选项的下标；越界下标按 0 处理
type UpgradeChooser interface {
	ChooseUpgrade(candidates []Upgrade) int
}

// UpgradeChooserFunc 函数适配器
type UpgradeChooserFunc func(candidates []Upgrade) int

// ChooseUpgrade 实现 UpgradeChooser
func (f UpgradeChooserFunc) ChooseUpgrade(candidates []Upgrade) int {
	return f(candidates)
}

// UpgradeContext 过滤候选项所需的玩家状态
type UpgradeContext struct {
	HP              int
	MaxHP           int
	Piercing        bool
	ProjectileCount int
	UnlockedWeapons map[types.ProjectileType]bool
}

// FilterUpgrades 按玩家状态过滤升级卡池
//
// 过滤规则：
//   - 更换武器需要该武器已解锁，混合武器需要 hybrid 已解锁
//   - 已拥有穿透时不再提供穿透相关卡片
//   - 最大生命值超过上限时不再提供生命上限卡片
//   - 子弹数量达到上限时不再提供子弹相关卡片
//   - 满血时不提供治疗
//
// 过滤后为空时退回到不含武器变更的卡片，再为空时返回完整卡池
func FilterUpgrades(cfg *config.UpgradeConfig, ctx UpgradeContext) []config.UpgradeDef {
	result := make([]config.UpgradeDef, 0, len(cfg.Upgrades))
	for _, u := range cfg.Upgrades {
		if allowUpgrade(cfg, u, ctx) {
			result = append(result, u)
		}
	}
	if len(result) > 0 {
		return result
	}

	for _, u := range cfg.Upgrades {
		if u.Kind != config.UpgradeWeapon && u.Kind != config.UpgradeHybrid {
			result = append(result, u)
		}
	}
	if len(result) > 0 {
		return result
	}
	return append(result, cfg.Upgrades...)
}

func allowUpgrade(cfg *config.UpgradeConfig, u config.UpgradeDef, ctx UpgradeContext) bool {
	switch u.Kind {
	case config.UpgradeWeapon:
		if !ctx.UnlockedWeapons[u.WeaponType()] {
			return false
		}
	case config.UpgradeHybrid:
		if !ctx.UnlockedWeapons[types.ProjectileHybrid] {
			return false
		}
	case config.UpgradeMaxHPAdd:
		if ctx.MaxHP > cfg.MaxHPCap {
			return false
		}
	case config.UpgradeProjectileCountAdd, config.UpgradeProjectileSpeedAdd:
		if ctx.ProjectileCount >= cfg.MaxProjectileCount {
			return false
		}
	case config.UpgradeHeal, config.UpgradeHealFull:
		if ctx.HP >= ctx.MaxHP {
			return false
		}
	}

	grantsPiercing := u.Piercing || (u.Kind == config.UpgradeWeapon && u.WeaponType() == types.ProjectilePiercing)
	if grantsPiercing && ctx.Piercing {
		return false
	}
	return true
}

// PickUpgrades 从候选池中无放回地随机抽取 count 项
func PickUpgrades(rng *utils.RNG, pool []config.UpgradeDef, count int) []Upgrade {
	shuffled := make([]config.UpgradeDef, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	result := make([]Upgrade, 0, count)
	for _, def := range shuffled[:count] {
		result = append(result, Upgrade{Title: def.Title, Def: def})
	}
	return result
}
