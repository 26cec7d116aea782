package entities

import (
	"fmt"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// NewPlayer 创建玩家实体，位于竞技场中心，持有基础武器
//
// 参数:
//   - em: 实体管理器
//   - cfg: 全局配置
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 参数无效时返回错误
func NewPlayer(em *ecs.EntityManager, cfg *config.GameConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	stats := cfg.Player.Player
	id := em.CreateEntity()

	em.AddComponent(id, &components.PositionComponent{
		Pos: utils.V(cfg.Player.ArenaWidth/2, cfg.Player.ArenaHeight/2),
	})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, components.NewHealth(stats.MaxHP))
	em.AddComponent(id, components.NewSquareCollision(stats.Size))

	player := &components.PlayerComponent{
		BaseSpeed:       stats.Speed,
		BaseDamage:      stats.Damage,
		BaseFireRate:    stats.FireRate,
		StartDamage:     stats.Damage,
		StartFireRate:   stats.FireRate,
		ProjectileSpeed: stats.ProjectileSpeed,
		PickupRange:     stats.PickupRange,
		Level:           1,
		XPToNextLevel:   stats.XPToFirstLevel,
		Effects:         make(map[types.PowerUpType]*components.ActiveEffect),
	}
	player.RecomputeStats()
	em.AddComponent(id, player)

	weapon := NewWeapon(types.ProjectileBasic, 1, &cfg.Weapons)
	weapon.Speed = stats.ProjectileSpeed
	em.AddComponent(id, weapon)

	return id, nil
}
