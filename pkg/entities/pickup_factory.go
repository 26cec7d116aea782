package entities

import (
	"math"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// NewXPOrb 在 pos 创建经验球，带随机方向的漂移速度
func NewXPOrb(em *ecs.EntityManager, cfg *config.PlayerConfig, rng *utils.RNG, pos utils.Vec2, value int) ecs.EntityID {
	angle := rng.Range(0, 2*math.Pi)
	drift := utils.V(math.Cos(angle), math.Sin(angle)).Scale(cfg.XPOrb.DriftSpeed)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.VelocityComponent{Vel: drift})
	em.AddComponent(id, components.NewSquareCollision(cfg.XPOrb.Size))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: cfg.XPOrb.Lifetime})
	em.AddComponent(id, &components.XPOrbComponent{Value: value})
	return id
}

// NewPowerUp 在 pos 创建道具
func NewPowerUp(em *ecs.EntityManager, cfg *config.PowerUpConfig, pos utils.Vec2, t types.PowerUpType) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, components.NewSquareCollision(cfg.Size))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: cfg.Lifetime})
	em.AddComponent(id, &components.PowerUpComponent{Type: t})
	return id
}
