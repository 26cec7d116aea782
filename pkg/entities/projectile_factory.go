package entities

import (
	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// PlayerShot 一发玩家子弹的参数
type PlayerShot struct {
	Pos           utils.Vec2
	Direction     utils.Vec2 // 单位向量
	Damage        float64
	Speed         float64
	Lifetime      float64
	Critical      bool
	Piercing      bool
	ExplosiveShot bool
}

// NewPlayerProjectile 创建玩家子弹
// 子弹类型、等级、混合组成与弹跳次数取自武器
func NewPlayerProjectile(em *ecs.EntityManager, cfg *config.WeaponConfig, weapon *components.WeaponComponent, shot PlayerShot) ecs.EntityID {
	id := em.CreateEntity()

	proj := &components.ProjectileComponent{
		Type:          weapon.Type,
		Damage:        shot.Damage,
		Piercing:      shot.Piercing || weapon.Type == types.ProjectilePiercing,
		Level:         weapon.Level,
		Speed:         shot.Speed,
		Critical:      shot.Critical,
		ExplosiveShot: shot.ExplosiveShot,
	}
	if weapon.IsHybrid() {
		proj.HybridTypes = append([]types.ProjectileType(nil), weapon.HybridTypes...)
		if proj.HasBehavior(types.ProjectilePiercing) {
			proj.Piercing = true
		}
	}
	if proj.HasBehavior(types.ProjectileBouncing) {
		// 弹跳次数随等级增加
		bounces := weapon.MaxBounces
		if bounces == 0 {
			bounces = cfg.GetWeaponStats(types.ProjectileBouncing).MaxBounces
		}
		proj.MaxBounces = bounces + weapon.Level - 1
	}

	switch {
	case proj.Type == types.ProjectileHoming:
		proj.HomingStrength = cfg.Homing.StrengthBase + float64(weapon.Level-1)*cfg.Homing.StrengthPerLevel
		proj.HomingRange = cfg.Homing.Range
	case proj.HasBehavior(types.ProjectileHoming):
		proj.HomingStrength = cfg.HybridHoming.StrengthBase + float64(weapon.Level-1)*cfg.HybridHoming.StrengthPerLevel
		proj.HomingRange = cfg.HybridHoming.Range
	}

	em.AddComponent(id, &components.PositionComponent{Pos: shot.Pos})
	em.AddComponent(id, &components.VelocityComponent{Vel: shot.Direction.Scale(shot.Speed)})
	// 子弹尺寸随等级增大
	em.AddComponent(id, components.NewSquareCollision(cfg.DefaultSize+float64(weapon.Level-1)*2))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: shot.Lifetime})
	em.AddComponent(id, proj)
	return id
}

// NewEnemyProjectile 创建敌方直线子弹，飞向 target
func NewEnemyProjectile(em *ecs.EntityManager, cfg *config.EnemyConfig, from, target utils.Vec2, damage, speed float64) ecs.EntityID {
	if speed <= 0 {
		speed = cfg.EnemyProjectileSpeed
	}
	direction := target.Sub(from).Normalize()
	if direction.Length() == 0 {
		direction = utils.V(1, 0)
	}
	lifetime := 5.0

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: from})
	em.AddComponent(id, &components.VelocityComponent{Vel: direction.Scale(speed)})
	em.AddComponent(id, components.NewSquareCollision(cfg.EnemyProjectileSize))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})
	em.AddComponent(id, &components.ProjectileComponent{
		Type:    types.ProjectileBasic,
		Damage:  damage,
		Hostile: true,
		Speed:   speed,
	})
	return id
}

// NewMortarShell 创建迫击炮弹，抵达目标点时在 radius 范围内爆炸
func NewMortarShell(em *ecs.EntityManager, cfg *config.EnemyConfig, from, target utils.Vec2, damage, radius, speed float64) ecs.EntityID {
	if speed <= 0 {
		speed = cfg.EnemyProjectileSpeed
	}
	distance := from.Distance(target)
	direction := target.Sub(from).Normalize()
	// 留出少量余量，保证在寿命耗尽前抵达落点
	lifetime := distance/speed + 1

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: from})
	em.AddComponent(id, &components.VelocityComponent{Vel: direction.Scale(speed)})
	em.AddComponent(id, components.NewSquareCollision(cfg.EnemyProjectileSize))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})
	em.AddComponent(id, &components.ProjectileComponent{
		Type:            types.ProjectileExplosive,
		Damage:          damage,
		Hostile:         true,
		Speed:           speed,
		IsMortar:        true,
		Target:          target,
		ExplosionRadius: radius,
	})
	return id
}
