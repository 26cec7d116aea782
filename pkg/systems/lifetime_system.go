package systems

import (
	"log"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 子弹、经验球、道具超过最大存在时间后被标记删除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager

	verbose bool
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *LifetimeSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 更新所有拥有生命周期组件的实体
//
// 返回：
//   - int: 本帧过期的实体数
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	}

	if s.verbose && expired > 0 {
		log.Printf("[LifetimeSystem] %d entities expired", expired)
	}
	return expired
}
