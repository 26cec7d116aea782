package components

import (
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// ProjectileComponent 子弹状态，玩家与敌人共用
type ProjectileComponent struct {
	Type        types.ProjectileType
	Damage      float64
	Hostile     bool // true 表示敌方子弹，只与玩家碰撞
	Piercing    bool
	Level       int
	HybridTypes []types.ProjectileType
	Speed       float64
	Critical    bool

	Bounces    int
	MaxBounces int

	ExplosiveShot   bool    // 爆炸弹道具附加的爆炸属性
	ExplosionRadius float64 // 敌方迫击炮弹的落点半径
	HasExploded     bool    // 爆炸只触发一次

	HomingStrength float64
	HomingRange    float64

	IsMortar bool
	Target   utils.Vec2

	// HitEnemies 穿透子弹已命中的敌人，每个敌人只结算一次
	HitEnemies map[ecs.EntityID]bool
}

// HasBehavior 检查子弹是否具有某类行为（本体类型或混合组成之一）
func (p *ProjectileComponent) HasBehavior(t types.ProjectileType) bool {
	if p.Type == t {
		return true
	}
	if p.Type != types.ProjectileHybrid {
		return false
	}
	for _, h := range p.HybridTypes {
		if h == t {
			return true
		}
	}
	return false
}

// IsHybridExplosive 混合武器中包含爆炸组成
func (p *ProjectileComponent) IsHybridExplosive() bool {
	return p.Type == types.ProjectileHybrid && p.HasBehavior(types.ProjectileExplosive)
}

// IsExplosive 命中时会产生爆炸
func (p *ProjectileComponent) IsExplosive() bool {
	return p.Type == types.ProjectileExplosive || p.IsHybridExplosive() || p.ExplosiveShot
}

// HasHit 检查是否已命中过该敌人
func (p *ProjectileComponent) HasHit(id ecs.EntityID) bool {
	return p.HitEnemies[id]
}

// MarkHit 记录命中
func (p *ProjectileComponent) MarkHit(id ecs.EntityID) {
	if p.HitEnemies == nil {
		p.HitEnemies = make(map[ecs.EntityID]bool)
	}
	p.HitEnemies[id] = true
}
