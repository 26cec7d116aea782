package systems

import (
	"math"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// findPlayer 返回玩家实体ID
// 世界中只有一个玩家；不存在时返回 false
func findPlayer(em *ecs.EntityManager) (ecs.EntityID, bool) {
	ids := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// playerRefs 玩家常用组件的集合
type playerRefs struct {
	id     ecs.EntityID
	player *components.PlayerComponent
	pos    *components.PositionComponent
	health *components.HealthComponent
	col    *components.CollisionComponent
	weapon *components.WeaponComponent
}

// lookupPlayer 一次取出玩家的全部组件，任一缺失时返回 false
func lookupPlayer(em *ecs.EntityManager) (playerRefs, bool) {
	id, ok := findPlayer(em)
	if !ok {
		return playerRefs{}, false
	}
	refs := playerRefs{id: id}
	refs.player, _ = ecs.GetComponent[*components.PlayerComponent](em, id)
	refs.pos, ok = ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return playerRefs{}, false
	}
	refs.health, ok = ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		return playerRefs{}, false
	}
	refs.col, ok = ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return playerRefs{}, false
	}
	refs.weapon, _ = ecs.GetComponent[*components.WeaponComponent](em, id)
	return refs, true
}

// overlaps 两个实体的碰撞盒是否相交
func overlaps(posA *components.PositionComponent, colA *components.CollisionComponent,
	posB *components.PositionComponent, colB *components.CollisionComponent) bool {
	return colA.Rect(posA.Pos).Overlaps(colB.Rect(posB.Pos))
}

// outsideArena 坐标是否超出竞技场边界 margin 像素以上，非有限坐标视为越界
func outsideArena(p utils.Vec2, cfg *config.PlayerConfig, margin float64) bool {
	if !p.IsFinite() {
		return true
	}
	return p.X < -margin || p.X > cfg.ArenaWidth+margin || p.Y < -margin || p.Y > cfg.ArenaHeight+margin
}

// floorInt 向下取整为 int，所有伤害结算共用这一取整规则
func floorInt(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v))
}

// pickPowerUpType 按配置权重随机选择一种道具
// 遍历顺序固定为类型声明顺序，保证同一种子得到相同结果
func pickPowerUpType(rng *utils.RNG, cfg *config.PowerUpConfig) types.PowerUpType {
	entries := make([]utils.WeightedEntry[types.PowerUpType], 0, len(cfg.PowerUps))
	for _, t := range types.AllPowerUpTypes() {
		if stats, ok := cfg.GetPowerUpStats(t); ok {
			entries = append(entries, utils.WeightedEntry[types.PowerUpType]{Value: t, Weight: stats.Weight})
		}
	}
	t, ok := utils.ChooseWeighted(rng, entries)
	if !ok {
		return types.PowerUpHeal
	}
	return t
}

// inAbilityRange 距离是否落在技能的 (MinRange, MaxRange) 区间内
// MinRange 非正时不检查下限，MaxRange 为 0 时不检查上限
func inAbilityRange(distance float64, ability *config.AbilityConfig) bool {
	if ability.MinRange > 0 && distance <= ability.MinRange {
		return false
	}
	if ability.MaxRange > 0 && distance >= ability.MaxRange {
		return false
	}
	return true
}
