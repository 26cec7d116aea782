package systems

import (
	"log"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// enemyHit 一个敌人本帧累计受到的子弹伤害
type enemyHit struct {
	id       ecs.EntityID
	damage   float64
	critical bool
}

// hitMap 按首次命中顺序保存每个敌人的累计伤害
type hitMap struct {
	order []ecs.EntityID
	hits  map[ecs.EntityID]*enemyHit
}

func newHitMap() *hitMap {
	return &hitMap{hits: make(map[ecs.EntityID]*enemyHit)}
}

func (m *hitMap) add(id ecs.EntityID, damage float64, critical bool) {
	h, ok := m.hits[id]
	if !ok {
		h = &enemyHit{id: id}
		m.hits[id] = h
		m.order = append(m.order, id)
	}
	h.damage += damage
	h.critical = h.critical || critical
}

// CombatSystem 碰撞与战斗结算
//
// 结算顺序：
//  1. 玩家子弹 × 敌人：非穿透子弹只命中第一个重叠的敌人并被删除，穿透子弹对每个敌人只结算一次；
//     爆炸子弹第一次命中时伤害提升并记录一次范围伤害；每个敌人的伤害求和后一次性扣除
//  2. 第 1 步记录的范围伤害，针对结算时仍存活的敌人
//  3. 敌人 × 玩家：接触伤害，敌人被消耗（超级 Boss 除外）
//  4. 敌方子弹 × 玩家：普通子弹命中后删除，迫击炮弹抵达落点时爆炸
//  5. 玩家拾取经验球与道具
type CombatSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue

	damage      *DamageResolver
	progression *ProgressionSystem
	powerUps    *PowerUpSystem

	verbose bool
}

// NewCombatSystem 创建战斗系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - cfg: 全局配置
//   - rng: 共享随机数源
//   - queue: 表现层事件队列
//   - damage: 伤害结算器
//   - progression: 等级系统（经验球拾取）
//   - powerUps: 道具系统（道具拾取）
func NewCombatSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG, queue *events.Queue,
	damage *DamageResolver, progression *ProgressionSystem, powerUps *PowerUpSystem) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
		damage:        damage,
		progression:   progression,
		powerUps:      powerUps,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *CombatSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 按固定顺序结算本帧的全部碰撞
//
// 参数：
//   - deltaTime: 帧间隔（秒），用于判断迫击炮弹是否抵达落点
func (s *CombatSystem) Update(deltaTime float64) {
	areas := s.resolveProjectileHits()
	for _, area := range areas {
		s.damage.ApplyArea(area)
	}

	player, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}
	s.resolveContacts(player)
	s.resolveHostileProjectiles(player, deltaTime)
	s.resolvePickups(player)
}

// resolveProjectileHits 玩家子弹与敌人的碰撞
// 返回爆炸子弹产生的范围伤害，由调用方在直接伤害结算完成后统一处理
func (s *CombatSystem) resolveProjectileHits() []AreaDamage {
	enemies := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	if len(enemies) == 0 {
		return nil
	}

	hits := newHitMap()
	var areas []AreaDamage

	projectiles := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	for _, pid := range projectiles {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, pid)
		if proj.Hostile {
			continue
		}
		ppos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, pid)
		pcol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, pid)

		for _, eid := range enemies {
			if proj.HasHit(eid) {
				continue
			}
			epos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, eid)
			ecol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, eid)
			if !overlaps(ppos, pcol, epos, ecol) {
				continue
			}

			proj.MarkHit(eid)
			damage := proj.Damage
			if proj.IsExplosive() && !proj.HasExploded {
				proj.HasExploded = true
				tuning := s.explosionTuning(proj)
				damage *= tuning.DamageBase + float64(proj.Level)*tuning.DamagePerLevel
				areas = append(areas, AreaDamage{
					Pos:         ppos.Pos,
					Radius:      tuning.RadiusBase + float64(proj.Level-1)*tuning.RadiusPerLevel,
					Damage:      proj.Damage * tuning.AreaFraction,
					EnemyFactor: 1,
					Source:      pid,
				})
			}

			hits.add(eid, damage, proj.Critical)
			s.gameState.Stats.HitsLanded++
			if proj.Critical {
				s.gameState.Stats.CriticalHits++
			}

			if !proj.Piercing {
				s.entityManager.DestroyEntity(pid)
				break
			}
		}
	}

	for _, eid := range hits.order {
		h := hits.hits[eid]
		s.damage.DamageEnemy(eid, floorInt(h.damage), h.critical)
	}
	return areas
}

// explosionTuning 纯爆炸弹与混合爆炸弹使用不同的爆炸参数
func (s *CombatSystem) explosionTuning(proj *components.ProjectileComponent) config.ExplosionTuning {
	if proj.IsHybridExplosive() {
		return s.config.Weapons.HybridExplosive
	}
	return s.config.Weapons.Explosive
}

// resolveContacts 敌人与玩家的接触伤害
func (s *CombatSystem) resolveContacts(p playerRefs) {
	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager) {
		epos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		ecol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		if !overlaps(p.pos, p.col, epos, ecol) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)

		dealt := s.damage.DamagePlayer(int(enemy.ContactDamage()))
		enemy.BackstabMultiplier = 0

		if s.verbose {
			log.Printf("[CombatSystem] %s (ID: %d) hit the player for %d", enemy.Type, id, dealt)
		}
		if enemy.Type != types.EnemyMegaBoss {
			s.damage.ConsumeEnemy(id)
		}
	}
}

// resolveHostileProjectiles 敌方子弹与迫击炮弹
func (s *CombatSystem) resolveHostileProjectiles(p playerRefs, deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager)
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		if !proj.Hostile {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if proj.IsMortar {
			if s.mortarArrived(id, proj, pos, deltaTime) {
				s.entityManager.DestroyEntity(id)
				s.damage.ApplyArea(AreaDamage{
					Pos:        proj.Target,
					Radius:     proj.ExplosionRadius,
					Damage:     proj.Damage,
					HitsPlayer: true,
					Source:     id,
				})
			}
			continue
		}

		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		if overlaps(p.pos, p.col, pos, col) {
			s.entityManager.DestroyEntity(id)
			s.damage.DamagePlayer(floorInt(proj.Damage))
		}
	}
}

// mortarArrived 迫击炮弹本帧已抵达落点或越过落点
func (s *CombatSystem) mortarArrived(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, deltaTime float64) bool {
	toTarget := proj.Target.Sub(pos.Pos)
	if toTarget.Length() <= proj.Speed*deltaTime {
		return true
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		return toTarget.Dot(vel.Vel) < 0
	}
	return false
}

// resolvePickups 玩家拾取经验球与道具
func (s *CombatSystem) resolvePickups(p playerRefs) {
	for _, id := range ecs.GetEntitiesWith3[*components.XPOrbComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		if !overlaps(p.pos, p.col, pos, col) {
			continue
		}
		orb, _ := ecs.GetComponent[*components.XPOrbComponent](s.entityManager, id)
		s.entityManager.DestroyEntity(id)
		s.progression.GainXP(orb.Value)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.PowerUpComponent, *components.PositionComponent, *components.CollisionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		if overlaps(p.pos, p.col, pos, col) {
			s.powerUps.Collect(id)
		}
	}
}
