package systems

import (
	"log"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// summonOffset 召唤物相对召唤者的最大随机偏移（像素）
const summonOffset = 50

// summonIntent 待生成的召唤物
type summonIntent struct {
	summoner ecs.EntityID
	pos      utils.Vec2
	types    []types.EnemyType
}

// EffectSystem 消费敌人效果队列
//
// 职责：
//   - 按敌人ID顺序取出每个敌人的全部效果，按入队顺序处理
//   - 治疗、爆炸、激光、践踏、冲击波立即对当前存活实体结算
//   - 射击、迫击炮生成敌方子弹
//   - 召唤先收集，遍历结束后再统一生成
//   - 隐身、背刺、冲刺、阶段变化只产生表现层事件
//
// 已被删除的敌人不会出现在查询结果中，它们残留的效果随实体一起丢弃。
type EffectSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue
	damage        *DamageResolver
	progression   *ProgressionSystem

	verbose bool
}

// NewEffectSystem 创建效果系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态（召唤物使用当前波次的难度倍率）
//   - cfg: 全局配置
//   - rng: 共享随机数源
//   - queue: 表现层事件队列
//   - damage: 伤害结算器
//   - progression: 等级系统（召唤物的技能解锁与等级成长）
func NewEffectSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG,
	queue *events.Queue, damage *DamageResolver, progression *ProgressionSystem) *EffectSystem {
	return &EffectSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
		damage:        damage,
		progression:   progression,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *EffectSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 处理本帧所有敌人的效果队列
func (s *EffectSystem) Update(deltaTime float64) {
	var summons []summonIntent

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		for _, effect := range enemy.DrainEffects() {
			// 前一个效果可能已经让该敌人死亡或被移除
			if !s.entityManager.IsAlive(id) {
				break
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
			if intent, ok := s.apply(id, enemy, pos.Pos, effect); ok {
				summons = append(summons, intent)
			}
		}
	}

	for _, intent := range summons {
		s.spawnSummon(intent)
	}
}

// apply 处理单个效果
// 返回召唤意图时第二个返回值为 true
func (s *EffectSystem) apply(id ecs.EntityID, enemy *components.EnemyComponent, pos utils.Vec2, effect events.Effect) (summonIntent, bool) {
	if s.verbose {
		log.Printf("[EffectSystem] Enemy %d (%s) effect %s", id, enemy.Type, events.EffectName(effect))
	}

	switch e := effect.(type) {
	case events.HealEffect:
		s.healAllies(id, pos, e.Radius, e.Amount)

	case events.ExplosionEffect:
		// 近身自爆：自爆者被消耗，不掉落经验
		area := s.damage.BomberExplosion(id, enemy, e.Pos)
		if e.Radius > 0 {
			area.Radius = e.Radius
		}
		area.Damage = e.Damage
		s.damage.ConsumeEnemy(id)
		s.damage.ApplyArea(area)

	case events.ShootEffect:
		entities.NewEnemyProjectile(s.entityManager, &s.config.Enemies, pos, e.Target, e.Damage, e.Speed)

	case events.LaserChargeEffect:
		s.pushAbility(id, effect, pos, pos)

	case events.LaserFireEffect:
		s.queue.Push(events.Laser{From: e.From, To: e.To})
		if player, ok := lookupPlayer(s.entityManager); ok {
			if utils.PointSegmentDistance(player.pos.Pos, e.From, e.To) < e.Width {
				s.damage.DamagePlayer(floorInt(e.Damage))
			}
		}

	case events.MortarFireEffect:
		entities.NewMortarShell(s.entityManager, &s.config.Enemies, pos, e.Target, e.Damage, e.Radius, e.Speed)

	case events.SummonEffect:
		return summonIntent{summoner: id, pos: pos, types: e.Types}, true

	case events.StompEffect:
		s.damage.ApplyArea(AreaDamage{Pos: pos, Radius: e.Radius, Damage: e.Damage, HitsPlayer: true, Source: id})

	case events.ShockwaveEffect:
		s.damage.ApplyArea(AreaDamage{Pos: pos, Radius: e.Radius, Damage: e.Damage, HitsPlayer: true, Source: id})

	case events.DashChargeEffect:
		s.pushAbility(id, effect, pos, e.Target)

	case events.DashExecuteEffect:
		s.pushAbility(id, effect, e.From, e.To)

	case events.PhaseDashEffect:
		s.pushAbility(id, effect, e.From, e.To)

	case events.PhaseChangeEffect:
		s.pushAbility(id, effect, pos, pos)
		s.queue.Push(events.Announcement{Text: phaseAnnouncement(e.Phase), Color: enemy.Color})

	case events.StealthEffect, events.BackstabEffect, events.MultiAttackEffect:
		s.pushAbility(id, effect, pos, pos)
	}
	return summonIntent{}, false
}

// healAllies 治疗半径内的其他敌人，不超过最大生命值
func (s *EffectSystem) healAllies(healer ecs.EntityID, center utils.Vec2, radius float64, amount int) {
	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager) {
		if id == healer {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if pos.Pos.Distance(center) > radius {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		health.Heal(amount)
	}
}

// spawnSummon 在召唤者附近生成一个召唤物
// 召唤者已死亡时仍然生成：召唤在效果产生时已经确定
func (s *EffectSystem) spawnSummon(intent summonIntent) {
	t, ok := utils.Choose(s.rng, intent.types)
	if !ok {
		t = types.EnemyBasic
	}
	offset := utils.V(float64(s.rng.IntRange(-summonOffset, summonOffset)), float64(s.rng.IntRange(-summonOffset, summonOffset)))
	pos := intent.pos.Add(offset)

	difficulty := s.config.Waves.Wave(s.gameState.WaveNumber).DifficultyMultiplier
	opts := s.progression.SpawnOptions(false, difficulty)
	if _, err := entities.NewEnemy(s.entityManager, s.config, t, pos, opts); err != nil {
		log.Printf("[EffectSystem] Failed to summon %s: %v", t, err)
		return
	}
	s.queue.Push(events.EnemyAbility{ID: intent.summoner, Name: "summon", Pos: intent.pos, Target: pos})
}

func (s *EffectSystem) pushAbility(id ecs.EntityID, effect events.Effect, pos, target utils.Vec2) {
	s.queue.Push(events.EnemyAbility{ID: id, Name: events.EffectName(effect), Pos: pos, Target: target})
}

func phaseAnnouncement(phase int) string {
	switch phase {
	case 2:
		return "MEGA BOSS PHASE 2!"
	case 3:
		return "MEGA BOSS PHASE 3!"
	case 4:
		return "MEGA BOSS FINAL PHASE!"
	}
	return "MEGA BOSS"
}
