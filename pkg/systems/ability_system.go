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

// AbilitySystem 敌人技能状态机
//
// 职责：
//   - 每帧递减所有技能冷却（不低于 0）
//   - 推进护盾、冲刺、相位、隐身、连击窗口等限时状态
//   - 超级 Boss 按血量阈值单向切换阶段
//   - 按类型规则表判定技能触发，触发后重置冷却并向敌人的效果队列追加效果
//
// 架构说明：
//   - 规则表 abilityRules 以敌人类型为键，每条规则 = 技能名 + 触发条件 + 触发动作
//   - 同一帧内多条独立规则可以按声明顺序先后触发
//   - 本系统只修改敌人自身状态，对其他实体的影响由 EffectSystem 消费效果队列完成
type AbilitySystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig

	rules map[types.EnemyType][]abilityRule

	// verbose 是否输出详细日志
	verbose bool
}

// NewAbilitySystem 创建敌人技能系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - cfg: 全局配置（技能冷却、距离、持续时间来自 enemies.yaml）
func NewAbilitySystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig) *AbilitySystem {
	return &AbilitySystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rules:         abilityRules(),
	}
}

// SetVerbose 设置是否输出详细日志
func (s *AbilitySystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 推进所有敌人的技能状态
//
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *AbilitySystem) Update(deltaTime float64) {
	player, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}

	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager)
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

		stats, ok := s.config.Enemies.GetEnemyStats(enemy.Type)
		if !ok {
			continue
		}

		tickCooldowns(enemy, deltaTime)
		tickStatusTimers(enemy, deltaTime)

		if enemy.Type == types.EnemyMegaBoss {
			s.advancePhases(enemy, health, stats)
		}

		ctx := &abilityContext{
			id:        id,
			enemy:     enemy,
			pos:       pos,
			health:    health,
			stats:     stats,
			playerPos: player.pos.Pos,
			distance:  pos.Pos.Distance(player.pos.Pos),
			deltaTime: deltaTime,
		}
		s.evaluateRules(ctx)
	}
}

// evaluateRules 按声明顺序评估敌人类型的全部规则
func (s *AbilitySystem) evaluateRules(ctx *abilityContext) {
	for _, rule := range s.rules[ctx.enemy.Type] {
		if !ctx.enemy.HasAbility(rule.name) {
			continue
		}
		ability, ok := ctx.stats.Ability(rule.name)
		if !ok {
			continue
		}
		ctx.ability = ability

		if rule.manual {
			rule.fire(ctx)
			continue
		}
		if ctx.enemy.Cooldowns[rule.name] > 0 {
			continue
		}
		if rule.ready != nil && !rule.ready(ctx) {
			continue
		}
		rule.fire(ctx)
		ctx.enemy.Cooldowns[rule.name] = ability.Cooldown

		if s.verbose {
			log.Printf("[AbilitySystem] Enemy %d (%s) used %s, cooldown %.1fs", ctx.id, ctx.enemy.Type, rule.name, ability.Cooldown)
		}
	}
}

// advancePhases 超级 Boss 阶段切换
// 阶段只增不减；一帧内血量跨过多个阈值时连续切换多个阶段
func (s *AbilitySystem) advancePhases(enemy *components.EnemyComponent, health *components.HealthComponent, stats *config.EnemyStats) {
	fraction := health.Fraction()
	for enemy.Phase-1 < len(stats.PhaseThresholds) && fraction < stats.PhaseThresholds[enemy.Phase-1] {
		enemy.Phase++
		enemy.Speed *= orDefault(stats.PhaseSpeedMultiplier, 1)
		enemy.CollisionDamage *= orDefault(stats.PhaseDamageMultiplier, 1)
		enemy.Damage *= orDefault(stats.PhaseDamageMultiplier, 1)
		// phaseColors[i] 对应第 i+1 阶段；超出列表的阶段保持当前颜色
		if idx := enemy.Phase - 1; idx < len(stats.PhaseColors) {
			enemy.Color = entities.ToRGBA(stats.PhaseColors[idx])
		}
		enemy.PushEffect(events.PhaseChangeEffect{Phase: enemy.Phase})

		log.Printf("[AbilitySystem] Mega boss entered phase %d (hp %.0f%%)", enemy.Phase, fraction*100)
	}
}

// tickCooldowns 递减所有技能冷却，截断到 0
func tickCooldowns(enemy *components.EnemyComponent, deltaTime float64) {
	for name, cd := range enemy.Cooldowns {
		if cd <= 0 {
			continue
		}
		cd -= deltaTime
		if cd < 0 {
			cd = 0
		}
		enemy.Cooldowns[name] = cd
	}
}

// tickStatusTimers 推进限时状态，到期后解除
func tickStatusTimers(enemy *components.EnemyComponent, deltaTime float64) {
	if enemy.ShieldActive {
		enemy.ShieldTimer -= deltaTime
		if enemy.ShieldTimer <= 0 {
			enemy.ShieldActive = false
			enemy.ShieldTimer = 0
		}
	}
	if enemy.Dashing {
		enemy.DashTimer -= deltaTime
		if enemy.DashTimer <= 0 {
			enemy.Dashing = false
			enemy.DashTimer = 0
		}
	}
	if enemy.Phased {
		enemy.PhaseTimer -= deltaTime
		if enemy.PhaseTimer <= 0 {
			enemy.Phased = false
			enemy.PhaseTimer = 0
		}
	}
	if enemy.MultiAttackTimer > 0 {
		enemy.MultiAttackTimer -= deltaTime
		if enemy.MultiAttackTimer < 0 {
			enemy.MultiAttackTimer = 0
		}
	}
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// abilityContext 单个敌人单帧的规则评估上下文
type abilityContext struct {
	id        ecs.EntityID
	enemy     *components.EnemyComponent
	pos       *components.PositionComponent
	health    *components.HealthComponent
	stats     *config.EnemyStats
	ability   *config.AbilityConfig
	playerPos utils.Vec2
	distance  float64
	deltaTime float64
}

// inRange 玩家是否在当前技能的触发距离内
func (c *abilityContext) inRange() bool {
	return inAbilityRange(c.distance, c.ability)
}

// hpBelow 血量比例是否低于当前技能的阈值，阈值为 0 时恒为 true
func (c *abilityContext) hpBelow() bool {
	return c.ability.HpBelow <= 0 || c.health.Fraction() < c.ability.HpBelow
}

// damage 技能伤害，未配置时使用敌人的攻击伤害
func (c *abilityContext) damage() float64 {
	if c.ability.Damage > 0 {
		return c.ability.Damage
	}
	return c.enemy.Damage
}
