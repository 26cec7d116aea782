package systems

import (
	"image/color"
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

// bomberEnemyDamageFactor 自爆者爆炸对其他敌人的伤害系数
const bomberEnemyDamageFactor = 0.5

// AreaDamage 一次范围伤害
// 伤害按 floor(Damage * clamp(1 - d/Radius, 0, 1)) 结算
type AreaDamage struct {
	Pos    utils.Vec2
	Radius float64
	Damage float64

	// HitsPlayer 为 true 时伤害玩家（敌方来源）
	HitsPlayer bool
	// EnemyFactor 对敌人的伤害系数，0 表示不伤害敌人
	EnemyFactor float64
	// Source 产生爆炸的实体，不会受到自己的伤害
	Source ecs.EntityID
}

// DamageResolver 伤害与死亡结算
//
// 职责：
//   - 对敌人和玩家施加伤害并记录统计
//   - 结算范围伤害（针对当前存活的实体）
//   - 敌人死亡的唯一入口：掉落经验球、道具、连击、事件、自爆者死亡爆炸
//
// 死亡结算是幂等的：实体被标记删除后再次调用直接返回，
// 因此同一帧内多个伤害来源同时致死只会结算一次。
type DamageResolver struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue

	verbose bool
}

// NewDamageResolver 创建伤害结算器
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - cfg: 全局配置
//   - rng: 共享随机数源（掉落判定）
//   - queue: 表现层事件队列
func NewDamageResolver(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG, queue *events.Queue) *DamageResolver {
	return &DamageResolver{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
	}
}

// SetVerbose 设置是否输出详细日志
func (r *DamageResolver) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// DamageEnemy 对敌人造成伤害
// 开启护盾的敌人受到的伤害减半；生命值归零时立即结算死亡
//
// 返回:
//   - int: 实际扣除的生命值
func (r *DamageResolver) DamageEnemy(id ecs.EntityID, amount int, critical bool) int {
	if amount <= 0 || !r.entityManager.IsAlive(id) {
		return 0
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](r.entityManager, id)
	if !ok {
		return 0
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id)
	if !ok {
		return 0
	}

	if enemy.ShieldActive {
		amount /= 2
	}
	dealt := health.TakeDamage(amount)
	r.gameState.Stats.DamageDealt += dealt

	if pos, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id); ok && dealt > 0 {
		r.queue.Push(events.DamageNumber{Pos: pos.Pos, Amount: dealt, Critical: critical})
	}

	if health.IsDead() {
		r.FinalizeEnemy(id)
	}
	return dealt
}

// DamagePlayer 对玩家造成伤害
// 无敌时不受伤害，护盾道具按效果数值削减伤害（向下取整）。
// 任何一次命中都会让连击归零（本帧后续击杀不再计数），即使伤害被完全吸收。
//
// 返回:
//   - int: 实际扣除的生命值
func (r *DamageResolver) DamagePlayer(amount int) int {
	if amount <= 0 {
		return 0
	}
	p, ok := lookupPlayer(r.entityManager)
	if !ok {
		return 0
	}

	r.gameState.Combo.Break()

	if p.player.Invincible() {
		return 0
	}
	if p.player.ShieldActive() {
		amount = int(float64(amount) * p.player.EffectMagnitude(types.PowerUpShield, 0.5))
	}

	dealt := p.health.TakeDamage(amount)
	if dealt > 0 {
		r.gameState.Stats.DamageTaken += dealt
		r.queue.Push(events.DamageNumber{Pos: p.pos.Pos, Amount: dealt, ToPlayer: true})
	}

	if p.health.IsDead() && !r.gameState.IsFinished() {
		log.Printf("[DamageResolver] Player died at %.1fs (wave %d)", r.gameState.ElapsedTime, r.gameState.WaveNumber)
		r.gameState.Finish(types.RunGameOver)
	}
	return dealt
}

// ApplyArea 结算一次范围伤害
// 目标在结算时从当前存活实体中重新查询，已死亡或已删除的实体自动排除
func (r *DamageResolver) ApplyArea(area AreaDamage) {
	r.queue.Push(events.Explosion{Pos: area.Pos, Radius: area.Radius})
	if area.Radius <= 0 {
		return
	}

	if area.EnemyFactor > 0 {
		for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](r.entityManager) {
			if id == area.Source || !r.entityManager.IsAlive(id) {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)
			falloff := utils.Falloff(pos.Pos.Distance(area.Pos), area.Radius)
			r.DamageEnemy(id, floorInt(area.Damage*area.EnemyFactor*falloff), false)
		}
	}

	if area.HitsPlayer {
		p, ok := lookupPlayer(r.entityManager)
		if !ok {
			return
		}
		distance := p.pos.Pos.Distance(area.Pos)
		if distance > area.Radius {
			return
		}
		r.DamagePlayer(floorInt(area.Damage * utils.Falloff(distance, area.Radius)))
	}
}

// ConsumeEnemy 移除敌人但不结算击杀（接触玩家、近身自爆）
func (r *DamageResolver) ConsumeEnemy(id ecs.EntityID) {
	r.entityManager.DestroyEntity(id)
}

// FinalizeEnemy 结算敌人死亡
//
// 执行顺序：
//  1. 标记删除（之后的重复调用直接返回）
//  2. 掉落经验球，判定道具掉落
//  3. 连击 +1，达到里程碑时发出事件
//  4. 记录击杀统计，发出死亡事件（Boss 额外发出公告）
//  5. 自爆者尚未爆炸时触发一次死亡爆炸
func (r *DamageResolver) FinalizeEnemy(id ecs.EntityID) {
	if !r.entityManager.IsAlive(id) {
		return
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](r.entityManager, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)
	if !ok {
		r.entityManager.DestroyEntity(id)
		return
	}

	r.entityManager.DestroyEntity(id)

	entities.NewXPOrb(r.entityManager, &r.config.Player, r.rng, pos.Pos, enemy.XPValue)
	r.rollPowerUpDrop(enemy, pos.Pos)

	if r.gameState.Combo.Increment() {
		r.queue.Push(events.ComboMilestone{Count: r.gameState.Combo.Count})
	}
	if r.gameState.Combo.Max > r.gameState.Stats.MaxCombo {
		r.gameState.Stats.MaxCombo = r.gameState.Combo.Max
	}
	r.gameState.Stats.RecordKill(enemy.Type.String())

	r.queue.Push(events.EnemyDeath{ID: id, Type: enemy.Type, Pos: pos.Pos, Color: enemy.Color})
	switch enemy.Type {
	case types.EnemyBoss:
		r.queue.Push(events.Announcement{Text: "BOSS DEFEATED!", Color: color.RGBA{G: 255, A: 255}})
	case types.EnemyMegaBoss:
		r.queue.Push(events.Announcement{Text: "MEGA BOSS DEFEATED!", Color: color.RGBA{R: 255, G: 215, A: 255}})
	}

	if enemy.Type == types.EnemyBomber && (!enemy.HasExploded || hasPendingExplosion(enemy)) {
		enemy.HasExploded = true
		enemy.Effects = nil
		r.ApplyArea(r.BomberExplosion(id, enemy, pos.Pos))
	}

	if r.verbose {
		log.Printf("[DamageResolver] Enemy %d (%s) killed, combo %d", id, enemy.Type, r.gameState.Combo.Count)
	}
}

// BomberExplosion 构造自爆者的爆炸：伤害玩家，其他敌人受到一半伤害
func (r *DamageResolver) BomberExplosion(id ecs.EntityID, enemy *components.EnemyComponent, pos utils.Vec2) AreaDamage {
	radius := 0.0
	if stats, ok := r.config.Enemies.GetEnemyStats(enemy.Type); ok {
		radius = stats.ExplosionRadius
	}
	return AreaDamage{
		Pos:         pos,
		Radius:      radius,
		Damage:      enemy.Damage,
		HitsPlayer:  true,
		EnemyFactor: bomberEnemyDamageFactor,
		Source:      id,
	}
}

// rollPowerUpDrop 按敌人类型判定道具掉落
// 精英敌人掉率更高，Boss 从精英道具池中抽取
func (r *DamageResolver) rollPowerUpDrop(enemy *components.EnemyComponent, pos utils.Vec2) {
	cfg := &r.config.PowerUps
	chance := cfg.DropChance
	if enemy.Elite || enemy.Type.IsElite() {
		chance = cfg.EliteDropChance
	}
	if !r.rng.Chance(chance) {
		return
	}

	if enemy.Type.IsBoss() {
		if t, ok := utils.Choose(r.rng, cfg.EliteTypes()); ok {
			entities.NewPowerUp(r.entityManager, cfg, pos, t)
			return
		}
	}
	entities.NewPowerUp(r.entityManager, cfg, pos, pickPowerUpType(r.rng, cfg))
}

// hasPendingExplosion 队列中是否有尚未处理的爆炸效果
func hasPendingExplosion(enemy *components.EnemyComponent) bool {
	for _, e := range enemy.Effects {
		if _, ok := e.(events.ExplosionEffect); ok {
			return true
		}
	}
	return false
}
