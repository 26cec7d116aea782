package simulation

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/systems"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

var survivalVictoryColor = color.RGBA{R: 255, G: 215, A: 255}

// Simulation 一局生存射击模拟
//
// 职责：
//   - 持有实体管理器、全局状态、随机数源与事件队列
//   - 按固定顺序推进各系统，帧末统一删除标记的实体
//   - 升级暂停期间不推进，SelectUpgrade 后恢复
//   - 向表现层提供只读快照和事件队列
//
// 架构说明：
//   - 所有系统在同一个 goroutine 中按顺序运行，不需要加锁
//   - 系统之间通过 GameState、ECS 组件和 DamageResolver 协作，不持有彼此的引用（战斗与效果系统除外）
type Simulation struct {
	config        *config.GameConfig
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	rng           *utils.RNG
	queue         *events.Queue

	damageResolver    *systems.DamageResolver
	waveSystem        *systems.WaveSystem
	progressionSystem *systems.ProgressionSystem
	abilitySystem     *systems.AbilitySystem
	weaponSystem      *systems.WeaponSystem
	movementSystem    *systems.MovementSystem
	combatSystem      *systems.CombatSystem
	effectSystem      *systems.EffectSystem
	powerUpSystem     *systems.PowerUpSystem
	lifetimeSystem    *systems.LifetimeSystem

	seed int64
}

// New 创建一局新的模拟
//
// 参数:
//   - cfg: 全局配置，nil 时返回错误
//   - seed: 随机种子，相同种子与相同输入序列产生相同的结果
//
// 返回:
//   - *Simulation: 玩家位于竞技场中心、第 1 波处于准备阶段的模拟
//   - error: 配置无效或玩家创建失败
func New(cfg *config.GameConfig, seed int64) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}

	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg.Player.Combo)
	rng := utils.NewRNG(seed)
	queue := events.NewQueue()

	if _, err := entities.NewPlayer(em, cfg); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s := &Simulation{
		config:        cfg,
		entityManager: em,
		gameState:     gs,
		rng:           rng,
		queue:         queue,
		seed:          seed,
	}

	s.damageResolver = systems.NewDamageResolver(em, gs, cfg, rng, queue)
	s.progressionSystem = systems.NewProgressionSystem(em, gs, cfg, rng, queue)
	s.powerUpSystem = systems.NewPowerUpSystem(em, gs, cfg, rng, queue)
	s.waveSystem = systems.NewWaveSystem(em, gs, cfg, rng, queue, s.progressionSystem)
	s.abilitySystem = systems.NewAbilitySystem(em, gs, cfg)
	s.weaponSystem = systems.NewWeaponSystem(em, gs, cfg, rng)
	s.movementSystem = systems.NewMovementSystem(em, gs, cfg, rng)
	s.combatSystem = systems.NewCombatSystem(em, gs, cfg, rng, queue, s.damageResolver, s.progressionSystem, s.powerUpSystem)
	s.effectSystem = systems.NewEffectSystem(em, gs, cfg, rng, queue, s.damageResolver, s.progressionSystem)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)

	log.Printf("[Simulation] New run created (seed %d, %d waves)", seed, cfg.Waves.TotalWaves)
	return s, nil
}

// SetVerbose 打开或关闭所有系统的逐帧日志
func (s *Simulation) SetVerbose(verbose bool) {
	s.damageResolver.SetVerbose(verbose)
	s.waveSystem.SetVerbose(verbose)
	s.progressionSystem.SetVerbose(verbose)
	s.abilitySystem.SetVerbose(verbose)
	s.weaponSystem.SetVerbose(verbose)
	s.movementSystem.SetVerbose(verbose)
	s.combatSystem.SetVerbose(verbose)
	s.effectSystem.SetVerbose(verbose)
	s.powerUpSystem.SetVerbose(verbose)
	s.lifetimeSystem.SetVerbose(verbose)
}

// SetUpgradeChooser 设置升级选择协作方
// 设置后升级时同步选择，不再暂停；nil 恢复为暂停等待 SelectUpgrade
func (s *Simulation) SetUpgradeChooser(chooser game.UpgradeChooser) {
	s.progressionSystem.SetUpgradeChooser(chooser)
}

// Update 推进一帧
//
// 执行顺序：
//
//	波次 → 等级 → 敌人技能 → 玩家射击 → 生命周期 → 移动 → 碰撞 → 效果 → 道具 → 删除标记的实体
//
// 生命周期在移动之前结算，本帧内到期的子弹不再移动也不再命中。
//
// 非 Playing 状态（升级暂停、胜利、失败）下直接返回。
// 本帧中途进入升级暂停时，剩余系统仍在本帧内运行完毕。
//
// 参数:
//   - deltaTime: 帧间隔（秒），非正数时忽略
//   - input: 本帧的玩家输入
func (s *Simulation) Update(deltaTime float64, input game.InputSnapshot) {
	if !s.gameState.IsPlaying() || !(deltaTime > 0) {
		return
	}

	s.gameState.Input = input
	s.gameState.ElapsedTime += deltaTime
	s.gameState.Stats.TimeSurvived = s.gameState.ElapsedTime
	s.gameState.Combo.Update(deltaTime)

	s.waveSystem.Update(deltaTime)
	s.progressionSystem.Update(deltaTime)
	s.abilitySystem.Update(deltaTime)
	s.weaponSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.movementSystem.Update(deltaTime)
	s.combatSystem.Update(deltaTime)
	s.effectSystem.Update(deltaTime)
	s.powerUpSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()

	s.checkSurvivalVictory()
}

// checkSurvivalVictory 存活时间达到配置值时胜利
func (s *Simulation) checkSurvivalVictory() {
	limit := s.config.Player.SurvivalTime
	if limit <= 0 || s.gameState.IsFinished() || s.gameState.ElapsedTime < limit {
		return
	}
	s.gameState.Finish(types.RunVictory)
	s.queue.Push(events.Announcement{Text: "YOU SURVIVED!", Color: survivalVictoryColor})
	log.Printf("[Simulation] Survived %.0fs, victory (wave %d, level %d)",
		s.gameState.ElapsedTime, s.gameState.WaveNumber, s.progressionSystem.Level())
}

// SelectUpgrade 选择升级暂停期间的候选项并恢复模拟
//
// 参数:
//   - index: PendingUpgrades 中的下标
//
// 返回:
//   - error: 没有等待中的选择或下标越界
func (s *Simulation) SelectUpgrade(index int) error {
	if err := s.progressionSystem.SelectUpgrade(index); err != nil {
		return fmt.Errorf("failed to select upgrade: %w", err)
	}
	return nil
}

// Events 返回表现层事件队列
func (s *Simulation) Events() *events.Queue {
	return s.queue
}

// State 当前运行状态
func (s *Simulation) State() types.RunState {
	return s.gameState.State
}

// Seed 本局的随机种子
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Config 本局使用的配置
func (s *Simulation) Config() *config.GameConfig {
	return s.config
}
