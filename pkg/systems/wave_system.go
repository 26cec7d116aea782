package systems

import (
	"fmt"
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

// 公告颜色
var (
	waveAnnounceColor   = color.RGBA{R: 255, G: 255, A: 255}
	bossWaveColor       = color.RGBA{R: 255, A: 255}
	megaBossWaveColor   = color.RGBA{R: 255, B: 255, A: 255}
	waveCompleteColor   = color.RGBA{G: 255, A: 255}
	waveBonusColor      = color.RGBA{R: 255, G: 215, A: 255}
	countdownTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	victoryAnnounceText = "VICTORY! All waves cleared!"
)

// WaveStatus 波次状态的只读副本，供快照和 HUD 使用
type WaveStatus struct {
	Number         int
	TotalWaves     int
	Phase          types.WavePhase
	EnemiesSpawned int
	EnemiesToSpawn int
	Countdown      float64 // 准备或休息阶段的剩余秒数
	BossWave       bool
	MegaBossWave   bool
}

// Info 返回 HUD 上显示的波次描述
func (w WaveStatus) Info() string {
	switch w.Phase {
	case types.WavePreparing:
		return fmt.Sprintf("Wave %d - Starting in %ds", w.Number, int(w.Countdown))
	case types.WaveActive:
		return fmt.Sprintf("Wave %d - %d enemies remaining", w.Number, w.EnemiesToSpawn-w.EnemiesSpawned)
	case types.WaveBreak:
		return fmt.Sprintf("Break - Next wave in %ds", int(w.Countdown))
	case types.WaveVictory:
		return "All waves cleared"
	}
	return fmt.Sprintf("Wave %d", w.Number)
}

// WaveSystem 波次调度状态机
//
// 职责：
//   - 准备阶段：显示一次波次公告，倒计时结束后进入刷怪阶段
//   - 刷怪阶段：按生成间隔累积计时，一帧内可以生成多只；生成总数不超过本波预算
//   - 完成：生成预算耗尽且场上没有存活敌人时发放波次奖励经验
//   - 休息阶段：倒计时结束后进入下一波，超过总波数时胜利
//
// 架构说明：
//   - 波次参数由 config.WaveTable 按公式生成
//   - 可生成的敌人类型由 ProgressionSystem 与波次解锁表取交集
//   - 同步 GameState.WaveNumber / WavePhase 供其他系统读取
type WaveSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue
	progression   *ProgressionSystem

	wave  config.WaveConfig
	phase types.WavePhase

	// phaseTimer 当前阶段已经过的时间（秒）
	phaseTimer float64
	// spawnTimer 生成计时累加器，达到生成间隔时生成一只并扣除间隔
	spawnTimer float64

	enemiesSpawned int
	enemiesToSpawn int
	announced      bool

	verbose bool
}

// NewWaveSystem 创建波次系统，从第 1 波的准备阶段开始
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - cfg: 全局配置
//   - rng: 共享随机数源（类型、精英、生成位置）
//   - queue: 表现层事件队列
//   - progression: 等级系统（可生成类型与奖励经验）
func NewWaveSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG,
	queue *events.Queue, progression *ProgressionSystem) *WaveSystem {
	s := &WaveSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
		progression:   progression,
	}
	s.enterPreparing(1)
	return s
}

// SetVerbose 设置是否输出详细日志
func (s *WaveSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Status 返回当前波次状态的副本
func (s *WaveSystem) Status() WaveStatus {
	status := WaveStatus{
		Number:         s.wave.Number,
		TotalWaves:     s.config.Waves.TotalWaves,
		Phase:          s.phase,
		EnemiesSpawned: s.enemiesSpawned,
		EnemiesToSpawn: s.enemiesToSpawn,
		BossWave:       s.wave.BossWave,
		MegaBossWave:   s.wave.MegaBossWave,
	}
	switch s.phase {
	case types.WavePreparing:
		status.Countdown = maxFloat(0, s.config.Waves.PreparationDuration-s.phaseTimer)
	case types.WaveBreak:
		status.Countdown = maxFloat(0, s.config.Waves.BreakDuration-s.phaseTimer)
	}
	return status
}

// Phase 当前阶段
func (s *WaveSystem) Phase() types.WavePhase {
	return s.phase
}

// Update 推进波次状态机
//
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *WaveSystem) Update(deltaTime float64) {
	s.phaseTimer += deltaTime

	switch s.phase {
	case types.WavePreparing:
		s.updatePreparing()
	case types.WaveActive:
		s.updateActive(deltaTime)
	case types.WaveBreak:
		s.updateBreak()
	}
}

func (s *WaveSystem) updatePreparing() {
	if !s.announced {
		s.announceWave()
		s.announced = true
	}
	if s.phaseTimer >= s.config.Waves.PreparationDuration {
		s.startWave()
	}
}

// updateActive 按累积计时生成敌人，并检查完成条件
func (s *WaveSystem) updateActive(deltaTime float64) {
	interval := s.wave.SpawnInterval
	s.spawnTimer += deltaTime
	for s.enemiesSpawned < s.enemiesToSpawn && s.spawnTimer >= interval {
		s.spawnTimer -= interval
		if s.spawnEnemy() {
			s.enemiesSpawned++
		}
	}

	if s.enemiesSpawned >= s.enemiesToSpawn && s.liveEnemies() == 0 {
		s.completeWave()
	}
}

func (s *WaveSystem) updateBreak() {
	if s.phaseTimer < s.config.Waves.BreakDuration {
		return
	}
	next := s.wave.Number + 1
	if next > s.config.Waves.TotalWaves {
		s.enterVictory()
		return
	}
	s.enterPreparing(next)
}

// enterPreparing 进入第 n 波的准备阶段
func (s *WaveSystem) enterPreparing(n int) {
	s.wave = s.config.Waves.Wave(n)
	s.setPhase(types.WavePreparing)
	s.enemiesSpawned = 0
	s.enemiesToSpawn = s.wave.EnemyCount
	s.announced = false

	s.gameState.WaveNumber = n
	if n > s.gameState.Stats.HighestWave {
		s.gameState.Stats.HighestWave = n
	}
}

// startWave 进入刷怪阶段
// 计时器预置为一个完整间隔，因此第一只敌人在进入阶段的当帧生成
func (s *WaveSystem) startWave() {
	s.setPhase(types.WaveActive)
	s.enemiesSpawned = 0
	s.enemiesToSpawn = s.wave.EnemyCount
	s.spawnTimer = s.wave.SpawnInterval

	s.queue.Push(events.Announcement{Text: fmt.Sprintf("Wave %d START!", s.wave.Number), Color: waveAnnounceColor})
	log.Printf("[WaveSystem] Wave %d started: %d enemies, interval %.2fs, elite %.0f%%, difficulty x%.2f",
		s.wave.Number, s.wave.EnemyCount, s.wave.SpawnInterval, s.wave.EliteChance*100, s.wave.DifficultyMultiplier)
}

// completeWave 发放奖励并进入休息阶段
// Completed 是瞬时阶段，在同一帧内切换到 Break
func (s *WaveSystem) completeWave() {
	s.setPhase(types.WaveCompleted)
	n := s.wave.Number

	s.gameState.Stats.RecordWaveCompleted(n)
	s.queue.Push(events.Announcement{Text: fmt.Sprintf("Wave %d COMPLETE!", n), Color: waveCompleteColor})

	bonus := s.config.Waves.BonusXPPerWave * n
	if bonus > 0 {
		s.queue.Push(events.Announcement{Text: fmt.Sprintf("+%d Wave Bonus XP!", bonus), Color: waveBonusColor})
		s.progression.GainXP(bonus)
	}

	log.Printf("[WaveSystem] Wave %d completed, bonus %d xp", n, bonus)
	s.setPhase(types.WaveBreak)
}

func (s *WaveSystem) enterVictory() {
	s.setPhase(types.WaveVictory)
	s.queue.Push(events.Announcement{Text: victoryAnnounceText, Color: waveBonusColor})
	s.gameState.Finish(types.RunVictory)
	log.Printf("[WaveSystem] All %d waves cleared", s.config.Waves.TotalWaves)
}

func (s *WaveSystem) setPhase(phase types.WavePhase) {
	s.phase = phase
	s.phaseTimer = 0
	s.gameState.WavePhase = phase
}

// announceWave 准备阶段的波次公告
func (s *WaveSystem) announceWave() {
	text := fmt.Sprintf("Wave %d: %d Enemies", s.wave.Number, s.wave.EnemyCount)
	c := waveAnnounceColor
	switch {
	case s.wave.MegaBossWave:
		text = fmt.Sprintf("Wave %d: MEGA BOSS WAVE!", s.wave.Number)
		c = megaBossWaveColor
	case s.wave.BossWave:
		text = fmt.Sprintf("Wave %d: BOSS WAVE!", s.wave.Number)
		c = bossWaveColor
	}
	s.queue.Push(events.Announcement{Text: text, Color: c})

	if countdown := int(s.config.Waves.PreparationDuration - s.phaseTimer); countdown > 0 {
		s.queue.Push(events.Announcement{Text: fmt.Sprintf("Starting in %d...", countdown), Color: countdownTextColor})
	}
}

// spawnEnemy 生成一只本波敌人
// 返回是否生成成功，失败（类型未配置）不计入生成数
func (s *WaveSystem) spawnEnemy() bool {
	t := s.progression.PickSpawnType(s.progression.SpawnableTypes(s.wave.EnemyTypes))
	elite := s.rng.Chance(s.wave.EliteChance)

	if s.enemiesSpawned == 0 {
		switch {
		case s.wave.MegaBossWave:
			t = types.EnemyMegaBoss
		case s.wave.BossWave:
			t = types.EnemyBoss
		}
	}

	pos := s.spawnPosition()
	opts := s.progression.SpawnOptions(elite, s.wave.DifficultyMultiplier)
	id, err := entities.NewEnemy(s.entityManager, s.config, t, pos, opts)
	if err != nil {
		log.Printf("[WaveSystem] Failed to spawn %s: %v", t, err)
		return false
	}

	if s.verbose {
		log.Printf("[WaveSystem] Spawned %s (ID: %d, elite: %v) at (%.0f, %.0f), %d/%d",
			t, id, elite, pos.X, pos.Y, s.enemiesSpawned+1, s.enemiesToSpawn)
	}
	return true
}

// spawnPosition 在竞技场四边之外随机选择生成点
func (s *WaveSystem) spawnPosition() utils.Vec2 {
	margin := int(s.config.Waves.SpawnMargin)
	w := int(s.config.Player.ArenaWidth)
	h := int(s.config.Player.ArenaHeight)

	switch s.rng.Intn(4) {
	case 0: // 上
		return utils.V(float64(s.rng.IntRange(margin, w-margin)), float64(-margin))
	case 1: // 下
		return utils.V(float64(s.rng.IntRange(margin, w-margin)), float64(h+margin))
	case 2: // 左
		return utils.V(float64(-margin), float64(s.rng.IntRange(margin, h-margin)))
	default: // 右
		return utils.V(float64(w+margin), float64(s.rng.IntRange(margin, h-margin)))
	}
}

func (s *WaveSystem) liveEnemies() int {
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager))
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
