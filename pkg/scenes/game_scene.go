package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/simulation"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 配色
var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 28, A: 255}
	gridColor       = color.RGBA{R: 32, G: 32, B: 48, A: 255}
	playerColor     = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	shieldColor     = color.RGBA{R: 120, G: 180, B: 255, A: 160}
	orbColor        = color.RGBA{R: 120, G: 255, B: 120, A: 255}
	hostileColor    = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	bulletColor     = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	critColor       = color.RGBA{R: 255, G: 150, B: 40, A: 255}
	hudTextColor    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// gridSpacing 背景网格间距（像素）
const gridSpacing = 80

// GameScene 一局游戏的表现层
//
// 职责：
//   - 每帧采集键鼠输入生成 InputSnapshot，推进 Simulation
//   - 绘制模拟快照（玩家、敌人、子弹、经验球、道具）与 HUD
//   - 消费事件队列，生成飘字、爆炸圈、激光与公告
//   - 升级暂停时显示候选卡片，结束时显示结算面板
//
// 架构说明：
//   - 场景只读快照，从不直接访问实体管理器
//   - 手动暂停（Esc）只是不调用 Simulation.Update，与升级暂停无关
type GameScene struct {
	sim          *simulation.Simulation
	sceneManager *game.SceneManager
	face         text.Face

	snapshot simulation.Snapshot
	effects  *effectLayer

	manualPause bool
}

// NewGameScene 创建游戏场景
//
// 参数:
//   - sim: 已创建的模拟
//   - sceneManager: 场景管理器（重开一局时使用），可以为 nil
func NewGameScene(sim *simulation.Simulation, sceneManager *game.SceneManager) *GameScene {
	s := &GameScene{
		sim:          sim,
		sceneManager: sceneManager,
		face:         text.NewGoXFace(basicfont.Face7x13),
		effects:      newEffectLayer(),
	}

	dispatcher := events.NewDispatcher()
	s.effects.subscribe(dispatcher)
	// 创建模拟时产生的事件先补发一次
	pending := sim.Events().Drain()
	for _, e := range pending {
		dispatcher.Dispatch(e)
	}
	s.effects.consume(pending)
	sim.Events().SetDispatcher(dispatcher)

	s.snapshot = sim.Snapshot()
	log.Printf("[GameScene] Created (seed %d)", sim.Seed())
	return s
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	input := readInput(s.snapshot.Player.Pos)

	if input.togglePause && !s.isFinished() {
		s.manualPause = !s.manualPause
		log.Printf("[GameScene] Manual pause: %v", s.manualPause)
	}

	switch {
	case s.isFinished():
		if input.restart && s.sceneManager != nil {
			log.Printf("[GameScene] Restarting run")
			s.sceneManager.StartRun(0)
			return
		}
	case s.sim.State() == types.RunPaused:
		if index, ok := input.upgradeChoice(s.upgradeCardAt); ok {
			if err := s.sim.SelectUpgrade(index); err != nil {
				log.Printf("[GameScene] Upgrade selection failed: %v", err)
			}
		}
	case !s.manualPause:
		s.sim.Update(deltaTime, input.snapshot)
	}

	s.effects.consume(s.sim.Events().Drain())
	if !s.manualPause {
		s.effects.update(deltaTime)
	}
	s.snapshot = s.sim.Snapshot()
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawGrid(screen)

	snap := &s.snapshot
	s.drawPowerUps(screen, snap)
	s.drawOrbs(screen, snap)
	s.drawEnemies(screen, snap)
	s.drawProjectiles(screen, snap)
	s.drawPlayer(screen, snap)
	s.effects.draw(screen, s.face)

	s.drawHUD(screen, snap)
	switch {
	case s.isFinished():
		s.drawResults(screen, snap)
	case snap.State == types.RunPaused:
		s.drawUpgradeCards(screen, snap)
	case s.manualPause:
		_, h := s.arenaSize()
		s.drawCenteredText(screen, "PAUSED - press Esc to resume", h/2, hudTextColor)
	}
}

func (s *GameScene) isFinished() bool {
	state := s.sim.State()
	return state == types.RunGameOver || state == types.RunVictory
}

// Snapshot 最近一次的模拟快照
func (s *GameScene) Snapshot() simulation.Snapshot {
	return s.snapshot
}
