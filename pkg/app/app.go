// Package app 提供游戏应用的核心包装器
//
// 该包将模拟与场景的装配逻辑从 main 包提取出来，
// 桌面端通过 cmd/bulletheaven 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/scenes"
	"github.com/decker502/bulletheaven/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 第一局的随机种子，0 表示按时间取种子
	Seed int64
	// ConfigDir 覆盖配置目录，为空则使用内置配置
	ConfigDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameConfig               *config.GameConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := LoadConfig(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		gameConfig: gameConfig,
		verbose:    cfg.Verbose,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(seed int64) game.Scene {
		sim, err := NewSimulation(gameConfig, seed, cfg.Verbose)
		if err != nil {
			log.Printf("[App] Failed to create simulation: %v", err)
			return nil
		}
		return scenes.NewGameScene(sim, sceneManager)
	})
	a.sceneManager = sceneManager

	sceneManager.StartRun(cfg.Seed)
	if sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("failed to start the first run")
	}
	return a, nil
}

// LoadConfig 加载配置，dir 为空时使用内置配置
func LoadConfig(dir string) (*config.GameConfig, error) {
	if dir == "" {
		return config.DefaultGameConfig(), nil
	}
	cfg, err := config.LoadGameConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", dir, err)
	}
	log.Printf("[App] Loaded config overrides from %s", dir)
	return cfg, nil
}

// NewSimulation 按种子创建模拟，种子为 0 时按时间取种子
func NewSimulation(cfg *config.GameConfig, seed int64, verbose bool) (*simulation.Simulation, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim, err := simulation.New(cfg, seed)
	if err != nil {
		return nil, err
	}
	sim.SetVerbose(verbose)
	return sim, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，等于竞技场尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.gameConfig.Player.ArenaWidth), int(a.gameConfig.Player.ArenaHeight)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
