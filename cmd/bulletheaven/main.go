// bulletheaven 俯视角生存射击游戏入口
//
// 用法:
//
//	go run ./cmd/bulletheaven                    # 打开窗口开始一局
//	go run ./cmd/bulletheaven --seed=42          # 固定随机种子
//	go run ./cmd/bulletheaven --config=./tuning  # 用目录中的 YAML 覆盖内置配置
//	go run ./cmd/bulletheaven --headless --ticks=36000
//
// 无窗口模式用自动驾驶输入跑完一局并打印统计，便于回归对比数值调整。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/bulletheaven/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	seed      = flag.Int64("seed", 0, "随机种子（0 表示按时间取种子）")
	configDir = flag.String("config", "", "配置目录，缺失的文件使用内置配置")
	verbose   = flag.Bool("verbose", false, "显示详细日志")
	headless  = flag.Bool("headless", false, "不打开窗口，用自动驾驶跑一局")
	ticks     = flag.Int("ticks", 36000, "无窗口模式的最大 tick 数（60 tick = 1 秒）")
)

func main() {
	flag.Parse()

	if *headless {
		runHeadless()
		return
	}

	a, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Seed:      *seed,
		ConfigDir: *configDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	w, h := a.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Bullet Heaven")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}

func runHeadless() {
	if !*verbose {
		log.SetFlags(0)
		log.SetOutput(io.Discard)
	}

	cfg, err := app.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	result, err := app.RunHeadless(cfg, *seed, *ticks, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	result.WriteReport(os.Stdout)
}
