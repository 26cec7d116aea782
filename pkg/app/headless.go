package app

import (
	"fmt"
	"io"
	"sort"

	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/simulation"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// HeadlessTickRate 无窗口模式的固定步长（每秒 tick 数）
const HeadlessTickRate = 60

// 自动驾驶参数
const (
	autopilotDangerRadius = 220.0 // 敌人进入此距离时后撤
	autopilotOrbitPeriod  = 240   // 无威胁时绕圈的周期（tick）
)

// HeadlessResult 无窗口运行的结果
type HeadlessResult struct {
	Seed  int64
	Ticks int
	State types.RunState
	Stats game.Stats
}

// RunHeadless 不创建窗口，用自动驾驶输入推进模拟
// 升级总是选第一张卡片，模拟结束或达到 ticks 后返回
func RunHeadless(cfg *config.GameConfig, seed int64, ticks int, verbose bool) (*HeadlessResult, error) {
	sim, err := NewSimulation(cfg, seed, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	sim.SetUpgradeChooser(game.UpgradeChooserFunc(func([]game.Upgrade) int { return 0 }))

	deltaTime := 1.0 / HeadlessTickRate
	tick := 0
	for ; tick < ticks; tick++ {
		snap := sim.Snapshot()
		if snap.State == types.RunGameOver || snap.State == types.RunVictory {
			break
		}
		sim.Update(deltaTime, Autopilot(snap, tick))
		sim.Events().Drain()
	}

	snap := sim.Snapshot()
	return &HeadlessResult{
		Seed:  sim.Seed(),
		Ticks: tick,
		State: snap.State,
		Stats: snap.Stats,
	}, nil
}

// Autopilot 根据快照生成输入
// 瞄准最近的敌人并持续开火，敌人靠近时后撤，否则绕场地中心移动
func Autopilot(snap simulation.Snapshot, tick int) game.InputSnapshot {
	pos := snap.Player.Pos
	input := game.InputSnapshot{
		Target: pos.Add(utils.V(1, 0)),
		Fire:   true,
	}

	nearest, ok := nearestEnemy(snap)
	if ok && nearest != pos {
		input.Target = nearest
		if pos.Distance(nearest) < autopilotDangerRadius {
			input.Move = pos.Sub(nearest).Normalize()
			return input
		}
	}

	// 绕圈：四个方向依次切换
	switch (tick / (autopilotOrbitPeriod / 4)) % 4 {
	case 0:
		input.Move = utils.V(1, 0)
	case 1:
		input.Move = utils.V(0, 1)
	case 2:
		input.Move = utils.V(-1, 0)
	default:
		input.Move = utils.V(0, -1)
	}
	return input
}

func nearestEnemy(snap simulation.Snapshot) (utils.Vec2, bool) {
	var best utils.Vec2
	bestDist := -1.0
	for _, e := range snap.Enemies {
		d := snap.Player.Pos.Distance(e.Pos)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Pos, d
		}
	}
	return best, bestDist >= 0
}

// WriteReport 输出一局的统计报告
func (r *HeadlessResult) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "seed:            %d\n", r.Seed)
	fmt.Fprintf(w, "ticks:           %d\n", r.Ticks)
	fmt.Fprintf(w, "result:          %s\n", r.State)
	fmt.Fprintf(w, "time survived:   %.1fs\n", r.Stats.TimeSurvived)
	fmt.Fprintf(w, "highest wave:    %d\n", r.Stats.HighestWave)
	fmt.Fprintf(w, "level reached:   %d\n", r.Stats.LevelReached)
	fmt.Fprintf(w, "enemies killed:  %d\n", r.Stats.EnemiesKilled)
	fmt.Fprintf(w, "damage dealt:    %d\n", r.Stats.DamageDealt)
	fmt.Fprintf(w, "damage taken:    %d\n", r.Stats.DamageTaken)
	fmt.Fprintf(w, "accuracy:        %.1f%%\n", r.Stats.Accuracy())
	fmt.Fprintf(w, "max combo:       %d\n", r.Stats.MaxCombo)

	kinds := make([]string, 0, len(r.Stats.KillsByEnemyType))
	for k := range r.Stats.KillsByEnemyType {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-14s %d\n", k+":", r.Stats.KillsByEnemyType[k])
	}
}
