package game

import (
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/types"
)

// GameState 存储一局模拟的全局状态
// 由 Simulation 创建并传给各系统共享，各系统只读写自己负责的字段
type GameState struct {
	State       types.RunState // 运行状态（暂停仅用于等待升级选择）
	ElapsedTime float64        // 已进行的模拟时间（秒）

	WaveNumber int             // 当前波次编号，从 1 开始
	WavePhase  types.WavePhase // 当前波次阶段

	Combo *Combo
	Stats *Stats

	// PendingUpgrades 升级暂停期间等待选择的候选项
	PendingUpgrades []Upgrade

	// Input 本帧的玩家输入，由 Simulation 在每帧开始时写入
	Input InputSnapshot
}

// NewGameState 创建一局新的状态
func NewGameState(comboCfg config.ComboStats) *GameState {
	return &GameState{
		State:      types.RunPlaying,
		WaveNumber: 1,
		WavePhase:  types.WavePreparing,
		Combo:      NewCombo(comboCfg.Timeout, comboCfg.Milestones),
		Stats:      &Stats{HighestWave: 1},
	}
}

// IsPlaying 模拟是否推进
func (gs *GameState) IsPlaying() bool {
	return gs.State == types.RunPlaying
}

// IsFinished 本局是否已结束（胜利或失败）
func (gs *GameState) IsFinished() bool {
	return gs.State == types.RunGameOver || gs.State == types.RunVictory
}

// Pause 进入升级暂停，结束状态不会被覆盖
func (gs *GameState) Pause() {
	if gs.State == types.RunPlaying {
		gs.State = types.RunPaused
	}
}

// Resume 从升级暂停恢复
func (gs *GameState) Resume() {
	if gs.State == types.RunPaused {
		gs.State = types.RunPlaying
	}
}

// Finish 设置结束状态，只生效一次
func (gs *GameState) Finish(state types.RunState) {
	if gs.IsFinished() {
		return
	}
	gs.State = state
}
