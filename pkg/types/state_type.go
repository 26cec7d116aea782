package types

// WavePhase 波次状态机的阶段
type WavePhase int

const (
	WavePreparing WavePhase = iota // 准备倒计时
	WaveActive                     // 刷怪中
	WaveCompleted                  // 瞬时：发放奖励
	WaveBreak                      // 波次间休息
	WaveVictory                    // 全部波次完成
)

func (p WavePhase) String() string {
	switch p {
	case WavePreparing:
		return "preparing"
	case WaveActive:
		return "active"
	case WaveCompleted:
		return "completed"
	case WaveBreak:
		return "break"
	case WaveVictory:
		return "victory"
	}
	return "unknown"
}

// RunState 整局模拟的运行状态
type RunState int

const (
	RunPlaying  RunState = iota
	RunPaused            // 等待升级选择
	RunGameOver          // 玩家死亡
	RunVictory
)

func (s RunState) String() string {
	switch s {
	case RunPlaying:
		return "playing"
	case RunPaused:
		return "paused"
	case RunGameOver:
		return "game_over"
	case RunVictory:
		return "victory"
	}
	return "unknown"
}
