package game

import "github.com/decker502/bulletheaven/pkg/utils"

// InputSnapshot 一帧的玩家输入
// 由表现层采集后传给 Simulation.Update，核心不直接读取设备
type InputSnapshot struct {
	Move   utils.Vec2 // 移动方向，各分量取值 -1..1，不要求归一化
	Target utils.Vec2 // 瞄准点（世界坐标）
	Fire   bool       // 是否按住开火
}
