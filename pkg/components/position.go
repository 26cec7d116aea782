package components

import "github.com/decker502/bulletheaven/pkg/utils"

// PositionComponent 实体中心点的世界坐标（像素）
type PositionComponent struct {
	Pos utils.Vec2
}

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	Vel utils.Vec2
}
