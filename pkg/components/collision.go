package components

import "github.com/decker502/bulletheaven/pkg/utils"

// CollisionComponent 定义实体的碰撞检测边界框
// 包围盒以实体位置为中心，用于子弹与敌人、敌人与玩家、玩家与拾取物之间的 AABB 检测
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}

// NewSquareCollision 创建正方形碰撞盒
func NewSquareCollision(size float64) *CollisionComponent {
	return &CollisionComponent{Width: size, Height: size}
}

// Rect 返回以 pos 为中心的包围盒
func (c *CollisionComponent) Rect(pos utils.Vec2) utils.Rect {
	return utils.Rect{Center: pos, Width: c.Width, Height: c.Height}
}
