package components

import "github.com/decker502/bulletheaven/pkg/types"

// XPOrbComponent 经验球
type XPOrbComponent struct {
	Value      int
	Magnetized bool // 进入拾取范围后一直飞向玩家
}

// PowerUpComponent 地面道具
type PowerUpComponent struct {
	Type types.PowerUpType
}
