package types

import "fmt"

// ProjectileType 定义子弹/武器类型
type ProjectileType int

const (
	ProjectileBasic ProjectileType = iota
	ProjectilePiercing
	ProjectileExplosive
	ProjectileRapid
	ProjectileSpread
	ProjectileBouncing
	ProjectileHoming
	ProjectileLaser
	ProjectileHybrid
)

var projectileTypeNames = []string{
	"basic", "piercing", "explosive", "rapid", "spread", "bouncing", "homing", "laser", "hybrid",
}

// String 返回配置文件中使用的类型键
func (t ProjectileType) String() string {
	if int(t) >= 0 && int(t) < len(projectileTypeNames) {
		return projectileTypeNames[t]
	}
	return "unknown"
}

// ParseProjectileType 将配置键解析为子弹类型
func ParseProjectileType(name string) (ProjectileType, error) {
	for i, n := range projectileTypeNames {
		if n == name {
			return ProjectileType(i), nil
		}
	}
	return ProjectileBasic, fmt.Errorf("unknown projectile type %q", name)
}
