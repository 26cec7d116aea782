package types

import "fmt"

// PowerUpType 定义道具类型
type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpDamage
	PowerUpRapidFire
	PowerUpShield
	PowerUpHeal
	PowerUpInvincibility
	PowerUpMultiShot
	PowerUpPiercing
	PowerUpExplosiveShots
)

var powerUpTypeNames = []string{
	"speed", "damage", "rapid_fire", "shield", "heal", "invincibility", "multi_shot", "piercing", "explosive_shots",
}

// AllPowerUpTypes 按声明顺序返回所有道具类型
func AllPowerUpTypes() []PowerUpType {
	result := make([]PowerUpType, len(powerUpTypeNames))
	for i := range powerUpTypeNames {
		result[i] = PowerUpType(i)
	}
	return result
}

func (t PowerUpType) String() string {
	if int(t) >= 0 && int(t) < len(powerUpTypeNames) {
		return powerUpTypeNames[t]
	}
	return "unknown"
}

// ParsePowerUpType 将配置键解析为道具类型
func ParsePowerUpType(name string) (PowerUpType, error) {
	for i, n := range powerUpTypeNames {
		if n == name {
			return PowerUpType(i), nil
		}
	}
	return PowerUpSpeed, fmt.Errorf("unknown power-up type %q", name)
}
