package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// EnemySpawnOptions 生成敌人时的修正参数
type EnemySpawnOptions struct {
	Elite                bool
	DifficultyMultiplier float64 // 波次难度倍率，作用于 hp 和接触伤害，0 视为 1
	HPMultiplier         float64 // 玩家等级成长倍率，0 视为 1
	DamageMultiplier     float64
	SpeedMultiplier      float64
	// UnlockedAbilities 已解锁的技能键；带 unlock 键的技能只有解锁后才会加入
	UnlockedAbilities map[string]bool
	// EliteEnhancement 非 nil 时强化坦克、快速、Boss 以及精英敌人
	EliteEnhancement *config.EliteEnhancement
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// NewEnemy 创建指定类型的敌人实体
//
// 倍率在生成时一次性作用（向下取整），之后不会再回溯修改
//
// 参数:
//   - em: 实体管理器
//   - cfg: 全局配置
//   - t: 敌人类型
//   - pos: 生成位置
//   - opts: 生成修正
//
// 返回:
//   - ecs.EntityID: 创建的敌人ID
//   - error: 类型未配置时返回错误
func NewEnemy(em *ecs.EntityManager, cfg *config.GameConfig, t types.EnemyType, pos utils.Vec2, opts EnemySpawnOptions) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	stats, ok := cfg.Enemies.GetEnemyStats(t)
	if !ok {
		return 0, fmt.Errorf("enemy type %s is not configured", t)
	}

	difficulty := orOne(opts.DifficultyMultiplier)
	maxHP := int(float64(stats.MaxHP) * difficulty)
	collisionDamage := float64(int(float64(stats.CollisionDamage) * difficulty))

	maxHP = int(float64(maxHP) * orOne(opts.HPMultiplier))
	collisionDamage = float64(int(collisionDamage * orOne(opts.DamageMultiplier)))
	speed := float64(int(stats.Speed * orOne(opts.SpeedMultiplier)))

	if opts.EliteEnhancement != nil && (opts.Elite || t == types.EnemyTank || t == types.EnemyFast || t == types.EnemyBoss) {
		maxHP = int(float64(maxHP) * opts.EliteEnhancement.HPMultiplier)
		collisionDamage = float64(int(collisionDamage * opts.EliteEnhancement.DamageMultiplier))
	}
	if maxHP < 1 {
		maxHP = 1
	}

	enemy := &components.EnemyComponent{
		Type:                t,
		Elite:               opts.Elite,
		Speed:               speed,
		CollisionDamage:     collisionDamage,
		Damage:              stats.Damage,
		XPValue:             stats.XPValue,
		Size:                stats.Size,
		Color:               ToRGBA(stats.Color),
		KeepDistance:        stats.KeepDistance,
		Zigzag:              stats.Zigzag,
		Abilities:           make([]string, 0, len(stats.Abilities)),
		Cooldowns:           make(map[string]float64, len(stats.Abilities)),
		Phase:               1,
		DashSpeedMultiplier: 2,
		MaxSummons:          stats.MaxSummons,
		SummonTypes:         cfg.Enemies.SummonTypesFor(stats),
	}
	for _, a := range stats.Abilities {
		if a.Unlock != "" && !opts.UnlockedAbilities[a.Unlock] {
			continue
		}
		enemy.Abilities = append(enemy.Abilities, a.Name)
		enemy.Cooldowns[a.Name] = a.InitialCooldown
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{Pos: pos})
	em.AddComponent(id, &components.VelocityComponent{})
	em.AddComponent(id, components.NewHealth(maxHP))
	em.AddComponent(id, components.NewSquareCollision(stats.Size))
	em.AddComponent(id, enemy)
	return id, nil
}

// ToRGBA 将配置中的 [r,g,b] 或 [r,g,b,a] 转为颜色，格式不对时返回白色
func ToRGBA(c []int) color.RGBA {
	if len(c) < 3 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	rgba := color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
	if len(c) >= 4 {
		rgba.A = uint8(c[3])
	}
	return rgba
}
