package systems

import (
	"log"
	"math"

	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// WeaponSystem 玩家射击
//
// 职责：
//   - 按住开火时累积射击计时，达到射击间隔后发射一轮子弹；松开时计时归零
//   - 一轮子弹的数量 = 武器子弹数（多重射击道具额外增加），按散射角均匀展开
//   - 计算子弹伤害：武器伤害 × 武器等级倍率 × 玩家伤害倍率，暴击判定在发射时完成
//   - 穿透与爆炸弹道具附加到本轮子弹上
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG

	verbose bool
}

// NewWeaponSystem 创建射击系统
func NewWeaponSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG) *WeaponSystem {
	return &WeaponSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *WeaponSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 读取本帧输入并处理射击
//
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *WeaponSystem) Update(deltaTime float64) {
	p, ok := lookupPlayer(s.entityManager)
	if !ok || p.weapon == nil {
		return
	}

	input := s.gameState.Input
	p.player.IsShooting = input.Fire
	if !p.player.IsShooting {
		p.player.ShootTimer = 0
		return
	}

	fireRate := p.weapon.FireRate * p.player.FireRateScale()
	if fireRate <= 0 {
		return
	}
	p.player.ShootTimer += deltaTime
	if p.player.ShootTimer < 1/fireRate {
		return
	}
	p.player.ShootTimer = 0
	s.fire(p, input.Target)
}

// fire 朝瞄准点发射一轮子弹
// 返回本轮发射的子弹数
func (s *WeaponSystem) fire(p playerRefs, target utils.Vec2) int {
	weaponCfg := &s.config.Weapons
	weapon := p.weapon
	player := p.player

	direction := target.Sub(p.pos.Pos).Normalize()
	if direction.Length() == 0 {
		direction = utils.V(1, 0)
	}

	count := weapon.ProjectileCount
	if player.HasEffect(types.PowerUpMultiShot) {
		count += int(player.EffectMagnitude(types.PowerUpMultiShot, 1)) - 1
	}
	if count < 1 {
		count = 1
	}

	damage := weapon.Damage * weapon.LevelDamageMultiplier(weaponCfg.LevelDamageStep) * player.DamageScale()
	piercing := player.Piercing || player.HasEffect(types.PowerUpPiercing)
	explosive := player.HasEffect(types.PowerUpExplosiveShots)

	step := 0.0
	start := 0.0
	if count > 1 {
		step = weapon.SpreadAngle / float64(count-1)
		start = -weapon.SpreadAngle / 2
	}

	for i := 0; i < count; i++ {
		angle := (start + float64(i)*step) * math.Pi / 180
		shot := entities.PlayerShot{
			Pos:           p.pos.Pos,
			Direction:     direction.Rotate(angle),
			Damage:        damage,
			Speed:         weapon.Speed,
			Lifetime:      weapon.Lifetime,
			Piercing:      piercing,
			ExplosiveShot: explosive,
		}
		if s.rng.Chance(weaponCfg.CritChance) {
			shot.Critical = true
			shot.Damage *= weaponCfg.CritMultiplier
		}
		entities.NewPlayerProjectile(s.entityManager, weaponCfg, weapon, shot)
	}

	s.gameState.Stats.TotalShots += count

	if s.verbose {
		log.Printf("[WeaponSystem] Fired %d x %s (damage %.1f, level %d)", count, weapon.Type, damage, weapon.Level)
	}
	return count
}
