package systems

import (
	"log"
	"math"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// 移动参数
const (
	// zigzagFrequency 快速敌人之字形摆动频率（弧度/秒）
	zigzagFrequency = 5.0
	// retreatFactor 远程敌人距离小于 KeepDistance*retreatFactor 时后退
	retreatFactor = 0.8
	// orbJitterChance 经验球每帧随机扰动的概率
	orbJitterChance = 0.1
	// orbJitterSpeed 经验球随机扰动的最大速度增量
	orbJitterSpeed = 20
)

// MovementSystem 移动与越界清理
//
// 职责：
//   - 玩家按输入方向移动，限制在竞技场边缘之内
//   - 敌人追击玩家（速度倍率来自护盾/冲刺/相位），快速敌人之字形摆动，远程敌人保持距离
//   - 子弹直线飞行、追踪最近的敌人、在竞技场边缘反弹
//   - 经验球进入拾取范围后飞向玩家，否则漂移减速
//   - 远离竞技场的子弹与敌人、坐标非法的实体直接删除
type MovementSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG

	verbose bool
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *MovementSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 移动所有实体
//
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *MovementSystem) Update(deltaTime float64) {
	player, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}
	s.movePlayer(player, deltaTime)
	s.moveEnemies(player.pos.Pos, deltaTime)
	s.moveProjectiles(deltaTime)
	s.moveOrbs(player, deltaTime)
}

// movePlayer 按输入方向移动玩家
func (s *MovementSystem) movePlayer(p playerRefs, deltaTime float64) {
	direction := s.gameState.Input.Move.Normalize()
	velocity := direction.Scale(p.player.Speed)
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, p.id); ok {
		vel.Vel = velocity
	}

	arena := &s.config.Player
	margin := arena.Player.EdgeMargin
	next := p.pos.Pos.Add(velocity.Scale(deltaTime))
	next.X = utils.Clamp(next.X, margin, arena.ArenaWidth-margin)
	next.Y = utils.Clamp(next.Y, margin, arena.ArenaHeight-margin)
	p.pos.Pos = next
}

// moveEnemies 敌人朝玩家移动
func (s *MovementSystem) moveEnemies(playerPos utils.Vec2, deltaTime float64) {
	margin := s.config.Player.Cleanup.EnemyMargin

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		// 蓄力中原地不动
		if enemy.IsChargingDash || enemy.IsChargingLaser {
			s.setVelocity(id, utils.Vec2{})
			continue
		}

		toPlayer := playerPos.Sub(pos.Pos)
		distance := toPlayer.Length()
		direction := toPlayer.Normalize()
		speed := enemy.Speed * enemy.SpeedModifier()

		velocity := direction.Scale(speed)
		if enemy.KeepDistance > 0 {
			switch {
			case distance > enemy.KeepDistance:
			case distance < enemy.KeepDistance*retreatFactor:
				velocity = velocity.Scale(-1)
			default:
				velocity = utils.Vec2{}
			}
		}
		if enemy.Type == types.EnemyFast && enemy.Zigzag != 0 {
			perpendicular := utils.V(-direction.Y, direction.X)
			velocity = velocity.Add(perpendicular.Scale(math.Sin(s.gameState.ElapsedTime*zigzagFrequency) * enemy.Zigzag))
		}

		s.setVelocity(id, velocity)
		pos.Pos = pos.Pos.Add(velocity.Scale(deltaTime))

		if outsideArena(pos.Pos, &s.config.Player, margin) {
			log.Printf("[MovementSystem] Enemy %d (%s) left the arena at (%.0f, %.0f), removed", id, enemy.Type, pos.Pos.X, pos.Pos.Y)
			s.entityManager.DestroyEntity(id)
		}
	}
}

// moveProjectiles 移动所有子弹
func (s *MovementSystem) moveProjectiles(deltaTime float64) {
	arena := &s.config.Player
	margin := arena.Cleanup.ProjectileMargin

	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		if !proj.Hostile && proj.HomingStrength > 0 {
			s.steerHoming(proj, pos, vel, deltaTime)
		}

		pos.Pos = pos.Pos.Add(vel.Vel.Scale(deltaTime))

		if proj.MaxBounces > 0 {
			half := 0.0
			if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
				half = col.Width / 2
			}
			if s.bounce(pos, vel, proj, half) && proj.Bounces >= proj.MaxBounces {
				s.entityManager.DestroyEntity(id)
				continue
			}
		}

		if outsideArena(pos.Pos, arena, margin) {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// steerHoming 将速度方向向最近的敌人偏转，速率保持不变
func (s *MovementSystem) steerHoming(proj *components.ProjectileComponent, pos *components.PositionComponent,
	vel *components.VelocityComponent, deltaTime float64) {
	target, ok := s.nearestEnemy(pos.Pos, proj.HomingRange)
	if !ok {
		return
	}
	speed := vel.Vel.Length()
	if speed == 0 {
		speed = proj.Speed
	}
	desired := target.Sub(pos.Pos).Normalize().Scale(speed)
	t := math.Min(1, proj.HomingStrength*deltaTime*60)
	vel.Vel = vel.Vel.Lerp(desired, t)
}

// nearestEnemy 返回 maxRange 范围内最近的敌人位置
func (s *MovementSystem) nearestEnemy(from utils.Vec2, maxRange float64) (utils.Vec2, bool) {
	best := math.Inf(1)
	var bestPos utils.Vec2
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if d := pos.Pos.Distance(from); d < best {
			best = d
			bestPos = pos.Pos
		}
	}
	if math.IsInf(best, 1) || (maxRange > 0 && best >= maxRange) {
		return utils.Vec2{}, false
	}
	return bestPos, true
}

// bounce 在竞技场边缘按分量反射速度
// 只有朝外运动的分量才会反射，每次反射计一次弹跳；返回本帧是否发生反弹
func (s *MovementSystem) bounce(pos *components.PositionComponent, vel *components.VelocityComponent,
	proj *components.ProjectileComponent, half float64) bool {
	arena := &s.config.Player
	bounced := false
	if (pos.Pos.X-half <= 0 && vel.Vel.X < 0) || (pos.Pos.X+half >= arena.ArenaWidth && vel.Vel.X > 0) {
		vel.Vel.X = -vel.Vel.X
		proj.Bounces++
		bounced = true
	}
	if (pos.Pos.Y-half <= 0 && vel.Vel.Y < 0) || (pos.Pos.Y+half >= arena.ArenaHeight && vel.Vel.Y > 0) {
		vel.Vel.Y = -vel.Vel.Y
		proj.Bounces++
		bounced = true
	}
	return bounced
}

// moveOrbs 经验球：进入拾取范围后锁定飞向玩家，否则漂移并减速
func (s *MovementSystem) moveOrbs(p playerRefs, deltaTime float64) {
	orbCfg := &s.config.Player.XPOrb

	ids := ecs.GetEntitiesWith3[*components.XPOrbComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		orb, _ := ecs.GetComponent[*components.XPOrbComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		toPlayer := p.pos.Pos.Sub(pos.Pos)
		distance := toPlayer.Length()
		if distance <= p.player.PickupRange {
			orb.Magnetized = true
		}

		if orb.Magnetized && distance > 0 {
			step := orbCfg.PickupSpeed * deltaTime
			if step > distance {
				step = distance
			}
			pos.Pos = pos.Pos.Add(toPlayer.Normalize().Scale(step))
			continue
		}

		pos.Pos = pos.Pos.Add(vel.Vel.Scale(deltaTime))
		vel.Vel = vel.Vel.Scale(math.Pow(orbCfg.Friction, deltaTime*60))
		if s.rng.Chance(orbJitterChance) {
			vel.Vel = vel.Vel.Add(utils.V(s.rng.Range(-orbJitterSpeed, orbJitterSpeed), s.rng.Range(-orbJitterSpeed, orbJitterSpeed)))
		}
	}
}

func (s *MovementSystem) setVelocity(id ecs.EntityID, v utils.Vec2) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		vel.Vel = v
	}
}
