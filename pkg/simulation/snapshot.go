package simulation

import (
	"image/color"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/systems"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// Snapshot 某一帧结束时的只读世界视图
// 所有字段都是值拷贝，持有快照不会影响模拟
type Snapshot struct {
	Player          PlayerView
	Enemies         []EnemyView
	Projectiles     []ProjectileView
	Orbs            []OrbView
	PowerUps        []PowerUpView
	Wave            systems.WaveStatus
	Combo           ComboView
	Stats           game.Stats
	State           types.RunState
	ElapsedTime     float64
	PendingUpgrades []game.Upgrade
}

// PlayerView 玩家状态
type PlayerView struct {
	Alive         bool
	Pos           utils.Vec2
	Size          float64
	HP            int
	MaxHP         int
	Level         int
	XP            int
	XPToNextLevel int
	Speed         float64
	Damage        float64
	FireRate      float64
	PickupRange   float64
	Weapon        types.ProjectileType
	WeaponLevel   int
	HybridTypes   []types.ProjectileType
	// Effects 生效中的道具及剩余秒数
	Effects map[types.PowerUpType]float64
}

// EnemyView 敌人状态
type EnemyView struct {
	ID            ecs.EntityID
	Type          types.EnemyType
	Pos           utils.Vec2
	Size          float64
	Color         color.RGBA
	HP            int
	MaxHP         int
	Elite         bool
	ShieldActive  bool
	Stealthed     bool
	Phased        bool
	Raged         bool
	ChargingDash  bool
	ChargingLaser bool
	DashTarget    utils.Vec2
	Phase         int
}

// ProjectileView 子弹状态
type ProjectileView struct {
	ID       ecs.EntityID
	Type     types.ProjectileType
	Pos      utils.Vec2
	Vel      utils.Vec2
	Size     float64
	Hostile  bool
	Critical bool
	IsMortar bool
	Target   utils.Vec2
}

// OrbView 经验球状态
type OrbView struct {
	ID    ecs.EntityID
	Pos   utils.Vec2
	Size  float64
	Value int
}

// PowerUpView 地面道具状态
type PowerUpView struct {
	ID        ecs.EntityID
	Type      types.PowerUpType
	Pos       utils.Vec2
	Size      float64
	Remaining float64
}

// ComboView 连击状态
type ComboView struct {
	Count int
	Timer float64
	Max   int
}

// Snapshot 生成当前帧的只读快照
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Player:      s.playerView(),
		Wave:        s.waveSystem.Status(),
		Stats:       s.gameState.Stats.Copy(),
		State:       s.gameState.State,
		ElapsedTime: s.gameState.ElapsedTime,
		Combo: ComboView{
			Count: s.gameState.Combo.Count,
			Timer: s.gameState.Combo.Timer,
			Max:   s.gameState.Combo.Max,
		},
	}
	if len(s.gameState.PendingUpgrades) > 0 {
		snap.PendingUpgrades = append([]game.Upgrade(nil), s.gameState.PendingUpgrades...)
	}

	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.HealthComponent](em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:            id,
			Type:          enemy.Type,
			Pos:           pos.Pos,
			Size:          enemy.Size,
			Color:         enemy.Color,
			HP:            health.CurrentHealth,
			MaxHP:         health.MaxHealth,
			Elite:         enemy.Elite,
			ShieldActive:  enemy.ShieldActive,
			Stealthed:     enemy.Stealthed,
			Phased:        enemy.Phased,
			Raged:         enemy.Raged,
			ChargingDash:  enemy.IsChargingDash,
			ChargingLaser: enemy.IsChargingLaser,
			DashTarget:    enemy.DashTarget,
			Phase:         enemy.Phase,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		view := ProjectileView{
			ID:       id,
			Type:     proj.Type,
			Pos:      pos.Pos,
			Size:     entitySize(em, id),
			Hostile:  proj.Hostile,
			Critical: proj.Critical,
			IsMortar: proj.IsMortar,
			Target:   proj.Target,
		}
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id); ok {
			view.Vel = vel.Vel
		}
		snap.Projectiles = append(snap.Projectiles, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.XPOrbComponent, *components.PositionComponent](em) {
		orb, _ := ecs.GetComponent[*components.XPOrbComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Orbs = append(snap.Orbs, OrbView{ID: id, Pos: pos.Pos, Size: entitySize(em, id), Value: orb.Value})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PowerUpComponent, *components.PositionComponent](em) {
		powerUp, _ := ecs.GetComponent[*components.PowerUpComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		view := PowerUpView{ID: id, Type: powerUp.Type, Pos: pos.Pos, Size: entitySize(em, id)}
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
			view.Remaining = lifetime.Remaining()
		}
		snap.PowerUps = append(snap.PowerUps, view)
	}

	return snap
}

// playerView 玩家不存在时返回 Alive=false 的零值视图
func (s *Simulation) playerView() PlayerView {
	em := s.entityManager
	ids := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(ids) == 0 {
		return PlayerView{}
	}
	id := ids[0]
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)

	view := PlayerView{
		Alive:         true,
		Size:          entitySize(em, id),
		Level:         player.Level,
		XP:            player.XP,
		XPToNextLevel: player.XPToNextLevel,
		Speed:         player.Speed,
		Damage:        player.Damage,
		FireRate:      player.FireRate,
		PickupRange:   player.PickupRange,
		Effects:       make(map[types.PowerUpType]float64, len(player.Effects)),
	}
	for t, effect := range player.Effects {
		view.Effects[t] = effect.Remaining
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		view.Pos = pos.Pos
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
		view.HP = health.CurrentHealth
		view.MaxHP = health.MaxHealth
	}
	if weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, id); ok {
		view.Weapon = weapon.Type
		view.WeaponLevel = weapon.Level
		if weapon.IsHybrid() {
			view.HybridTypes = append([]types.ProjectileType(nil), weapon.HybridTypes...)
		}
	}
	return view
}

func entitySize(em *ecs.EntityManager, id ecs.EntityID) float64 {
	if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
		return col.Width
	}
	return 0
}
