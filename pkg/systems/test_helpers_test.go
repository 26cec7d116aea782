package systems

import (
	"testing"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// testWorld 系统测试共用的最小世界：默认配置 + 一个位于竞技场中心的玩家
type testWorld struct {
	em    *ecs.EntityManager
	gs    *game.GameState
	cfg   *config.GameConfig
	rng   *utils.RNG
	queue *events.Queue

	damage      *DamageResolver
	progression *ProgressionSystem
	powerUps    *PowerUpSystem

	playerID ecs.EntityID
}

func createTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg.Player.Combo)
	rng := utils.NewRNG(1)
	queue := events.NewQueue()

	w := &testWorld{em: em, gs: gs, cfg: cfg, rng: rng, queue: queue}
	w.damage = NewDamageResolver(em, gs, cfg, rng, queue)
	w.progression = NewProgressionSystem(em, gs, cfg, rng, queue)
	w.powerUps = NewPowerUpSystem(em, gs, cfg, rng, queue)

	id, err := entities.NewPlayer(em, cfg)
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}
	w.playerID = id
	return w
}

func (w *testWorld) newCombatSystem() *CombatSystem {
	return NewCombatSystem(w.em, w.gs, w.cfg, w.rng, w.queue, w.damage, w.progression, w.powerUps)
}

func (w *testWorld) newEffectSystem() *EffectSystem {
	return NewEffectSystem(w.em, w.gs, w.cfg, w.rng, w.queue, w.damage, w.progression)
}

func (w *testWorld) newAbilitySystem() *AbilitySystem {
	return NewAbilitySystem(w.em, w.gs, w.cfg)
}

func (w *testWorld) player(t *testing.T) playerRefs {
	t.Helper()
	p, ok := lookupPlayer(w.em)
	if !ok {
		t.Fatal("player not found")
	}
	return p
}

func (w *testWorld) playerPos() utils.Vec2 {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.playerID)
	return pos.Pos
}

func (w *testWorld) movePlayer(p utils.Vec2) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.playerID)
	pos.Pos = p
}

// spawnEnemy 生成敌人，所有带解锁键的技能都已解锁
func (w *testWorld) spawnEnemy(t *testing.T, et types.EnemyType, pos utils.Vec2) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemy(w.em, w.cfg, et, pos, entities.EnemySpawnOptions{
		UnlockedAbilities: allAbilityUnlocks(w.cfg),
	})
	if err != nil {
		t.Fatalf("NewEnemy(%s) failed: %v", et, err)
	}
	return id
}

// spawnPlainEnemy 生成未解锁任何技能的敌人
func (w *testWorld) spawnPlainEnemy(t *testing.T, et types.EnemyType, pos utils.Vec2) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemy(w.em, w.cfg, et, pos, entities.EnemySpawnOptions{})
	if err != nil {
		t.Fatalf("NewEnemy(%s) failed: %v", et, err)
	}
	return id
}

func (w *testWorld) enemy(t *testing.T, id ecs.EntityID) (*components.EnemyComponent, *components.HealthComponent) {
	t.Helper()
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](w.em, id)
	if !ok {
		t.Fatalf("entity %d has no EnemyComponent", id)
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](w.em, id)
	return enemy, health
}

// fireBasic 在 pos 放置一发基础子弹
func (w *testWorld) fireBasic(pos utils.Vec2, damage float64) ecs.EntityID {
	weapon := entities.NewWeapon(types.ProjectileBasic, 1, &w.cfg.Weapons)
	return entities.NewPlayerProjectile(w.em, &w.cfg.Weapons, weapon, entities.PlayerShot{
		Pos:       pos,
		Direction: utils.V(1, 0),
		Damage:    damage,
		Speed:     weapon.Speed,
		Lifetime:  weapon.Lifetime,
	})
}

func (w *testWorld) fireWeapon(weapon *components.WeaponComponent, pos utils.Vec2, shot entities.PlayerShot) ecs.EntityID {
	shot.Pos = pos
	if shot.Direction.Length() == 0 {
		shot.Direction = utils.V(1, 0)
	}
	if shot.Speed == 0 {
		shot.Speed = weapon.Speed
	}
	if shot.Lifetime == 0 {
		shot.Lifetime = weapon.Lifetime
	}
	return entities.NewPlayerProjectile(w.em, &w.cfg.Weapons, weapon, shot)
}

// allAbilityUnlocks 收集配置中出现的全部技能解锁键
func allAbilityUnlocks(cfg *config.GameConfig) map[string]bool {
	result := make(map[string]bool)
	for _, t := range types.AllEnemyTypes() {
		stats, ok := cfg.Enemies.GetEnemyStats(t)
		if !ok {
			continue
		}
		for _, a := range stats.Abilities {
			if a.Unlock != "" {
				result[a.Unlock] = true
			}
		}
	}
	return result
}

// countEvents 统计队列中某种事件的数量（会清空队列）
func countEvents(q *events.Queue, kind events.Kind) int {
	n := 0
	for _, e := range q.Drain() {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

func countEntities[T any](em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[T](em))
}

func ecsPosition(w *testWorld, id ecs.EntityID) (*components.PositionComponent, bool) {
	return ecs.GetComponent[*components.PositionComponent](w.em, id)
}

func (w *testWorld) liveEnemies() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EnemyComponent](w.em)
}

func (w *testWorld) liveProjectiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em)
}

func (w *testWorld) projectile(t *testing.T, id ecs.EntityID) *components.ProjectileComponent {
	t.Helper()
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
	if !ok {
		t.Fatalf("entity %d has no ProjectileComponent", id)
	}
	return proj
}

func ecsVelocity(w *testWorld, id ecs.EntityID) (*components.VelocityComponent, bool) {
	return ecs.GetComponent[*components.VelocityComponent](w.em, id)
}
