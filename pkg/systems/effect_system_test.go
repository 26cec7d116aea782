package systems

import (
	"testing"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// TestEffect_BomberProximityExplosion 自爆者在玩家 40 像素处爆炸：玩家受到衰减后的伤害，自爆者被消耗
func TestEffect_BomberProximityExplosion(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()
	effects := w.newEffectSystem()

	id := w.spawnEnemy(t, types.EnemyBomber, w.playerPos().Add(utils.V(40, 0)))

	abilities.Update(testDeltaTime)
	effects.Update(testDeltaTime)

	// 100 - floor(25 * (1 - 40/80)) = 88
	if hp := w.player(t).health.CurrentHealth; hp != 88 {
		t.Errorf("Expected player hp 88, got %d", hp)
	}
	if w.em.IsAlive(id) {
		t.Error("Bomber should be consumed by its explosion")
	}
	if w.gs.Stats.EnemiesKilled != 0 {
		t.Errorf("Proximity explosion should not count as a kill, got %d", w.gs.Stats.EnemiesKilled)
	}
	if n := countEntities[*components.XPOrbComponent](w.em); n != 0 {
		t.Errorf("Proximity explosion should not drop xp, got %d orbs", n)
	}
}

// TestEffect_BomberKilledExplodesOnce 被击杀的自爆者爆炸一次并正常掉落
func TestEffect_BomberKilledExplodesOnce(t *testing.T) {
	w := createTestWorld(t)
	id := w.spawnEnemy(t, types.EnemyBomber, w.playerPos().Add(utils.V(60, 0)))

	w.damage.DamageEnemy(id, 100, false)
	w.damage.FinalizeEnemy(id)

	// floor(25 * (1 - 60/80)) = 6
	if hp := w.player(t).health.CurrentHealth; hp != 94 {
		t.Errorf("Expected player hp 94, got %d", hp)
	}
	if w.gs.Stats.EnemiesKilled != 1 {
		t.Errorf("Expected 1 kill, got %d", w.gs.Stats.EnemiesKilled)
	}
	if n := countEntities[*components.XPOrbComponent](w.em); n != 1 {
		t.Errorf("Expected 1 xp orb, got %d", n)
	}
	if n := countEvents(w.queue, events.KindExplosion); n != 1 {
		t.Errorf("Expected 1 explosion event, got %d", n)
	}
}

// TestEffect_BomberKilledWithPendingExplosion 已排队爆炸的自爆者在效果处理前被击杀，只爆炸一次
func TestEffect_BomberKilledWithPendingExplosion(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()
	effects := w.newEffectSystem()

	id := w.spawnEnemy(t, types.EnemyBomber, w.playerPos().Add(utils.V(40, 0)))
	abilities.Update(testDeltaTime)

	w.damage.DamageEnemy(id, 100, false)
	effects.Update(testDeltaTime)

	if hp := w.player(t).health.CurrentHealth; hp != 88 {
		t.Errorf("Expected a single explosion leaving hp 88, got %d", hp)
	}
}

// TestEffect_BomberExplosionHurtsOtherEnemies 自爆对其他敌人造成一半伤害
func TestEffect_BomberExplosionHurtsOtherEnemies(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()
	effects := w.newEffectSystem()

	bomberPos := w.playerPos().Add(utils.V(40, 0))
	w.spawnEnemy(t, types.EnemyBomber, bomberPos)
	other := w.spawnEnemy(t, types.EnemyBasic, bomberPos.Add(utils.V(0, 20)))

	abilities.Update(testDeltaTime)
	effects.Update(testDeltaTime)

	// floor(25 * 0.5 * (1 - 20/80)) = 9
	_, health := w.enemy(t, other)
	if health.CurrentHealth != 16 {
		t.Errorf("Expected nearby enemy hp 16, got %d", health.CurrentHealth)
	}
}

// TestEffect_KillAfterContactDoesNotRebuildCombo 同一帧内玩家受到接触伤害后，爆炸造成的击杀不再累加连击
func TestEffect_KillAfterContactDoesNotRebuildCombo(t *testing.T) {
	w := createTestWorld(t)
	combat := w.newCombatSystem()
	effects := w.newEffectSystem()

	w.gs.Combo.Increment()
	w.gs.Combo.Increment()
	w.spawnEnemy(t, types.EnemyBasic, w.playerPos())

	bomberPos := w.playerPos().Add(utils.V(400, 0))
	bomber := w.spawnEnemy(t, types.EnemyBomber, bomberPos)
	victim := w.spawnEnemy(t, types.EnemySwarmer, bomberPos.Add(utils.V(0, 10)))
	_, victimHealth := w.enemy(t, victim)
	victimHealth.CurrentHealth = 1

	bomberEnemy, _ := w.enemy(t, bomber)
	bomberEnemy.PushEffect(events.ExplosionEffect{Pos: bomberPos, Radius: 80, Damage: 25})

	combat.Update(testDeltaTime)
	effects.Update(testDeltaTime)

	if w.em.IsAlive(victim) {
		t.Fatal("Explosion should have killed the swarmer")
	}
	if w.gs.Combo.Count != 0 {
		t.Errorf("Combo should stay 0 for the rest of a tick with contact damage, got %d", w.gs.Combo.Count)
	}
	if hp := w.player(t).health.CurrentHealth; hp != 92 {
		t.Errorf("Expected player hp 92, got %d", hp)
	}
}

// TestEffect_HealAllies 治疗者治疗半径内的其他敌人，不治疗自己
func TestEffect_HealAllies(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()
	effects := w.newEffectSystem()

	healer := w.spawnEnemy(t, types.EnemyHealer, utils.V(200, 200))
	near := w.spawnEnemy(t, types.EnemyBasic, utils.V(250, 200))
	far := w.spawnEnemy(t, types.EnemyBasic, utils.V(500, 200))
	full := w.spawnEnemy(t, types.EnemyBasic, utils.V(200, 260))

	_, healerHealth := w.enemy(t, healer)
	healerHealth.CurrentHealth = 20
	_, nearHealth := w.enemy(t, near)
	nearHealth.CurrentHealth = 10
	_, farHealth := w.enemy(t, far)
	farHealth.CurrentHealth = 10
	_, fullHealth := w.enemy(t, full)

	abilities.Update(testDeltaTime)
	effects.Update(testDeltaTime)

	if nearHealth.CurrentHealth != 15 {
		t.Errorf("Expected nearby ally hp 15, got %d", nearHealth.CurrentHealth)
	}
	if farHealth.CurrentHealth != 10 {
		t.Errorf("Ally out of range should not be healed, got %d", farHealth.CurrentHealth)
	}
	if fullHealth.CurrentHealth != 25 {
		t.Errorf("Healing should not exceed max hp, got %d", fullHealth.CurrentHealth)
	}
	if healerHealth.CurrentHealth != 20 {
		t.Errorf("Healer should not heal itself, got %d", healerHealth.CurrentHealth)
	}
}

// TestEffect_LaserHitsPlayerOnBeam 激光命中光束宽度内的玩家
func TestEffect_LaserHitsPlayerOnBeam(t *testing.T) {
	tests := []struct {
		name     string
		offset   utils.Vec2
		expected int
	}{
		{"on beam", utils.V(0, 0), 65},
		{"inside width", utils.V(0, 15), 65},
		{"outside width", utils.V(0, 30), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(t)
			effects := w.newEffectSystem()

			from := w.playerPos().Add(utils.V(300, 0))
			id := w.spawnEnemy(t, types.EnemyLaser, from)
			enemy, _ := w.enemy(t, id)
			enemy.PushEffect(events.LaserFireEffect{
				From:   from,
				To:     w.playerPos().Sub(utils.V(100, 0)),
				Width:  20,
				Damage: 35,
			})
			w.movePlayer(w.playerPos().Add(tt.offset))

			effects.Update(testDeltaTime)

			if hp := w.player(t).health.CurrentHealth; hp != tt.expected {
				t.Errorf("Expected player hp %d, got %d", tt.expected, hp)
			}
		})
	}
}

// TestEffect_ShootAndMortarSpawnProjectiles 射击与迫击炮效果生成敌方子弹
func TestEffect_ShootAndMortarSpawnProjectiles(t *testing.T) {
	w := createTestWorld(t)
	effects := w.newEffectSystem()

	id := w.spawnEnemy(t, types.EnemyMortar, utils.V(200, 200))
	enemy, _ := w.enemy(t, id)
	enemy.PushEffect(events.ShootEffect{Target: w.playerPos(), Damage: 15, Speed: 450})
	enemy.PushEffect(events.MortarFireEffect{Target: w.playerPos(), Radius: 60, Damage: 40, Speed: 200})

	effects.Update(testDeltaTime)

	var bullets, shells int
	for _, pid := range w.liveProjectiles() {
		proj := w.projectile(t, pid)
		if !proj.Hostile {
			t.Errorf("Enemy projectile %d should be hostile", pid)
		}
		if proj.IsMortar {
			shells++
			if proj.Target != w.playerPos() || proj.ExplosionRadius != 60 {
				t.Errorf("Unexpected mortar target/radius %v/%.0f", proj.Target, proj.ExplosionRadius)
			}
		} else {
			bullets++
		}
	}
	if bullets != 1 || shells != 1 {
		t.Errorf("Expected 1 bullet and 1 shell, got %d and %d", bullets, shells)
	}
}

// TestEffect_SummonSpawnsNearSummoner 召唤物生成在召唤者附近
func TestEffect_SummonSpawnsNearSummoner(t *testing.T) {
	w := createTestWorld(t)
	effects := w.newEffectSystem()

	summonerPos := utils.V(300, 300)
	id := w.spawnEnemy(t, types.EnemySummoner, summonerPos)
	enemy, _ := w.enemy(t, id)
	enemy.PushEffect(events.SummonEffect{Types: []types.EnemyType{types.EnemySwarmer}})

	effects.Update(testDeltaTime)

	enemies := w.liveEnemies()
	if len(enemies) != 2 {
		t.Fatalf("Expected summoner plus 1 summon, got %d enemies", len(enemies))
	}
	summon, _ := w.enemy(t, enemies[1])
	if summon.Type != types.EnemySwarmer {
		t.Errorf("Expected swarmer, got %s", summon.Type)
	}
	pos, _ := ecsPosition(w, enemies[1])
	if d := pos.Pos.Sub(summonerPos); d.X < -summonOffset || d.X > summonOffset || d.Y < -summonOffset || d.Y > summonOffset {
		t.Errorf("Summon spawned too far from summoner: offset %v", d)
	}
}

// TestEffect_StompDamagesPlayerWithFalloff 践踏按距离衰减伤害玩家
func TestEffect_StompDamagesPlayerWithFalloff(t *testing.T) {
	w := createTestWorld(t)
	effects := w.newEffectSystem()

	id := w.spawnEnemy(t, types.EnemyTank, w.playerPos().Add(utils.V(50, 0)))
	enemy, _ := w.enemy(t, id)
	enemy.PushEffect(events.StompEffect{Radius: 100, Damage: 15})

	effects.Update(testDeltaTime)

	// floor(15 * 0.5) = 7
	if hp := w.player(t).health.CurrentHealth; hp != 93 {
		t.Errorf("Expected player hp 93, got %d", hp)
	}
}

// TestEffect_RemovedEnemyEffectsDropped 已被删除的敌人残留的效果不会被处理
func TestEffect_RemovedEnemyEffectsDropped(t *testing.T) {
	w := createTestWorld(t)
	effects := w.newEffectSystem()

	id := w.spawnEnemy(t, types.EnemyTank, w.playerPos().Add(utils.V(50, 0)))
	enemy, _ := w.enemy(t, id)
	enemy.PushEffect(events.StompEffect{Radius: 100, Damage: 15})
	w.em.DestroyEntity(id)

	effects.Update(testDeltaTime)

	if hp := w.player(t).health.CurrentHealth; hp != 100 {
		t.Errorf("Stale effect should be dropped, player hp %d", hp)
	}
}

// TestEffect_PhaseChangeAnnounced 超级 Boss 阶段变化发出公告
func TestEffect_PhaseChangeAnnounced(t *testing.T) {
	w := createTestWorld(t)
	effects := w.newEffectSystem()

	id := w.spawnPlainEnemy(t, types.EnemyMegaBoss, utils.V(100, 100))
	enemy, _ := w.enemy(t, id)
	enemy.PushEffect(events.PhaseChangeEffect{Phase: 2})

	effects.Update(testDeltaTime)

	var announced, ability bool
	for _, e := range w.queue.Drain() {
		switch ev := e.(type) {
		case events.Announcement:
			announced = ev.Text == "MEGA BOSS PHASE 2!"
		case events.EnemyAbility:
			ability = ev.ID == id
		}
	}
	if !announced || !ability {
		t.Errorf("Expected announcement and ability event, got %v / %v", announced, ability)
	}
}
