package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// TestAbility_TankShieldBelowThreshold 血量低于阈值且冷却归零时开启护盾并重置冷却
func TestAbility_TankShieldBelowThreshold(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyTank, utils.V(200, 200))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = 32
	enemy.Cooldowns["shield"] = 0

	abilities.Update(testDeltaTime)

	if !enemy.ShieldActive {
		t.Fatal("Expected shield to be active")
	}
	if enemy.Cooldowns["shield"] != 10 {
		t.Errorf("Expected shield cooldown 10, got %.2f", enemy.Cooldowns["shield"])
	}
	if enemy.ShieldTimer != 2 {
		t.Errorf("Expected shield timer 2, got %.2f", enemy.ShieldTimer)
	}
	if enemy.SpeedModifier() != 0.5 {
		t.Errorf("Shielded enemy should move at half speed, got %.2f", enemy.SpeedModifier())
	}
}

// TestAbility_ShieldRequiresHealthThreshold 血量高于阈值时不开护盾
func TestAbility_ShieldRequiresHealthThreshold(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyTank, utils.V(200, 200))
	enemy, _ := w.enemy(t, id)
	enemy.Cooldowns["shield"] = 0

	abilities.Update(testDeltaTime)

	if enemy.ShieldActive {
		t.Error("Full health tank should not raise its shield")
	}
	if enemy.Cooldowns["shield"] != 0 {
		t.Errorf("Cooldown should stay at 0 until triggered, got %.2f", enemy.Cooldowns["shield"])
	}
}

// TestAbility_LockedAbilityNeverFires 未解锁的技能不会出现在敌人身上
func TestAbility_LockedAbilityNeverFires(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnPlainEnemy(t, types.EnemyTank, utils.V(200, 200))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = 10

	for i := 0; i < 600; i++ {
		abilities.Update(testDeltaTime)
	}

	if enemy.HasAbility("shield") || enemy.ShieldActive {
		t.Error("Shield should stay locked without basic_shield")
	}
}

// TestAbility_ShieldExpires 护盾持续时间结束后自动解除
func TestAbility_ShieldExpires(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyTank, utils.V(200, 200))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = 32
	enemy.Cooldowns["shield"] = 0

	abilities.Update(testDeltaTime)
	for i := 0; i < 130; i++ {
		abilities.Update(testDeltaTime)
	}

	if enemy.ShieldActive {
		t.Error("Shield should expire after its duration")
	}
}

// TestAbility_DashChargeTargetsSnapshot 蓄力冲刺瞬移到开始蓄力时的玩家位置
func TestAbility_DashChargeTargetsSnapshot(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	p0 := w.playerPos()
	id := w.spawnPlainEnemy(t, types.EnemyMegaBoss, p0.Add(utils.V(300, 0)))
	enemy, _ := w.enemy(t, id)

	abilities.Update(testDeltaTime)
	if !enemy.IsChargingDash {
		t.Fatal("Expected mega boss to start charging")
	}
	if enemy.DashTarget != p0 {
		t.Errorf("Expected dash target %v, got %v", p0, enemy.DashTarget)
	}
	if enemy.DashChargeTime != 0 {
		t.Errorf("Charge progress should start accumulating on the next tick, got %.3f", enemy.DashChargeTime)
	}

	p1 := p0.Add(utils.V(0, -200))
	w.movePlayer(p1)

	frames := 0
	for enemy.IsChargingDash && frames < 120 {
		abilities.Update(testDeltaTime)
		frames++
	}

	if enemy.IsChargingDash {
		t.Fatal("Dash charge should complete")
	}
	if frames < 48 {
		t.Errorf("Dash executed after %d frames, expected at least 0.8s of charge", frames)
	}
	pos, _ := ecsPosition(w, id)
	if pos.Pos != p0 {
		t.Errorf("Expected mega boss at snapshot %v, got %v (player now at %v)", p0, pos.Pos, p1)
	}
	if enemy.Cooldowns["dash_charge"] != 8 {
		t.Errorf("Expected dash_charge cooldown 8, got %.2f", enemy.Cooldowns["dash_charge"])
	}

	var executed bool
	for _, e := range enemy.DrainEffects() {
		if ex, ok := e.(events.DashExecuteEffect); ok {
			executed = true
			if ex.To != p0 {
				t.Errorf("Dash effect should target the snapshot, got %v", ex.To)
			}
		}
	}
	if !executed {
		t.Error("Expected a DashExecuteEffect")
	}
}

// TestAbility_CooldownsNeverIncreaseExceptReset 冷却只在触发时被重置，其余时间单调递减且不小于 0
func TestAbility_CooldownsNeverIncreaseExceptReset(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	pp := w.playerPos()
	w.spawnEnemy(t, types.EnemyTank, pp.Add(utils.V(80, 0)))
	w.spawnEnemy(t, types.EnemyFast, pp.Add(utils.V(200, 0)))
	w.spawnEnemy(t, types.EnemySniper, pp.Add(utils.V(0, 250)))
	w.spawnEnemy(t, types.EnemyBoss, pp.Add(utils.V(-150, 0)))
	w.spawnEnemy(t, types.EnemyAssassin, pp.Add(utils.V(0, -300)))

	prev := make(map[string]float64)
	rng := utils.NewRNG(7)
	for tick := 0; tick < 900; tick++ {
		abilities.Update(rng.Range(0.005, 0.05))

		for _, id := range w.liveEnemies() {
			enemy, health := w.enemy(t, id)
			if tick == 300 {
				health.CurrentHealth = health.MaxHealth / 4
			}
			stats, _ := w.cfg.Enemies.GetEnemyStats(enemy.Type)
			for name, cd := range enemy.Cooldowns {
				if cd < 0 {
					t.Fatalf("Cooldown %s of enemy %d is negative: %.3f", name, id, cd)
				}
				key := enemy.Type.String() + "/" + name
				if before, ok := prev[key]; ok && cd > before {
					ability, _ := stats.Ability(name)
					if cd != ability.Cooldown {
						t.Fatalf("Cooldown %s increased from %.3f to %.3f without a reset", key, before, cd)
					}
				}
				prev[key] = cd
			}
			enemy.DrainEffects()
		}
	}
}

// TestAbility_LaserChargesThenFires 激光先蓄力，蓄力结束时朝玩家当前位置发射
func TestAbility_LaserChargesThenFires(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyLaser, w.playerPos().Add(utils.V(300, 0)))
	enemy, _ := w.enemy(t, id)

	abilities.Update(testDeltaTime)
	if !enemy.IsChargingLaser || enemy.LaserChargeTimer != 1.5 {
		t.Fatalf("Expected laser charging for 1.5s, got charging=%v timer=%.2f", enemy.IsChargingLaser, enemy.LaserChargeTimer)
	}
	enemy.DrainEffects()

	moved := w.playerPos().Add(utils.V(0, 50))
	w.movePlayer(moved)

	var fired *events.LaserFireEffect
	for i := 0; i < 200 && fired == nil; i++ {
		abilities.Update(testDeltaTime)
		for _, e := range enemy.DrainEffects() {
			if f, ok := e.(events.LaserFireEffect); ok {
				fired = &f
			}
		}
	}

	if fired == nil {
		t.Fatal("Expected laser to fire after charging")
	}
	if fired.To != moved {
		t.Errorf("Laser should aim at the player's current position %v, got %v", moved, fired.To)
	}
	if fired.Damage != 35 || fired.Width != 20 {
		t.Errorf("Unexpected laser damage/width %.0f/%.0f", fired.Damage, fired.Width)
	}
	if enemy.Cooldowns["laser"] != 4 {
		t.Errorf("Expected laser cooldown 4, got %.2f", enemy.Cooldowns["laser"])
	}
}

// TestAbility_StealthThenBackstab 隐身后贴近玩家触发背刺
func TestAbility_StealthThenBackstab(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyAssassin, w.playerPos().Add(utils.V(300, 0)))
	enemy, _ := w.enemy(t, id)

	abilities.Update(testDeltaTime)
	if !enemy.Stealthed {
		t.Fatal("Expected assassin to enter stealth at 300px")
	}
	if enemy.BackstabMultiplier != 0 {
		t.Error("Backstab should not trigger at stealth range")
	}

	pos, _ := ecsPosition(w, id)
	pos.Pos = w.playerPos().Add(utils.V(50, 0))
	abilities.Update(testDeltaTime)

	if enemy.Stealthed {
		t.Error("Backstab should reveal the assassin")
	}
	if enemy.BackstabMultiplier != 2 {
		t.Errorf("Expected backstab multiplier 2, got %.1f", enemy.BackstabMultiplier)
	}
	if enemy.ContactDamage() != 80 {
		t.Errorf("Expected next contact damage 80, got %.0f", enemy.ContactDamage())
	}
	if cd := enemy.Cooldowns["stealth"]; cd != 10 {
		t.Errorf("Stealth cooldown should restart at backstab, got %.2f", cd)
	}
}

// TestAbility_StealthHoldsOutsideBackstabRange 隐身没有时限，刺客停在 100 像素外时一直保持隐身
func TestAbility_StealthHoldsOutsideBackstabRange(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyAssassin, w.playerPos().Add(utils.V(300, 0)))
	enemy, _ := w.enemy(t, id)
	pos, _ := ecsPosition(w, id)

	for i := 0; i < 200; i++ {
		pos.Pos = w.playerPos().Add(utils.V(300, 0))
		abilities.Update(testDeltaTime)
	}
	if !enemy.Stealthed {
		t.Fatal("Assassin should stay stealthed while outside backstab range")
	}
	if enemy.BackstabMultiplier != 0 {
		t.Error("Backstab should not arm outside 100px")
	}

	pos.Pos = w.playerPos().Add(utils.V(600, 0))
	abilities.Update(testDeltaTime)
	if !enemy.Stealthed {
		t.Error("Moving away should not reveal the assassin")
	}

	pos.Pos = w.playerPos().Add(utils.V(80, 0))
	abilities.Update(testDeltaTime)
	if enemy.Stealthed || enemy.BackstabMultiplier != 2 {
		t.Errorf("Closing inside 100px should backstab, stealthed=%v multiplier=%.1f", enemy.Stealthed, enemy.BackstabMultiplier)
	}
}

// TestAbility_SummonCap 召唤次数达到上限后不再召唤
func TestAbility_SummonCap(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemySummoner, w.playerPos().Add(utils.V(100, 0)))
	enemy, _ := w.enemy(t, id)

	summons := 0
	for i := 0; i < 10; i++ {
		enemy.Cooldowns["summon"] = 0
		abilities.Update(testDeltaTime)
		for _, e := range enemy.DrainEffects() {
			if _, ok := e.(events.SummonEffect); ok {
				summons++
			}
		}
	}

	if summons != 3 || enemy.CurrentSummons != 3 {
		t.Errorf("Expected 3 summons, got %d effects / counter %d", summons, enemy.CurrentSummons)
	}
}

// TestAbility_BomberExplodesOnce 自爆只触发一次
func TestAbility_BomberExplodesOnce(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnEnemy(t, types.EnemyBomber, w.playerPos().Add(utils.V(40, 0)))
	enemy, _ := w.enemy(t, id)

	abilities.Update(testDeltaTime)
	abilities.Update(testDeltaTime)

	explosions := 0
	for _, e := range enemy.DrainEffects() {
		if ex, ok := e.(events.ExplosionEffect); ok {
			explosions++
			if ex.Radius != 80 || ex.Damage != 25 {
				t.Errorf("Unexpected explosion radius/damage %.0f/%.0f", ex.Radius, ex.Damage)
			}
		}
	}
	if explosions != 1 {
		t.Errorf("Expected exactly 1 explosion effect, got %d", explosions)
	}
}

// TestAbility_MegaBossPhasesAdvance 一帧内跨过多个阈值时连续切换阶段
func TestAbility_MegaBossPhasesAdvance(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnPlainEnemy(t, types.EnemyMegaBoss, utils.V(100, 100))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = int(float64(health.MaxHealth) * 0.3)

	abilities.Update(testDeltaTime)

	if enemy.Phase != 3 {
		t.Fatalf("Expected phase 3, got %d", enemy.Phase)
	}
	changes := 0
	for _, e := range enemy.DrainEffects() {
		if _, ok := e.(events.PhaseChangeEffect); ok {
			changes++
		}
	}
	if changes != 2 {
		t.Errorf("Expected 2 phase change effects, got %d", changes)
	}
	yellow := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	if enemy.Color != yellow {
		t.Errorf("Expected phase 3 color %v, got %v", yellow, enemy.Color)
	}

	health.CurrentHealth = health.MaxHealth
	abilities.Update(testDeltaTime)
	if enemy.Phase != 3 {
		t.Errorf("Phase should never decrease, got %d", enemy.Phase)
	}

	health.CurrentHealth = int(float64(health.MaxHealth) * 0.1)
	abilities.Update(testDeltaTime)
	if enemy.Phase != 4 {
		t.Fatalf("Expected phase 4, got %d", enemy.Phase)
	}
	if enemy.Color != yellow {
		t.Errorf("Phase 4 should keep the phase 3 color, got %v", enemy.Color)
	}
}

// TestAbility_MegaBossPhaseTwoColor 进入第二阶段时变为橙色
func TestAbility_MegaBossPhaseTwoColor(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnPlainEnemy(t, types.EnemyMegaBoss, utils.V(100, 100))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = int(float64(health.MaxHealth) * 0.6)

	abilities.Update(testDeltaTime)

	if enemy.Phase != 2 {
		t.Fatalf("Expected phase 2, got %d", enemy.Phase)
	}
	if want := (color.RGBA{R: 255, G: 100, B: 0, A: 255}); enemy.Color != want {
		t.Errorf("Expected phase 2 color %v, got %v", want, enemy.Color)
	}
}

// TestAbility_BossRageOnce 狂暴只触发一次
func TestAbility_BossRageOnce(t *testing.T) {
	w := createTestWorld(t)
	abilities := w.newAbilitySystem()

	id := w.spawnPlainEnemy(t, types.EnemyBoss, utils.V(100, 100))
	enemy, health := w.enemy(t, id)
	health.CurrentHealth = 100
	enemy.Cooldowns["rage"] = 0

	abilities.Update(testDeltaTime)
	if !enemy.Raged || enemy.Speed != 80 || enemy.CollisionDamage != 75 {
		t.Fatalf("Expected raged boss speed 80 / contact 75, got %v %.0f / %.0f", enemy.Raged, enemy.Speed, enemy.CollisionDamage)
	}

	enemy.Cooldowns["rage"] = 0
	abilities.Update(testDeltaTime)
	if enemy.Speed != 80 {
		t.Errorf("Rage should not stack, speed %.0f", enemy.Speed)
	}
}
