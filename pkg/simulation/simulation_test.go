package simulation

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

const testDeltaTime = 1.0 / 60

func createTestSimulation(t *testing.T, seed int64) *Simulation {
	t.Helper()
	sim, err := New(config.DefaultGameConfig(), seed)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sim
}

func firstChoice() game.UpgradeChooser {
	return game.UpgradeChooserFunc(func([]game.Upgrade) int { return 0 })
}

// aimRight 向右瞄准并持续开火
func aimRight(sim *Simulation) game.InputSnapshot {
	pos := sim.Snapshot().Player.Pos
	return game.InputSnapshot{Target: pos.Add(utils.V(100, 0)), Fire: true}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil, 1); err == nil {
		t.Error("Expected error for nil config")
	}
}

// TestNew_InitialState 新的一局：玩家位于中心、第 1 波准备中
func TestNew_InitialState(t *testing.T) {
	sim := createTestSimulation(t, 1)
	snap := sim.Snapshot()

	if !snap.Player.Alive || snap.Player.Pos != utils.V(640, 360) {
		t.Errorf("Expected live player at the arena centre, got %+v", snap.Player.Pos)
	}
	if snap.Player.HP != 100 || snap.Player.Level != 1 || snap.Player.Weapon != types.ProjectileBasic {
		t.Errorf("Unexpected initial player %+v", snap.Player)
	}
	if snap.State != types.RunPlaying || snap.Wave.Number != 1 || snap.Wave.Phase != types.WavePreparing {
		t.Errorf("Unexpected initial run state %s wave %d %s", snap.State, snap.Wave.Number, snap.Wave.Phase)
	}
	if len(snap.Enemies) != 0 {
		t.Errorf("Expected no enemies before the first wave, got %d", len(snap.Enemies))
	}
}

// TestUpdate_RunsWavesAndCombat 连续推进后刷怪、射击与计时都在工作
func TestUpdate_RunsWavesAndCombat(t *testing.T) {
	sim := createTestSimulation(t, 7)
	sim.SetUpgradeChooser(firstChoice())

	for i := 0; i < 60*8; i++ {
		sim.Update(testDeltaTime, aimRight(sim))
	}

	snap := sim.Snapshot()
	if snap.Wave.Phase != types.WaveActive && snap.Wave.Phase != types.WaveBreak {
		t.Errorf("Expected the first wave to have started, got %s", snap.Wave.Phase)
	}
	if snap.Wave.EnemiesSpawned == 0 {
		t.Error("Expected enemies to have spawned")
	}
	if snap.Stats.TotalShots == 0 {
		t.Error("Expected the player to have fired")
	}
	if snap.Stats.TimeSurvived < 7.9 || snap.ElapsedTime != snap.Stats.TimeSurvived {
		t.Errorf("Unexpected time survived %.2f / elapsed %.2f", snap.Stats.TimeSurvived, snap.ElapsedTime)
	}
}

// TestUpdate_Deterministic 相同种子与输入序列产生相同的结果
func TestUpdate_Deterministic(t *testing.T) {
	a := createTestSimulation(t, 42)
	b := createTestSimulation(t, 42)
	a.SetUpgradeChooser(firstChoice())
	b.SetUpgradeChooser(firstChoice())

	for i := 0; i < 60*20; i++ {
		input := game.InputSnapshot{
			Move:   utils.V(float64(i%3-1), float64(i%5-2)),
			Target: utils.V(float64(i%1280), 100),
			Fire:   i%4 != 0,
		}
		a.Update(testDeltaTime, input)
		b.Update(testDeltaTime, input)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Player.Pos != sb.Player.Pos || sa.Player.HP != sb.Player.HP || sa.Player.Level != sb.Player.Level {
		t.Errorf("Player diverged: %+v vs %+v", sa.Player, sb.Player)
	}
	if len(sa.Enemies) != len(sb.Enemies) {
		t.Fatalf("Enemy count diverged: %d vs %d", len(sa.Enemies), len(sb.Enemies))
	}
	for i := range sa.Enemies {
		if sa.Enemies[i].Pos != sb.Enemies[i].Pos || sa.Enemies[i].HP != sb.Enemies[i].HP {
			t.Errorf("Enemy %d diverged: %+v vs %+v", i, sa.Enemies[i], sb.Enemies[i])
		}
	}
	if sa.Stats.EnemiesKilled != sb.Stats.EnemiesKilled || sa.Stats.TotalShots != sb.Stats.TotalShots {
		t.Errorf("Stats diverged: %+v vs %+v", sa.Stats, sb.Stats)
	}
}

// TestUpdate_LevelUpPausesUntilSelection 未设置选择协作方时升级暂停，选择后恢复
func TestUpdate_LevelUpPausesUntilSelection(t *testing.T) {
	sim := createTestSimulation(t, 1)
	sim.progressionSystem.GainXP(50)

	if sim.State() != types.RunPaused {
		t.Fatalf("Expected paused after level-up, got %s", sim.State())
	}
	snap := sim.Snapshot()
	if len(snap.PendingUpgrades) != sim.Config().Upgrades.Choices {
		t.Fatalf("Expected %d pending upgrades, got %d", sim.Config().Upgrades.Choices, len(snap.PendingUpgrades))
	}

	sim.Update(testDeltaTime, game.InputSnapshot{})
	if elapsed := sim.Snapshot().ElapsedTime; elapsed != 0 {
		t.Errorf("Paused simulation should not advance, elapsed %.4f", elapsed)
	}

	if err := sim.SelectUpgrade(0); err != nil {
		t.Fatalf("SelectUpgrade failed: %v", err)
	}
	if sim.State() != types.RunPlaying {
		t.Errorf("Expected playing after selection, got %s", sim.State())
	}
	if err := sim.SelectUpgrade(0); err == nil {
		t.Error("Expected error when no selection is pending")
	}

	sim.Update(testDeltaTime, game.InputSnapshot{})
	if elapsed := sim.Snapshot().ElapsedTime; elapsed != testDeltaTime {
		t.Errorf("Expected one tick after resuming, elapsed %.4f", elapsed)
	}
}

// TestUpdate_SurvivalVictory 存活时间达到上限时胜利
func TestUpdate_SurvivalVictory(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Player.SurvivalTime = 1
	sim, err := New(cfg, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 61; i++ {
		sim.Update(testDeltaTime, game.InputSnapshot{})
	}

	if sim.State() != types.RunVictory {
		t.Fatalf("Expected victory, got %s", sim.State())
	}
	survived := false
	for _, e := range sim.Events().Drain() {
		if a, ok := e.(events.Announcement); ok && a.Text == "YOU SURVIVED!" {
			survived = true
		}
	}
	if !survived {
		t.Error("Expected a survival announcement")
	}

	elapsed := sim.Snapshot().ElapsedTime
	sim.Update(testDeltaTime, game.InputSnapshot{})
	if sim.Snapshot().ElapsedTime != elapsed {
		t.Error("Finished run should not advance")
	}
}

// TestUpdate_GameOverOnPlayerDeath 玩家生命归零时本局结束
func TestUpdate_GameOverOnPlayerDeath(t *testing.T) {
	sim := createTestSimulation(t, 1)
	em := sim.entityManager
	playerID := ecs.GetEntitiesWith1[*components.PlayerComponent](em)[0]
	health, _ := ecs.GetComponent[*components.HealthComponent](em, playerID)
	health.CurrentHealth = 1

	sim.damageResolver.DamagePlayer(5)
	if sim.State() != types.RunGameOver {
		t.Fatalf("Expected game over, got %s", sim.State())
	}

	sim.Update(testDeltaTime, game.InputSnapshot{})
	if sim.Snapshot().ElapsedTime != 0 {
		t.Error("Finished run should not advance")
	}
}

// TestUpdate_IgnoresNonPositiveDelta 非正帧间隔不推进
func TestUpdate_IgnoresNonPositiveDelta(t *testing.T) {
	sim := createTestSimulation(t, 1)
	sim.Update(0, game.InputSnapshot{})
	sim.Update(-1, game.InputSnapshot{})

	if elapsed := sim.Snapshot().ElapsedTime; elapsed != 0 {
		t.Errorf("Expected no progress, elapsed %.4f", elapsed)
	}
}

// TestSnapshot_IsCopy 修改快照不会影响模拟
func TestSnapshot_IsCopy(t *testing.T) {
	sim := createTestSimulation(t, 1)
	sim.progressionSystem.GainXP(50)

	snap := sim.Snapshot()
	snap.Player.Effects[types.PowerUpSpeed] = 99
	snap.PendingUpgrades[0].Title = "changed"
	snap.Stats.EnemiesKilled = 1000

	again := sim.Snapshot()
	if _, ok := again.Player.Effects[types.PowerUpSpeed]; ok {
		t.Error("Snapshot effects should be a copy")
	}
	if again.PendingUpgrades[0].Title == "changed" {
		t.Error("Snapshot pending upgrades should be a copy")
	}
	if again.Stats.EnemiesKilled != 0 {
		t.Error("Snapshot stats should be a copy")
	}
}

// TestUpdate_ExpiredProjectileDoesNotHit 本帧内到期的子弹在碰撞前被移除
func TestUpdate_ExpiredProjectileDoesNotHit(t *testing.T) {
	tests := []struct {
		name     string
		lifetime float64
		wantHP   int
	}{
		{"expires this tick", testDeltaTime / 2, 25},
		{"still alive", 1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := createTestSimulation(t, 1)
			pos := utils.V(300, 360)
			enemyID, err := entities.NewEnemy(sim.entityManager, sim.config, types.EnemyBasic, pos, entities.EnemySpawnOptions{})
			if err != nil {
				t.Fatalf("NewEnemy failed: %v", err)
			}
			weapon := entities.NewWeapon(types.ProjectileBasic, 1, &sim.config.Weapons)
			projectileID := entities.NewPlayerProjectile(sim.entityManager, &sim.config.Weapons, weapon, entities.PlayerShot{
				Pos:       pos,
				Direction: utils.V(1, 0),
				Damage:    10,
				Lifetime:  tt.lifetime,
			})

			sim.Update(testDeltaTime, game.InputSnapshot{Target: utils.V(1000, 360)})

			health, ok := ecs.GetComponent[*components.HealthComponent](sim.entityManager, enemyID)
			if !ok {
				t.Fatal("Enemy should still exist")
			}
			if health.CurrentHealth != tt.wantHP {
				t.Errorf("Expected enemy hp %d, got %d", tt.wantHP, health.CurrentHealth)
			}
			if sim.entityManager.IsAlive(projectileID) {
				t.Error("Projectile should be gone after the tick")
			}
		})
	}
}
