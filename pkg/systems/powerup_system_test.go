package systems

import (
	"testing"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
)

func (w *testWorld) placePowerUp(t types.PowerUpType) ecs.EntityID {
	return entities.NewPowerUp(w.em, &w.cfg.PowerUps, w.playerPos(), t)
}

// TestPowerUp_CollectHeal 治疗道具立即回复生命
func TestPowerUp_CollectHeal(t *testing.T) {
	w := createTestWorld(t)
	p := w.player(t)
	p.health.CurrentHealth = 40
	id := w.placePowerUp(types.PowerUpHeal)

	w.powerUps.Collect(id)

	if p.health.CurrentHealth != 90 {
		t.Errorf("Expected hp 90, got %d", p.health.CurrentHealth)
	}
	if w.em.IsAlive(id) {
		t.Error("Collected power-up should be removed")
	}
	if p.player.HasEffect(types.PowerUpHeal) {
		t.Error("Heal should not leave a timed effect")
	}
	if w.gs.Stats.PowerUpsCollected != 1 {
		t.Errorf("Expected 1 power-up collected, got %d", w.gs.Stats.PowerUpsCollected)
	}

	var collected, announced bool
	for _, e := range w.queue.Drain() {
		switch ev := e.(type) {
		case events.PowerUpCollected:
			collected = ev.Type == types.PowerUpHeal
		case events.Announcement:
			announced = ev.Text == "+50 HP!"
		}
	}
	if !collected || !announced {
		t.Errorf("Expected collect and announcement events, got %v / %v", collected, announced)
	}
}

// TestPowerUp_CollectTwice 同一道具只能被拾取一次
func TestPowerUp_CollectTwice(t *testing.T) {
	w := createTestWorld(t)
	p := w.player(t)
	p.health.CurrentHealth = 10
	id := w.placePowerUp(types.PowerUpHeal)

	w.powerUps.Collect(id)
	w.powerUps.Collect(id)

	if p.health.CurrentHealth != 60 || w.gs.Stats.PowerUpsCollected != 1 {
		t.Errorf("Expected a single pickup, got hp %d collected %d", p.health.CurrentHealth, w.gs.Stats.PowerUpsCollected)
	}
}

// TestPowerUp_TimedEffectExpires 限时效果修改有效属性，到期后恢复
func TestPowerUp_TimedEffectExpires(t *testing.T) {
	w := createTestWorld(t)
	p := w.player(t)

	w.powerUps.Collect(w.placePowerUp(types.PowerUpSpeed))
	// int(280 * 1.5)
	if p.player.Speed != 420 {
		t.Fatalf("Expected speed 420, got %.0f", p.player.Speed)
	}

	w.powerUps.Update(9)
	if !p.player.HasEffect(types.PowerUpSpeed) {
		t.Fatal("Speed effect expired early")
	}
	w.powerUps.Update(1)
	if p.player.HasEffect(types.PowerUpSpeed) || p.player.Speed != 280 {
		t.Errorf("Expected speed back to 280 after expiry, got %.0f", p.player.Speed)
	}
}

// TestPowerUp_RecollectRefreshesDuration 重复拾取刷新持续时间
func TestPowerUp_RecollectRefreshesDuration(t *testing.T) {
	w := createTestWorld(t)
	p := w.player(t)

	w.powerUps.Collect(w.placePowerUp(types.PowerUpDamage))
	w.powerUps.Update(6)
	w.powerUps.Collect(w.placePowerUp(types.PowerUpDamage))

	if effect := p.player.Effects[types.PowerUpDamage]; effect == nil || effect.Remaining != 12 {
		t.Errorf("Expected refreshed duration 12, got %+v", effect)
	}
	if p.player.Damage != 20 {
		t.Errorf("Expected damage 20, got %.0f", p.player.Damage)
	}
}

// TestPowerUp_SpawnInterval 按固定间隔在边缘内侧生成道具
func TestPowerUp_SpawnInterval(t *testing.T) {
	w := createTestWorld(t)

	w.powerUps.Update(19)
	if n := countEntities[*components.PowerUpComponent](w.em); n != 0 {
		t.Fatalf("Expected no power-up before the interval, got %d", n)
	}

	w.powerUps.Update(1)
	ids := ecs.GetEntitiesWith1[*components.PowerUpComponent](w.em)
	if len(ids) != 1 {
		t.Fatalf("Expected 1 power-up, got %d", len(ids))
	}

	pos, _ := ecsPosition(w, ids[0])
	margin := w.cfg.PowerUps.SpawnMargin
	maxX, maxY := w.cfg.Player.ArenaWidth-margin, w.cfg.Player.ArenaHeight-margin
	if pos.Pos.X < margin || pos.Pos.X > maxX || pos.Pos.Y < margin || pos.Pos.Y > maxY {
		t.Errorf("Power-up spawned outside the margin at %v", pos.Pos)
	}
}

// TestPowerUpTitle 道具名称转换为公告标题
func TestPowerUpTitle(t *testing.T) {
	tests := []struct {
		input    types.PowerUpType
		expected string
	}{
		{types.PowerUpRapidFire, "Rapid Fire"},
		{types.PowerUpExplosiveShots, "Explosive Shots"},
		{types.PowerUpShield, "Shield"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := powerUpTitle(tt.input); got != tt.expected {
				t.Errorf("powerUpTitle(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
