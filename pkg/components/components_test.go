package components

import (
	"testing"

	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
)

func TestHealth_TakeDamageClamped(t *testing.T) {
	h := NewHealth(25)
	if dealt := h.TakeDamage(40); dealt != 25 {
		t.Errorf("Expected 25 damage dealt, got %d", dealt)
	}
	if h.CurrentHealth != 0 {
		t.Errorf("Health should clamp at 0, got %d", h.CurrentHealth)
	}
	if !h.IsDead() {
		t.Error("Entity should be dead")
	}
}

func TestHealth_HealCapped(t *testing.T) {
	h := &HealthComponent{CurrentHealth: 38, MaxHealth: 40}
	if healed := h.Heal(5); healed != 2 {
		t.Errorf("Expected 2 healed, got %d", healed)
	}
}

func TestPlayer_RecomputeStats(t *testing.T) {
	p := &PlayerComponent{
		BaseSpeed: 280, BaseDamage: 10, BaseFireRate: 1,
		StartDamage: 10, StartFireRate: 1,
		Effects: map[types.PowerUpType]*ActiveEffect{
			types.PowerUpSpeed:  {Remaining: 5, Magnitude: 1.5},
			types.PowerUpDamage: {Remaining: 5, Magnitude: 2},
		},
	}
	p.RecomputeStats()

	if p.Speed != 420 {
		t.Errorf("Expected speed 420, got %f", p.Speed)
	}
	if p.DamageScale() != 2 {
		t.Errorf("Expected damage scale 2, got %f", p.DamageScale())
	}
	if p.FireRateScale() != 1 {
		t.Errorf("Expected fire rate scale 1, got %f", p.FireRateScale())
	}
}

func TestEnemy_EffectQueueFIFO(t *testing.T) {
	e := &EnemyComponent{}
	e.PushEffect(events.StealthEffect{})
	e.PushEffect(events.BackstabEffect{Multiplier: 2})

	drained := e.DrainEffects()
	if len(drained) != 2 {
		t.Fatalf("Expected 2 effects, got %d", len(drained))
	}
	if _, ok := drained[0].(events.StealthEffect); !ok {
		t.Errorf("First effect should be stealth, got %T", drained[0])
	}
	if len(e.Effects) != 0 {
		t.Error("Queue should be empty after drain")
	}
}

func TestEnemy_SpeedModifier(t *testing.T) {
	e := &EnemyComponent{Dashing: true, DashSpeedMultiplier: 2}
	if e.SpeedModifier() != 2 {
		t.Errorf("Expected dash modifier 2, got %f", e.SpeedModifier())
	}
	e.ShieldActive = true
	if e.SpeedModifier() != 0.5 {
		t.Errorf("Shield should override dash with 0.5, got %f", e.SpeedModifier())
	}
}

func TestProjectile_HybridBehavior(t *testing.T) {
	p := &ProjectileComponent{
		Type:        types.ProjectileHybrid,
		HybridTypes: []types.ProjectileType{types.ProjectileHoming, types.ProjectileExplosive},
	}
	if !p.HasBehavior(types.ProjectileHoming) || !p.IsExplosive() {
		t.Error("Hybrid should carry homing and explosive behavior")
	}
	if p.HasBehavior(types.ProjectileBouncing) {
		t.Error("Hybrid should not bounce")
	}

	p.MarkHit(3)
	if !p.HasHit(3) || p.HasHit(4) {
		t.Error("Hit tracking mismatch")
	}
}
