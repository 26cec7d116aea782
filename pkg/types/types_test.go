package types

import "testing"

func TestParseEnemyType_RoundTrip(t *testing.T) {
	for _, et := range AllEnemyTypes() {
		parsed, err := ParseEnemyType(et.String())
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", et, err)
		}
		if parsed != et {
			t.Errorf("Expected %v, got %v", et, parsed)
		}
	}

	if _, err := ParseEnemyType("dragon"); err == nil {
		t.Error("Expected error for unknown enemy type")
	}
}

func TestEnemyType_IsElite(t *testing.T) {
	elites := map[EnemyType]bool{EnemyTank: true, EnemyFast: true, EnemyBoss: true, EnemyMegaBoss: true}
	for _, et := range AllEnemyTypes() {
		if et.IsElite() != elites[et] {
			t.Errorf("%s: expected IsElite=%v", et, elites[et])
		}
	}
}

func TestParsePowerUpType(t *testing.T) {
	pt, err := ParsePowerUpType("explosive_shots")
	if err != nil || pt != PowerUpExplosiveShots {
		t.Errorf("Expected explosive_shots, got %v (%v)", pt, err)
	}
	if ProjectileHybrid.String() != "hybrid" {
		t.Errorf("Expected hybrid, got %s", ProjectileHybrid.String())
	}
}
