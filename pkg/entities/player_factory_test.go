package entities

import (
	"testing"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/types"
)

// TestNewPlayer 测试玩家初始状态
func TestNewPlayer(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewPlayer(em, cfg)
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Pos.X != 640 || pos.Pos.Y != 360 {
		t.Errorf("Expected player at arena center, got %v", pos.Pos)
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	if player.Level != 1 || player.XPToNextLevel != 50 {
		t.Errorf("Expected level 1 with 50 xp to next, got %d/%d", player.Level, player.XPToNextLevel)
	}
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](em, id)
	if weapon.Type != types.ProjectileBasic || weapon.Damage != 10 {
		t.Errorf("Expected basic weapon with 10 damage, got %v %f", weapon.Type, weapon.Damage)
	}
}

// TestNewPlayer_NilArgs 测试参数校验
func TestNewPlayer_NilArgs(t *testing.T) {
	if _, err := NewPlayer(nil, config.DefaultGameConfig()); err == nil {
		t.Error("Expected error for nil entity manager")
	}
	if _, err := NewPlayer(ecs.NewEntityManager(), nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
