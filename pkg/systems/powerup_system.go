package systems

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

var (
	healPickupColor   = color.RGBA{R: 255, B: 100, A: 255}
	effectPickupColor = color.RGBA{R: 100, G: 200, B: 255, A: 255}
)

// PowerUpSystem 道具生成与效果管理
//
// 职责：
//   - 按固定间隔在竞技场内随机位置生成加权随机道具
//   - 推进玩家身上的道具效果计时，到期移除并重新计算有效属性
//   - 玩家拾取道具时应用效果（治疗立即生效，其余为限时效果）
type PowerUpSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue

	spawnTimer float64

	verbose bool
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG, queue *events.Queue) *PowerUpSystem {
	return &PowerUpSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *PowerUpSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 周期生成道具并推进效果计时
//
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *PowerUpSystem) Update(deltaTime float64) {
	cfg := &s.config.PowerUps
	if cfg.SpawnInterval > 0 {
		s.spawnTimer += deltaTime
		if s.spawnTimer >= cfg.SpawnInterval {
			s.spawnTimer = 0
			s.spawnRandom()
		}
	}

	s.tickEffects(deltaTime)
}

// spawnRandom 在离边缘 SpawnMargin 以内的随机位置生成道具
func (s *PowerUpSystem) spawnRandom() ecs.EntityID {
	cfg := &s.config.PowerUps
	t := pickPowerUpType(s.rng, cfg)

	margin := int(cfg.SpawnMargin)
	x := s.rng.IntRange(margin, int(s.config.Player.ArenaWidth)-margin)
	y := s.rng.IntRange(margin, int(s.config.Player.ArenaHeight)-margin)

	id := entities.NewPowerUp(s.entityManager, cfg, utils.V(float64(x), float64(y)), t)
	if s.verbose {
		log.Printf("[PowerUpSystem] Spawned %s (ID: %d) at (%d, %d)", t, id, x, y)
	}
	return id
}

// tickEffects 推进道具效果计时，任何效果到期后重新计算玩家属性
func (s *PowerUpSystem) tickEffects(deltaTime float64) {
	p, ok := lookupPlayer(s.entityManager)
	if !ok || len(p.player.Effects) == 0 {
		return
	}

	expired := false
	for t, effect := range p.player.Effects {
		effect.Remaining -= deltaTime
		if effect.Remaining <= 0 {
			delete(p.player.Effects, t)
			expired = true
			if s.verbose {
				log.Printf("[PowerUpSystem] Effect %s expired", t)
			}
		}
	}
	if expired {
		p.player.RecomputeStats()
	}
}

// Collect 玩家拾取道具
// 治疗立即生效；限时效果重复拾取时刷新持续时间
func (s *PowerUpSystem) Collect(id ecs.EntityID) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	powerUp, ok := ecs.GetComponent[*components.PowerUpComponent](s.entityManager, id)
	if !ok {
		return
	}
	pos := utils.Vec2{}
	if p, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		pos = p.Pos
	}
	s.entityManager.DestroyEntity(id)

	player, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}
	s.Apply(player, powerUp.Type, pos)

	s.gameState.Stats.PowerUpsCollected++
	s.queue.Push(events.PowerUpCollected{Type: powerUp.Type, Pos: pos})
}

// Apply 将道具效果应用到玩家
func (s *PowerUpSystem) Apply(p playerRefs, t types.PowerUpType, pos utils.Vec2) {
	stats, ok := s.config.PowerUps.GetPowerUpStats(t)
	if !ok {
		log.Printf("[PowerUpSystem] Power-up %s is not configured", t)
		return
	}

	if stats.Duration <= 0 {
		healed := p.health.Heal(int(stats.Value))
		s.queue.Push(events.Announcement{Text: fmt.Sprintf("+%d HP!", int(stats.Value)), Color: healPickupColor})
		if s.verbose {
			log.Printf("[PowerUpSystem] Healed %d hp", healed)
		}
		return
	}

	if p.player.Effects == nil {
		p.player.Effects = make(map[types.PowerUpType]*components.ActiveEffect)
	}
	p.player.Effects[t] = &components.ActiveEffect{Remaining: stats.Duration, Magnitude: stats.Value}
	p.player.RecomputeStats()

	s.queue.Push(events.Announcement{Text: powerUpTitle(t) + "!", Color: effectPickupColor})
	if s.verbose {
		log.Printf("[PowerUpSystem] %s active for %.0fs at (%.0f, %.0f)", t, stats.Duration, pos.X, pos.Y)
	}
}

// powerUpTitle rapid_fire -> Rapid Fire
func powerUpTitle(t types.PowerUpType) string {
	words := strings.Split(t.String(), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
