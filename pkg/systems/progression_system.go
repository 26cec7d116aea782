package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/bulletheaven/pkg/components"
	"github.com/decker502/bulletheaven/pkg/config"
	"github.com/decker502/bulletheaven/pkg/ecs"
	"github.com/decker502/bulletheaven/pkg/entities"
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
)

// 终极升级参数
const (
	ultimateSpeedCap       = 500.0
	enhanceDamagePerLevel  = 3.0
	enhanceFireRateFactor  = 1.1
	ultimateDamageLevelGap = 2
)

// eliteEnhancedKey 高等级精英强化的解锁键
const eliteEnhancedKey = "elite_enhanced"

// ProgressionSystem 玩家等级与解锁管理
//
// 职责：
//   - 经验获取与升级（升级时回复部分生命，经验需求按倍率增长）
//   - 按玩家等级解锁敌人类型、敌人技能、武器，并发出解锁事件
//   - 为刷怪提供可生成类型与等级修正
//   - 生成升级候选项，交给 UpgradeChooser 或暂停等待外部选择
//   - 应用选中的升级
//
// 可生成类型的判定：波次已解锁，并且（等级已解锁，或该类型不受等级表约束）。
// 交集为空时退回到 basic。
type ProgressionSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
	rng           *utils.RNG
	queue         *events.Queue

	chooser game.UpgradeChooser

	verbose bool
}

// NewProgressionSystem 创建等级系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 游戏状态
//   - cfg: 全局配置
//   - rng: 共享随机数源（抽取升级候选项、加权刷怪）
//   - queue: 表现层事件队列
func NewProgressionSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, rng *utils.RNG, queue *events.Queue) *ProgressionSystem {
	return &ProgressionSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
		queue:         queue,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *ProgressionSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SetUpgradeChooser 设置升级选择协作方，nil 表示暂停等待 SelectUpgrade
func (s *ProgressionSystem) SetUpgradeChooser(chooser game.UpgradeChooser) {
	s.chooser = chooser
}

// Update 检查是否满足升级条件
func (s *ProgressionSystem) Update(deltaTime float64) {
	s.checkLevelUp()
}

// Level 当前玩家等级，玩家不存在时为 1
func (s *ProgressionSystem) Level() int {
	if p, ok := lookupPlayer(s.entityManager); ok {
		return p.player.Level
	}
	return 1
}

// GainXP 玩家获得经验，满足条件时立即升级
func (s *ProgressionSystem) GainXP(amount int) {
	if amount <= 0 {
		return
	}
	p, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}
	p.player.XP += amount
	s.gameState.Stats.XPGained += amount
	s.checkLevelUp()
}

// checkLevelUp 经验达到需求时升一级
// 升级后经验清零，因此一次获得的经验最多升一级
func (s *ProgressionSystem) checkLevelUp() {
	if len(s.gameState.PendingUpgrades) > 0 {
		return
	}
	p, ok := lookupPlayer(s.entityManager)
	if !ok || p.player.XP < p.player.XPToNextLevel {
		return
	}

	stats := s.config.Player.Player
	p.player.Level++
	p.player.XP = 0
	p.player.XPToNextLevel = int(float64(p.player.XPToNextLevel) * stats.XPGrowth)
	p.health.Heal(int(float64(p.health.MaxHealth) * stats.LevelUpHealFraction))

	if p.player.Level > s.gameState.Stats.LevelReached {
		s.gameState.Stats.LevelReached = p.player.Level
	}
	s.queue.Push(events.LevelUp{Level: p.player.Level})
	s.announceUnlocks(p.player.Level)

	log.Printf("[ProgressionSystem] Player reached level %d (next at %d xp)", p.player.Level, p.player.XPToNextLevel)

	s.offerUpgrades(p)
}

// announceUnlocks 发出新等级解锁的内容
func (s *ProgressionSystem) announceUnlocks(level int) {
	progression := &s.config.Progression
	for _, u := range progression.EnemyUnlocks {
		if u.Level != level {
			continue
		}
		for _, name := range u.Types {
			s.queue.Push(events.Unlock{Message: fmt.Sprintf("New enemy: %s", name)})
		}
	}
	for _, u := range progression.AbilityUnlocks {
		if u.Level != level {
			continue
		}
		for _, name := range u.Abilities {
			s.queue.Push(events.Unlock{Message: fmt.Sprintf("Enemies learned: %s", name)})
		}
	}
	for _, u := range progression.WeaponUnlocks {
		if u.Level != level {
			continue
		}
		for _, name := range u.Weapons {
			s.queue.Push(events.Unlock{Message: fmt.Sprintf("New weapon: %s", name)})
		}
	}
}

// offerUpgrades 生成升级候选项
// 设置了选择协作方时同步选择并应用，否则暂停模拟等待 SelectUpgrade
func (s *ProgressionSystem) offerUpgrades(p playerRefs) {
	ctx := game.UpgradeContext{
		HP:              p.health.CurrentHealth,
		MaxHP:           p.health.MaxHealth,
		Piercing:        p.player.Piercing,
		UnlockedWeapons: s.UnlockedWeapons(),
	}
	if p.weapon != nil {
		ctx.ProjectileCount = p.weapon.ProjectileCount
	}

	pool := game.FilterUpgrades(&s.config.Upgrades, ctx)
	candidates := game.PickUpgrades(s.rng, pool, s.config.Upgrades.Choices)
	if len(candidates) == 0 {
		return
	}

	if s.chooser != nil {
		index := s.chooser.ChooseUpgrade(candidates)
		if index < 0 || index >= len(candidates) {
			index = 0
		}
		s.ApplyUpgrade(candidates[index].Def)
		return
	}

	s.gameState.PendingUpgrades = candidates
	s.gameState.Pause()
}

// SelectUpgrade 应用暂停期间等待选择的候选项并恢复模拟
func (s *ProgressionSystem) SelectUpgrade(index int) error {
	pending := s.gameState.PendingUpgrades
	if len(pending) == 0 {
		return fmt.Errorf("no upgrade selection is pending")
	}
	if index < 0 || index >= len(pending) {
		return fmt.Errorf("upgrade index %d out of range [0,%d)", index, len(pending))
	}
	s.gameState.PendingUpgrades = nil
	s.ApplyUpgrade(pending[index].Def)
	s.gameState.Resume()
	return nil
}

// ApplyUpgrade 将升级效果应用到玩家
func (s *ProgressionSystem) ApplyUpgrade(def config.UpgradeDef) {
	p, ok := lookupPlayer(s.entityManager)
	if !ok {
		return
	}
	player, health, weapon := p.player, p.health, p.weapon
	if weapon == nil {
		weapon = entities.NewWeapon(types.ProjectileBasic, 1, &s.config.Weapons)
		s.entityManager.AddComponent(p.id, weapon)
	}
	amount := def.Amount

	switch def.Kind {
	case config.UpgradeDamageAdd:
		player.BaseDamage += amount
	case config.UpgradeDamageMult:
		player.BaseDamage = float64(int(player.BaseDamage * amount))
	case config.UpgradeFireRateAdd:
		player.BaseFireRate += amount
	case config.UpgradeFireRateMult:
		player.BaseFireRate *= amount
	case config.UpgradeSpeedAdd:
		player.BaseSpeed += amount
	case config.UpgradeSpeedMult:
		player.BaseSpeed = float64(int(player.BaseSpeed * amount))
	case config.UpgradeProjectileCountAdd:
		weapon.ProjectileCount += int(amount)
	case config.UpgradeProjectileSpeedAdd:
		player.ProjectileSpeed += amount
		weapon.Speed += amount
	case config.UpgradePickupRangeAdd:
		player.PickupRange += amount
	case config.UpgradePickupRangeMult:
		player.PickupRange = float64(int(player.PickupRange * amount))
	case config.UpgradeHeal:
		health.Heal(int(amount))
	case config.UpgradeHealFull:
		health.Heal(health.MaxHealth)
	case config.UpgradeMaxHPAdd:
		health.MaxHealth += int(amount)
		health.CurrentHealth = minInt(health.CurrentHealth+int(amount), health.MaxHealth)
	case config.UpgradeWeapon:
		s.replaceWeapon(p.id, entities.NewWeapon(def.WeaponType(), weapon.Level, &s.config.Weapons))
	case config.UpgradeHybrid:
		hybrid := entities.NewHybridWeapon(weapon, def.WeaponType(), &s.config.Weapons)
		hybrid.Level++
		player.Piercing = def.Piercing
		s.replaceWeapon(p.id, hybrid)
	case config.UpgradeEnhance:
		n := int(math.Max(1, amount))
		weapon.Level += n
		player.BaseDamage += enhanceDamagePerLevel * float64(n)
		player.BaseFireRate *= enhanceFireRateFactor
	case config.UpgradeUltimateDamage:
		player.BaseDamage += amount
		weapon.Level += ultimateDamageLevelGap
	case config.UpgradeUltimateFireRate:
		weapon.FireRate *= amount
	case config.UpgradeUltimateSpeed:
		player.BaseSpeed = math.Min(player.BaseSpeed+amount, ultimateSpeedCap)
	case config.UpgradeUltimateHealth:
		health.MaxHealth = int(float64(health.MaxHealth) * amount)
		health.CurrentHealth = health.MaxHealth
	default:
		log.Printf("[ProgressionSystem] Unknown upgrade kind %q ignored", def.Kind)
		return
	}

	player.RecomputeStats()
	s.gameState.Stats.UpgradesChosen++

	if s.verbose {
		log.Printf("[ProgressionSystem] Applied upgrade %q", def.Title)
	}
}

// replaceWeapon 替换玩家武器，新武器沿用玩家当前的子弹速度
func (s *ProgressionSystem) replaceWeapon(id ecs.EntityID, weapon *components.WeaponComponent) {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok && !weapon.IsHybrid() {
		weapon.Speed = player.ProjectileSpeed
	}
	s.entityManager.AddComponent(id, weapon)
}

// EnemyUnlocked 敌人类型在当前等级是否可生成（不受等级表约束的类型恒为 true）
func (s *ProgressionSystem) EnemyUnlocked(t types.EnemyType) bool {
	level, governed := s.config.Progression.EnemyUnlockLevel(t)
	return !governed || s.Level() >= level
}

// UnlockedAbilities 当前等级已解锁的技能键
func (s *ProgressionSystem) UnlockedAbilities() map[string]bool {
	level := s.Level()
	result := make(map[string]bool)
	for _, u := range s.config.Progression.AbilityUnlocks {
		if level < u.Level {
			continue
		}
		for _, name := range u.Abilities {
			result[name] = true
		}
	}
	return result
}

// UnlockedWeapons 当前等级已解锁的武器类型，basic 始终可用
func (s *ProgressionSystem) UnlockedWeapons() map[types.ProjectileType]bool {
	level := s.Level()
	result := map[types.ProjectileType]bool{types.ProjectileBasic: true}
	for _, u := range s.config.Progression.WeaponUnlocks {
		if level < u.Level {
			continue
		}
		for _, name := range u.Weapons {
			if t, err := types.ParseProjectileType(name); err == nil {
				result[t] = true
			}
		}
	}
	return result
}

// SpawnableTypes 返回波次可用类型与等级解锁的交集，保持波次表顺序
// 交集为空时返回 basic
func (s *ProgressionSystem) SpawnableTypes(waveTypes []types.EnemyType) []types.EnemyType {
	result := make([]types.EnemyType, 0, len(waveTypes))
	for _, t := range waveTypes {
		if s.EnemyUnlocked(t) {
			result = append(result, t)
		}
	}
	if len(result) == 0 {
		result = append(result, types.EnemyBasic)
	}
	return result
}

// PickSpawnType 按等级权重从候选类型中选择一个
// 所有候选权重都为 0 时返回 basic
func (s *ProgressionSystem) PickSpawnType(candidates []types.EnemyType) types.EnemyType {
	level := s.Level()
	entries := make([]utils.WeightedEntry[types.EnemyType], 0, len(candidates))
	total := 0
	for _, t := range candidates {
		w := s.config.Progression.SpawnWeightFor(t, level)
		if w <= 0 {
			continue
		}
		total += w
		entries = append(entries, utils.WeightedEntry[types.EnemyType]{Value: t, Weight: float64(w)})
	}
	if total == 0 {
		return types.EnemyBasic
	}
	t, _ := utils.ChooseWeighted(s.rng, entries)
	return t
}

// SpawnOptions 构造新生成敌人的修正参数
//
// 参数：
//   - elite: 是否为精英
//   - difficulty: 波次难度倍率
func (s *ProgressionSystem) SpawnOptions(elite bool, difficulty float64) entities.EnemySpawnOptions {
	hp, damage, speed := s.config.Progression.LevelScaling.Multipliers(s.Level())
	unlocked := s.UnlockedAbilities()

	opts := entities.EnemySpawnOptions{
		Elite:                elite,
		DifficultyMultiplier: difficulty,
		HPMultiplier:         hp,
		DamageMultiplier:     damage,
		SpeedMultiplier:      speed,
		UnlockedAbilities:    unlocked,
	}
	if unlocked[eliteEnhancedKey] {
		enhancement := s.config.Progression.EliteEnhanced
		opts.EliteEnhancement = &enhancement
	}
	return opts
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
