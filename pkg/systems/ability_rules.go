package systems

import (
	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/types"
)

// abilityRule 一条技能触发规则
type abilityRule struct {
	name string
	// ready 冷却归零后的附加触发条件，nil 表示冷却归零即触发
	ready func(c *abilityContext) bool
	// fire 触发动作：修改敌人状态并追加效果
	fire func(c *abilityContext)
	// manual 为 true 时每帧都调用 fire，由规则自己管理冷却（蓄力类技能）
	manual bool
}

// abilityRules 构建按敌人类型索引的规则表
// 同一类型的规则按声明顺序评估
func abilityRules() map[types.EnemyType][]abilityRule {
	shield := abilityRule{name: "shield", ready: (*abilityContext).hpBelow, fire: fireShield}
	rage := abilityRule{name: "rage", ready: readyRage, fire: fireRage}
	summon := abilityRule{name: "summon", ready: readySummon, fire: fireSummon}
	shockwave := abilityRule{name: "shockwave", ready: (*abilityContext).inRange, fire: fireShockwave}
	shoot := func(name string) abilityRule {
		return abilityRule{name: name, ready: (*abilityContext).inRange, fire: fireShoot}
	}

	return map[types.EnemyType][]abilityRule{
		types.EnemyTank: {
			shield,
			{name: "stomp", ready: (*abilityContext).inRange, fire: fireStomp},
		},
		types.EnemyFast: {
			{name: "dash", ready: (*abilityContext).inRange, fire: fireDash},
			{name: "phase", ready: (*abilityContext).hpBelow, fire: firePhase},
		},
		types.EnemyBoss: {rage, summon, shockwave},
		types.EnemyMegaBoss: {
			rage, summon, shockwave, shield,
			{name: "phase_dash", ready: (*abilityContext).inRange, fire: firePhaseDash},
			{name: "multi_attack", ready: (*abilityContext).inRange, fire: fireMultiAttack},
			{name: "dash_charge", fire: updateDashCharge, manual: true},
		},
		types.EnemySniper:     {shoot("snipe")},
		types.EnemyHealer:     {{name: "heal", fire: fireHeal}},
		types.EnemyBomber:     {{name: "explode", ready: readyExplode, fire: fireExplode}},
		types.EnemyProjectile: {shoot("shoot")},
		types.EnemyLaser:      {{name: "laser", fire: updateLaser, manual: true}},
		types.EnemyMortar:     {{name: "mortar", ready: (*abilityContext).inRange, fire: fireMortar}},
		types.EnemySummoner:   {summon},
		types.EnemyAssassin: {
			{name: "stealth", ready: readyStealth, fire: fireStealth},
			{name: "backstab", ready: readyBackstab, fire: fireBackstab},
		},
	}
}

// 护盾：限时减伤并减速
func fireShield(c *abilityContext) {
	c.enemy.ShieldActive = true
	c.enemy.ShieldTimer = c.ability.Duration
}

func fireStomp(c *abilityContext) {
	c.enemy.PushEffect(events.StompEffect{Radius: c.ability.Radius, Damage: c.damage()})
}

// 冲刺：短时间内速度乘以倍率
func fireDash(c *abilityContext) {
	c.enemy.Dashing = true
	c.enemy.DashTimer = c.ability.Duration
	c.enemy.DashSpeedMultiplier = orDefault(c.ability.Multiplier, 2)
}

func firePhase(c *abilityContext) {
	c.enemy.Phased = true
	c.enemy.PhaseTimer = c.ability.Duration
}

// 狂暴只触发一次，效果永久
func readyRage(c *abilityContext) bool {
	return !c.enemy.Raged && c.health.Fraction() < c.stats.RageThreshold
}

func fireRage(c *abilityContext) {
	c.enemy.Raged = true
	c.enemy.Speed *= 2
	c.enemy.CollisionDamage *= 1.5
}

// 召唤上限为 0 表示不限次数；召唤计数只增不减
func readySummon(c *abilityContext) bool {
	if c.enemy.MaxSummons > 0 && c.enemy.CurrentSummons >= c.enemy.MaxSummons {
		return false
	}
	return c.inRange()
}

func fireSummon(c *abilityContext) {
	c.enemy.CurrentSummons++
	c.enemy.PushEffect(events.SummonEffect{Types: c.enemy.SummonTypes})
}

func fireShockwave(c *abilityContext) {
	c.enemy.PushEffect(events.ShockwaveEffect{Radius: c.ability.Radius, Damage: c.damage()})
}

// 相位闪现：瞬移到玩家前方 Radius 像素处，并短暂加速
func firePhaseDash(c *abilityContext) {
	from := c.pos.Pos
	direction := c.playerPos.Sub(from).Normalize()
	to := c.playerPos.Sub(direction.Scale(c.ability.Radius))
	c.pos.Pos = to

	c.enemy.Dashing = true
	c.enemy.DashTimer = c.ability.Duration
	c.enemy.DashSpeedMultiplier = orDefault(c.ability.Multiplier, 2)
	c.enemy.PushEffect(events.PhaseDashEffect{From: from, To: to})
}

// 连击：窗口期内接触伤害乘以倍率
func fireMultiAttack(c *abilityContext) {
	c.enemy.MultiAttackTimer = c.ability.Duration
	c.enemy.MultiAttackMultiplier = orDefault(c.ability.Multiplier, 2)
	c.enemy.PushEffect(events.MultiAttackEffect{Duration: c.ability.Duration})
}

// updateDashCharge 蓄力冲刺
//
// 开始蓄力时记录玩家位置快照；蓄力进度只在开始之后的帧累加，
// 蓄满后瞬移到快照位置（而不是玩家当前位置），然后重置冷却。
func updateDashCharge(c *abilityContext) {
	e := c.enemy
	if e.IsChargingDash {
		e.DashChargeTime += c.deltaTime
		if e.DashChargeTime >= c.ability.ChargeTime {
			from := c.pos.Pos
			c.pos.Pos = e.DashTarget
			e.IsChargingDash = false
			e.DashChargeTime = 0
			e.Cooldowns[c.ability.Name] = c.ability.Cooldown
			e.PushEffect(events.DashExecuteEffect{From: from, To: e.DashTarget})
		}
		return
	}

	if e.Cooldowns[c.ability.Name] > 0 || !c.inRange() {
		return
	}
	e.IsChargingDash = true
	e.DashChargeTime = 0
	e.DashTarget = c.playerPos
	e.PushEffect(events.DashChargeEffect{Target: c.playerPos})
}

func fireHeal(c *abilityContext) {
	c.enemy.PushEffect(events.HealEffect{Radius: c.ability.Radius, Amount: c.ability.Amount})
}

// 自爆只触发一次
func readyExplode(c *abilityContext) bool {
	return !c.enemy.HasExploded && c.inRange()
}

func fireExplode(c *abilityContext) {
	c.enemy.HasExploded = true
	c.enemy.PushEffect(events.ExplosionEffect{
		Pos:    c.pos.Pos,
		Radius: c.stats.ExplosionRadius,
		Damage: c.enemy.Damage,
	})
}

func fireShoot(c *abilityContext) {
	c.enemy.PushEffect(events.ShootEffect{Target: c.playerPos, Damage: c.enemy.Damage, Speed: c.ability.Speed})
}

// updateLaser 激光：第一次触发进入蓄力，蓄力结束时朝玩家当前位置发射并重置冷却
func updateLaser(c *abilityContext) {
	e := c.enemy
	if e.IsChargingLaser {
		e.LaserChargeTimer -= c.deltaTime
		if e.LaserChargeTimer <= 0 {
			e.IsChargingLaser = false
			e.LaserChargeTimer = 0
			e.Cooldowns[c.ability.Name] = c.ability.Cooldown
			e.PushEffect(events.LaserFireEffect{
				From:   c.pos.Pos,
				To:     c.playerPos,
				Width:  c.ability.Radius,
				Damage: e.Damage,
			})
		}
		return
	}

	if e.Cooldowns[c.ability.Name] > 0 || !c.inRange() {
		return
	}
	e.IsChargingLaser = true
	e.LaserChargeTimer = c.ability.ChargeTime
	e.PushEffect(events.LaserChargeEffect{Duration: c.ability.ChargeTime})
}

func fireMortar(c *abilityContext) {
	radius := c.ability.Radius
	if radius == 0 {
		radius = c.stats.ExplosionRadius
	}
	c.enemy.PushEffect(events.MortarFireEffect{
		Target: c.playerPos,
		Radius: radius,
		Damage: c.enemy.Damage,
		Speed:  c.ability.Speed,
	})
}

// 隐身：中距离进入，只有贴近玩家触发背刺时才现身
func readyStealth(c *abilityContext) bool {
	return !c.enemy.Stealthed && c.inRange()
}

func fireStealth(c *abilityContext) {
	c.enemy.Stealthed = true
	c.enemy.PushEffect(events.StealthEffect{})
}

// 背刺：隐身状态下贴近玩家时现身，下一次接触伤害乘以倍率
// 隐身冷却从现身时开始计算
func readyBackstab(c *abilityContext) bool {
	return c.enemy.Stealthed && c.inRange()
}

func fireBackstab(c *abilityContext) {
	multiplier := orDefault(c.ability.Multiplier, 2)
	c.enemy.Stealthed = false
	if stealth, ok := c.stats.Ability("stealth"); ok {
		c.enemy.Cooldowns["stealth"] = stealth.Cooldown
	}
	c.enemy.BackstabMultiplier = multiplier
	c.enemy.PushEffect(events.BackstabEffect{Multiplier: multiplier})
}
