package components

// HealthComponent 存储实体的生命值信息
// 用于玩家和敌人，CurrentHealth 永远不会小于 0
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// NewHealth 创建满血的生命值组件
func NewHealth(max int) *HealthComponent {
	return &HealthComponent{CurrentHealth: max, MaxHealth: max}
}

// Fraction 返回当前生命值比例，最大生命值非正时返回 0
func (h *HealthComponent) Fraction() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return float64(h.CurrentHealth) / float64(h.MaxHealth)
}

// TakeDamage 扣除生命值并截断到 0
// 返回: 实际扣除量
func (h *HealthComponent) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > h.CurrentHealth {
		amount = h.CurrentHealth
	}
	h.CurrentHealth -= amount
	return amount
}

// Heal 恢复生命值，不超过最大生命值
// 返回: 实际恢复量
func (h *HealthComponent) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.CurrentHealth
	h.CurrentHealth += amount
	if h.CurrentHealth > h.MaxHealth {
		h.CurrentHealth = h.MaxHealth
	}
	return h.CurrentHealth - before
}

// IsDead 生命值归零
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}
