package game

// Combo 连击计数器
// 每次击杀 +1 并重置超时，超时或玩家受伤时归零
type Combo struct {
	Count int
	Timer float64
	Max   int

	timeout    float64
	milestones map[int]bool
	// broken 本帧玩家已受伤，之后的击杀不再计入连击
	broken bool
}

// NewCombo 创建连击计数器
func NewCombo(timeout float64, milestones []int) *Combo {
	m := make(map[int]bool, len(milestones))
	for _, v := range milestones {
		m[v] = true
	}
	return &Combo{timeout: timeout, milestones: m}
}

// Increment 记录一次击杀
// 返回: 是否刚好达到里程碑
func (c *Combo) Increment() bool {
	if c.broken {
		return false
	}
	c.Count++
	c.Timer = c.timeout
	if c.Count > c.Max {
		c.Max = c.Count
	}
	return c.milestones[c.Count]
}

// Update 推进超时计时，并解除上一帧的受伤锁定
// 每帧开始时调用一次
func (c *Combo) Update(deltaTime float64) {
	c.broken = false
	if c.Timer <= 0 {
		return
	}
	c.Timer -= deltaTime
	if c.Timer <= 0 {
		c.Reset()
	}
}

// Reset 连击归零
func (c *Combo) Reset() {
	c.Count = 0
	c.Timer = 0
}

// Break 玩家受伤：连击归零，本帧剩余时间内的击杀不再计数
func (c *Combo) Break() {
	c.Reset()
	c.broken = true
}
