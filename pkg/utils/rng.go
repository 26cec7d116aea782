package utils

import (
	"math/rand"
	"time"
)

// WeightedEntry 加权随机表中的一项
type WeightedEntry[T any] struct {
	Value  T
	Weight float64
}

// RNG 对标准随机数生成器的包装，整局模拟共享同一个实例
// 固定种子可以得到可复现的刷怪和掉落序列（用于测试）
type RNG struct {
	rng *rand.Rand
}

// NewRNG 使用指定种子创建随机数源
// 种子为 0 时使用当前时间
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{rng: rand.New(rand.NewSource(seed))}
}

// Intn 返回 [0, n) 的随机整数，n <= 0 时返回 0
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// IntRange 返回 [lo, hi] 的随机整数
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// Float64 返回 [0.0, 1.0) 的随机浮点数
func (r *RNG) Float64() float64 {
	return r.rng.Float64()
}

// Range 返回 [lo, hi) 的随机浮点数
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// Chance 以概率 p 返回 true
func (r *RNG) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Choose 从切片中均匀随机选择一项
func Choose[T any](r *RNG, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.Intn(len(items))], true
}

// ChooseWeighted 执行加权随机选择
// 总权重非正时返回第一项；空表返回零值和 false
func ChooseWeighted[T any](r *RNG, entries []WeightedEntry[T]) (T, bool) {
	var zero T
	if len(entries) == 0 {
		return zero, false
	}

	total := 0.0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return entries[0].Value, true
	}

	x := r.Float64() * total
	upto := 0.0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if upto+e.Weight > x {
			return e.Value, true
		}
		upto += e.Weight
	}
	return entries[len(entries)-1].Value, true
}
