package utils

import "math"

// Vec2 二维向量（像素坐标系，X 向右，Y 向下）
type Vec2 struct {
	X, Y float64
}

// V 构造向量的简写
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// Normalize 返回单位向量
// 零向量返回零向量，不会产生 NaN
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate 按弧度逆时针旋转
func (v Vec2) Rotate(radians float64) Vec2 {
	sin, cos := math.Sincos(radians)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Lerp 线性插值，t 不做截断
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// IsFinite 检查坐标是否为有限值
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// PointSegmentDistance 计算点 p 到线段 ab 的最短距离
// 退化线段（a == b）按点距离处理
func PointSegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Scale(t)))
}

// Falloff 计算线性衰减系数 1 - d/r，截断到 [0,1]
// 半径非正时返回 0
func Falloff(distance, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	f := 1 - distance/radius
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Clamp 将 v 截断到 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect 以中心点和尺寸描述的轴对齐包围盒
type Rect struct {
	Center        Vec2
	Width, Height float64
}

// RectAt 以中心和边长构造正方形包围盒
func RectAt(center Vec2, size float64) Rect {
	return Rect{Center: center, Width: size, Height: size}
}

// Overlaps 检查两个 AABB 是否相交（边缘相接不算相交）
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.Center.X-o.Center.X)*2 < r.Width+o.Width &&
		math.Abs(r.Center.Y-o.Center.Y)*2 < r.Height+o.Height
}
