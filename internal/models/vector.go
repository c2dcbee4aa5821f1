// vector.go

package models

import "math"

// Vector2D 二维向量
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromAngle 由弧度角构造单位向量
func FromAngle(angle float64) Vector2D {
	return Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add 向量加法
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量减法
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vector2D) Scale(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Dot 点积
func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq 长度平方
func (v Vector2D) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len 长度
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// DistanceTo 两点距离
func (v Vector2D) DistanceTo(o Vector2D) float64 {
	return v.Sub(o).Len()
}

// DistanceSq 两点距离平方
func (v Vector2D) DistanceSq(o Vector2D) float64 {
	return v.Sub(o).LenSq()
}

// Normalize 归一化，零向量原样返回
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector2D{X: v.X / l, Y: v.Y / l}
}

// Rotate 旋转向量(弧度)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle 向量朝向(弧度)
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// DirectionTo 从v指向target的单位向量；重合时返回fallback
func (v Vector2D) DirectionTo(target, fallback Vector2D) Vector2D {
	d := target.Sub(v)
	if d.LenSq() == 0 {
		return fallback
	}
	return d.Normalize()
}
