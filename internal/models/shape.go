package models

import "math"

// ShapeKind 形状类型
type ShapeKind uint8

const (
	// ShapeCircle 圆
	ShapeCircle ShapeKind = iota + 1
	// ShapeRectangle 轴对齐矩形
	ShapeRectangle
	// ShapeLine 线段
	ShapeLine
)

// String 形状名
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	case ShapeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Shape 碰撞形状，封闭集合: Circle / Rectangle / LineSegment
type Shape interface {
	Kind() ShapeKind
	// Bounds 以pos为锚点的包围盒
	Bounds(pos Vector2D) (min, max Vector2D)
	isShape()
}

// Circle 圆形
type Circle struct {
	Radius float64 `json:"radius"`
}

// Rectangle 以中心为锚点的轴对齐矩形
type Rectangle struct {
	HalfW float64 `json:"half_w"`
	HalfH float64 `json:"half_h"`
}

// LineSegment 从锚点沿Direction延伸Length的线段，Width为总宽度
type LineSegment struct {
	Direction Vector2D `json:"direction"`
	Length    float64  `json:"length"`
	Width     float64  `json:"width"`
}

func (Circle) isShape()      {}
func (Rectangle) isShape()   {}
func (LineSegment) isShape() {}

// Kind 实现Shape
func (Circle) Kind() ShapeKind { return ShapeCircle }

// Kind 实现Shape
func (Rectangle) Kind() ShapeKind { return ShapeRectangle }

// Kind 实现Shape
func (LineSegment) Kind() ShapeKind { return ShapeLine }

// Bounds 实现Shape
func (c Circle) Bounds(pos Vector2D) (Vector2D, Vector2D) {
	r := Vector2D{X: c.Radius, Y: c.Radius}
	return pos.Sub(r), pos.Add(r)
}

// Bounds 实现Shape
func (r Rectangle) Bounds(pos Vector2D) (Vector2D, Vector2D) {
	h := Vector2D{X: r.HalfW, Y: r.HalfH}
	return pos.Sub(h), pos.Add(h)
}

// Bounds 实现Shape
func (l LineSegment) Bounds(pos Vector2D) (Vector2D, Vector2D) {
	end := l.End(pos)
	hw := l.HalfWidth()
	min := Vector2D{X: math.Min(pos.X, end.X) - hw, Y: math.Min(pos.Y, end.Y) - hw}
	max := Vector2D{X: math.Max(pos.X, end.X) + hw, Y: math.Max(pos.Y, end.Y) + hw}
	return min, max
}

// End 线段终点
func (l LineSegment) End(pos Vector2D) Vector2D {
	return pos.Add(l.Direction.Scale(l.Length))
}

// HalfWidth 半宽
func (l LineSegment) HalfWidth() float64 {
	return l.Width / 2
}
