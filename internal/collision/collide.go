// Package collision 形状相交判定，全部为无副作用的纯函数
package collision

import (
	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// Collide 判断两个形状是否相交
// 参数按形状类型排序后分派，每种组合只有一份实现；未列出的组合(如线段-矩形)视为不相交
func Collide(a models.Shape, pa models.Vector2D, b models.Shape, pb models.Vector2D) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() > b.Kind() {
		a, b = b, a
		pa, pb = pb, pa
	}

	switch sa := a.(type) {
	case models.Circle:
		switch sb := b.(type) {
		case models.Circle:
			return CircleCircle(pa, sa.Radius, pb, sb.Radius)
		case models.Rectangle:
			return CircleRect(pa, sa.Radius, pb, sb)
		case models.LineSegment:
			return CircleLine(pa, sa.Radius, pb, sb)
		}
	case models.Rectangle:
		if sb, ok := b.(models.Rectangle); ok {
			return RectRect(pa, sa, pb, sb)
		}
	}
	return false
}

// CircleCircle 圆-圆: 圆心距离平方 <= (r1+r2)^2
func CircleCircle(p1 models.Vector2D, r1 float64, p2 models.Vector2D, r2 float64) bool {
	r := r1 + r2
	return p1.DistanceSq(p2) <= r*r
}

// CircleRect 圆-矩形: 圆心夹紧到矩形范围后比较距离
func CircleRect(c models.Vector2D, r float64, rc models.Vector2D, rect models.Rectangle) bool {
	closest := models.Vector2D{
		X: models.Clamp(c.X, rc.X-rect.HalfW, rc.X+rect.HalfW),
		Y: models.Clamp(c.Y, rc.Y-rect.HalfH, rc.Y+rect.HalfH),
	}
	return c.DistanceSq(closest) <= r*r
}

// CircleLine 圆-线段: 圆心投影到线段，t夹紧到[0,1]，距离 <= r + 半宽
// 零长度线段退化为圆-圆判定
func CircleLine(c models.Vector2D, r float64, start models.Vector2D, line models.LineSegment) bool {
	hw := line.HalfWidth()
	end := line.End(start)
	seg := end.Sub(start)
	lenSq := seg.LenSq()
	if lenSq == 0 {
		return CircleCircle(c, r, start, hw)
	}

	t := models.Clamp(c.Sub(start).Dot(seg)/lenSq, 0, 1)
	closest := start.Add(seg.Scale(t))
	reach := r + hw
	return c.DistanceSq(closest) <= reach*reach
}

// RectRect 矩形-矩形: 两轴区间均重叠
func RectRect(p1 models.Vector2D, r1 models.Rectangle, p2 models.Vector2D, r2 models.Rectangle) bool {
	if p1.X+r1.HalfW < p2.X-r2.HalfW || p2.X+r2.HalfW < p1.X-r1.HalfW {
		return false
	}
	if p1.Y+r1.HalfH < p2.Y-r2.HalfH || p2.Y+r2.HalfH < p1.Y-r1.HalfH {
		return false
	}
	return true
}

// InFrontHalfPlane 目标方向与朝向点积>0，即位于前方半平面
func InFrontHalfPlane(origin, facing, target models.Vector2D) bool {
	return target.Sub(origin).Dot(facing) > 0
}
