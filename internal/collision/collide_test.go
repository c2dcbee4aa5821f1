package collision

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

func vec(x, y float64) models.Vector2D {
	return models.Vector2D{X: x, Y: y}
}

func TestCircleCircle(t *testing.T) {
	a := models.Circle{Radius: 5}
	b := models.Circle{Radius: 5}

	assert.True(t, Collide(a, vec(0, 0), b, vec(10, 0)), "恰好相切算命中")
	assert.False(t, Collide(a, vec(0, 0), b, vec(10.01, 0)))
	assert.True(t, Collide(a, vec(0, 0), b, vec(3, 4)))
}

func TestCircleCircleSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := models.Circle{Radius: rng.Float64() * 30}
		b := models.Circle{Radius: rng.Float64() * 30}
		pa := vec(rng.Float64()*100, rng.Float64()*100)
		pb := vec(rng.Float64()*100, rng.Float64()*100)
		assert.Equal(t, Collide(a, pa, b, pb), Collide(b, pb, a, pa))
	}
}

func TestCircleRect(t *testing.T) {
	rect := models.Rectangle{HalfW: 10, HalfH: 5}
	c := models.Circle{Radius: 2}

	assert.True(t, Collide(c, vec(0, 0), rect, vec(0, 0)), "圆心在矩形内")
	assert.True(t, Collide(c, vec(12, 0), rect, vec(0, 0)))
	assert.False(t, Collide(c, vec(12.5, 0), rect, vec(0, 0)))
	// 角点附近使用欧氏距离
	assert.False(t, Collide(c, vec(11.8, 6.8), rect, vec(0, 0)))
	assert.True(t, Collide(rect, vec(0, 0), c, vec(11, 6)), "参数顺序无关")
}

func TestCircleLine(t *testing.T) {
	line := models.LineSegment{Direction: vec(1, 0), Length: 100, Width: 10}
	c := models.Circle{Radius: 5}

	assert.True(t, Collide(c, vec(50, 10), line, vec(0, 0)))
	assert.False(t, Collide(c, vec(50, 10.5), line, vec(0, 0)))
	assert.True(t, Collide(line, vec(0, 0), c, vec(50, -10)))
	// 超出端点后按端点距离判断
	assert.False(t, Collide(c, vec(110.5, 0), line, vec(0, 0)))
	assert.True(t, Collide(c, vec(-9, 0), line, vec(0, 0)))
}

// t=0和t=1处的结果与端点的圆-圆判定一致
func TestCircleLineEndpointsMatchCircleCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	start := vec(0, 0)
	line := models.LineSegment{Direction: vec(0, 1), Length: 40, Width: 6}
	end := line.End(start)

	for i := 0; i < 300; i++ {
		r := rng.Float64() * 10
		// 落在线段起点之后(t<=0)
		before := vec(rng.Float64()*40-20, -rng.Float64()*20)
		assert.Equal(t, CircleCircle(before, r, start, line.HalfWidth()), CircleLine(before, r, start, line))
		// 落在线段终点之后(t>=1)
		after := vec(rng.Float64()*40-20, 40+rng.Float64()*20)
		assert.Equal(t, CircleCircle(after, r, end, line.HalfWidth()), CircleLine(after, r, start, line))
	}
}

func TestDegenerateLineFallsBackToCircle(t *testing.T) {
	line := models.LineSegment{Direction: vec(1, 0), Length: 0, Width: 4}
	c := models.Circle{Radius: 3}
	assert.True(t, Collide(c, vec(5, 0), line, vec(0, 0)))
	assert.False(t, Collide(c, vec(5.1, 0), line, vec(0, 0)))
}

func TestRectRect(t *testing.T) {
	a := models.Rectangle{HalfW: 5, HalfH: 5}
	b := models.Rectangle{HalfW: 2, HalfH: 2}
	assert.True(t, Collide(a, vec(0, 0), b, vec(7, 7)))
	assert.False(t, Collide(a, vec(0, 0), b, vec(7.5, 0)))
	assert.False(t, Collide(a, vec(0, 0), b, vec(0, -7.5)))
}

func TestUnsupportedPairsNeverCollide(t *testing.T) {
	line := models.LineSegment{Direction: vec(1, 0), Length: 10, Width: 10}
	rect := models.Rectangle{HalfW: 100, HalfH: 100}
	assert.False(t, Collide(line, vec(0, 0), rect, vec(0, 0)))
	assert.False(t, Collide(rect, vec(0, 0), line, vec(0, 0)))
	assert.False(t, Collide(line, vec(0, 0), line, vec(0, 0)))
	assert.False(t, Collide(nil, vec(0, 0), rect, vec(0, 0)))
}

func TestInFrontHalfPlane(t *testing.T) {
	facing := vec(1, 0)
	assert.True(t, InFrontHalfPlane(vec(0, 0), facing, vec(1, 5)))
	assert.False(t, InFrontHalfPlane(vec(0, 0), facing, vec(0, 5)))
	assert.False(t, InFrontHalfPlane(vec(0, 0), facing, vec(-1, 0)))
}
