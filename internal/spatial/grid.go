// Package spatial 均匀网格空间索引，用于碰撞检测粗筛
package spatial

import (
	"math"
	"sort"

	"github.com/jacl-coder/PixelStorm-Survival/internal/models"
)

// DefaultCellSize 默认格子边长；最大的挥砍范围(130)不超过三个格子
const DefaultCellSize = 128.0

// Cell 整数格子坐标
type Cell struct {
	X int
	Y int
}

// Grid 按位置分桶的实体ID索引
// 每个tick根据敌人位置整体重建一次，投射物和玩家只查询不插入
type Grid struct {
	cellSize float64
	cells    map[Cell][]string
	count    int
}

// NewGrid 创建网格，cellSize<=0时使用默认值
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Cell][]string),
	}
}

// CellSize 格子边长
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Len 已插入的实体数量
func (g *Grid) Len() int {
	return g.count
}

// Clear 清空所有格子，保留切片容量
func (g *Grid) Clear() {
	for c, ids := range g.cells {
		if len(ids) == 0 {
			delete(g.cells, c)
			continue
		}
		g.cells[c] = ids[:0]
	}
	g.count = 0
}

// CellCoords 计算位置所在格子 floor(pos / cellSize)
func (g *Grid) CellCoords(pos models.Vector2D) Cell {
	return Cell{
		X: int(math.Floor(pos.X / g.cellSize)),
		Y: int(math.Floor(pos.Y / g.cellSize)),
	}
}

// Insert 插入实体
func (g *Grid) Insert(id string, pos models.Vector2D) {
	c := g.CellCoords(pos)
	g.cells[c] = append(g.cells[c], id)
	g.count++
}

// QueryNearby 返回以pos所在格子为中心的3x3范围内所有实体
func (g *Grid) QueryNearby(pos models.Vector2D) []string {
	return g.appendNearby(nil, pos)
}

// appendNearby 将3x3范围内的实体追加到buf
func (g *Grid) appendNearby(buf []string, pos models.Vector2D) []string {
	if g.count == 0 {
		return buf
	}
	center := g.CellCoords(pos)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			buf = append(buf, g.cells[Cell{X: center.X + dx, Y: center.Y + dy}]...)
		}
	}
	return buf
}

// QueryAABB 返回格子坐标落在[min,max]闭区间内的所有实体
// 适用于跨越多个格子的大范围形状
func (g *Grid) QueryAABB(min, max models.Vector2D) []string {
	if g.count == 0 {
		return nil
	}
	lo := g.CellCoords(models.Vector2D{X: math.Min(min.X, max.X), Y: math.Min(min.Y, max.Y)})
	hi := g.CellCoords(models.Vector2D{X: math.Max(min.X, max.X), Y: math.Max(min.Y, max.Y)})

	span := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1)
	if span > len(g.cells) {
		return g.scanOccupied(lo, hi)
	}

	var result []string
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			result = append(result, g.cells[Cell{X: x, Y: y}]...)
		}
	}
	return result
}

// All 返回网格中全部实体，按格子行优先顺序
func (g *Grid) All() []string {
	if g.count == 0 {
		return nil
	}
	return g.scanOccupied(Cell{X: math.MinInt, Y: math.MinInt}, Cell{X: math.MaxInt, Y: math.MaxInt})
}

// scanOccupied 范围远大于已占用格子数时，只遍历已占用格子
// 结果仍按行优先顺序返回
func (g *Grid) scanOccupied(lo, hi Cell) []string {
	occupied := make([]Cell, 0, len(g.cells))
	for c, ids := range g.cells {
		if len(ids) == 0 {
			continue
		}
		if c.X < lo.X || c.X > hi.X || c.Y < lo.Y || c.Y > hi.Y {
			continue
		}
		occupied = append(occupied, c)
	}
	sort.Slice(occupied, func(i, j int) bool {
		if occupied[i].Y != occupied[j].Y {
			return occupied[i].Y < occupied[j].Y
		}
		return occupied[i].X < occupied[j].X
	})

	var result []string
	for _, c := range occupied {
		result = append(result, g.cells[c]...)
	}
	return result
}
