package systems

import (
	"fmt"
	"math"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/ecs"
)

// GridSystem 管理战场网格的占用状态
// 负责跟踪哪些格子已被单位占用，并提供查询和更新方法
//
// 网格格子只保存单位实体的引用，单位本身由 EntityManager 持有。
// 所有坐标参数都按 (row, col) 顺序传递。
type GridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
	cellSize      float64
}

// NewGridSystem 创建网格系统
// 参数:
//   - em: EntityManager 实例
//   - gridEntity: 持有 GridComponent 的实体
//   - cellSize: 格子边长（世界坐标）
func NewGridSystem(em *ecs.EntityManager, gridEntity ecs.EntityID, cellSize float64) *GridSystem {
	return &GridSystem{
		entityManager: em,
		gridEntity:    gridEntity,
		cellSize:      cellSize,
	}
}

func (s *GridSystem) grid() *components.GridComponent {
	grid, _ := ecs.GetComponent[*components.GridComponent](s.entityManager, s.gridEntity)
	return grid
}

// Rows 行数
func (s *GridSystem) Rows() int {
	if g := s.grid(); g != nil {
		return g.Rows
	}
	return 0
}

// Cols 列数
func (s *GridSystem) Cols() int {
	if g := s.grid(); g != nil {
		return g.Cols
	}
	return 0
}

// CellSize 格子边长
func (s *GridSystem) CellSize() float64 {
	return s.cellSize
}

// InBounds 检查网格位置是否有效
func (s *GridSystem) InBounds(row, col int) bool {
	g := s.grid()
	if g == nil {
		return false
	}
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// IsOccupied 检查指定格子是否已被占用
// 无效位置视为"已占用"，防止放置
func (s *GridSystem) IsOccupied(row, col int) bool {
	if !s.InBounds(row, col) {
		return true
	}
	return s.grid().Occupancy[row][col] != 0
}

// OccupantAt 返回占用格子的单位实体，空格子或无效位置返回 0
func (s *GridSystem) OccupantAt(row, col int) ecs.EntityID {
	if !s.InBounds(row, col) {
		return 0
	}
	return s.grid().Occupancy[row][col]
}

// OccupyCell 标记指定格子为被占用状态
//
// 返回:
//   - error: 如果位置无效或格子已被占用，返回错误
func (s *GridSystem) OccupyCell(row, col int, unitEntity ecs.EntityID) error {
	if !s.InBounds(row, col) {
		return fmt.Errorf("invalid grid position: row=%d, col=%d", row, col)
	}

	grid := s.grid()
	if grid.Occupancy[row][col] != 0 {
		return fmt.Errorf("grid cell (%d, %d) is already occupied by entity %d", row, col, grid.Occupancy[row][col])
	}

	grid.Occupancy[row][col] = unitEntity
	return nil
}

// ReleaseIfOccupiedBy 仅当格子仍指向 unitEntity 时清空
// 返回是否确实清空了格子
func (s *GridSystem) ReleaseIfOccupiedBy(row, col int, unitEntity ecs.EntityID) bool {
	if s.OccupantAt(row, col) != unitEntity || unitEntity == 0 {
		return false
	}
	s.grid().Occupancy[row][col] = 0
	return true
}

// Clear 清空所有格子
func (s *GridSystem) Clear() {
	grid := s.grid()
	if grid == nil {
		return
	}
	for r := range grid.Occupancy {
		for c := range grid.Occupancy[r] {
			grid.Occupancy[r][c] = 0
		}
	}
}

// OccupiedCount 已占用的格子数量
func (s *GridSystem) OccupiedCount() int {
	grid := s.grid()
	if grid == nil {
		return 0
	}
	count := 0
	for r := range grid.Occupancy {
		for _, id := range grid.Occupancy[r] {
			if id != 0 {
				count++
			}
		}
	}
	return count
}

// ColumnAt 把世界坐标 x 换算为列索引，可能越界（负数或 >= Cols）
func (s *GridSystem) ColumnAt(x float64) int {
	return int(math.Floor(x / s.cellSize))
}

// ColumnBoundary 返回列 col 左边界的世界坐标
func (s *GridSystem) ColumnBoundary(col int) float64 {
	return float64(col) * s.cellSize
}
