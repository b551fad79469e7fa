package components

import "github.com/decker502/dragonguard/pkg/ecs"

// GridComponent 标识战场网格管理器实体
// 用于跟踪哪些格子已被单位占用
//
// Occupancy 是一个二维数组，存储每个格子的占用状态
// [row][col] = EntityID，其中 0 表示空格子
// 网格只保存对单位实体的引用，单位本身归 EntityManager 所有
type GridComponent struct {
	Rows int
	Cols int
	// Occupancy 存储每个格子的占用状态 (0 表示空格子)
	Occupancy [][]ecs.EntityID
}

// NewGridComponent 创建指定尺寸的空网格
func NewGridComponent(rows, cols int) *GridComponent {
	occupancy := make([][]ecs.EntityID, rows)
	for r := range occupancy {
		occupancy[r] = make([]ecs.EntityID, cols)
	}
	return &GridComponent{
		Rows:      rows,
		Cols:      cols,
		Occupancy: occupancy,
	}
}
