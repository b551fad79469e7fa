package components

// UnitComponent 标识实体为玩家放置的防御单位
// 包含单位类型和所在格子位置信息
//
// 单位放置后不会移动，GridRow/GridCol 在创建时确定
type UnitComponent struct {
	// TypeName 单位类型名称（如 "Rifleman"），用于查询目录中的静态属性
	TypeName string
	// TypeIndex 单位类型在目录中的下标，对应放置冷却数组
	TypeIndex int
	// GridRow 所在行 (从上到下)
	GridRow int
	// GridCol 所在列 (从左到右)
	GridCol int

	// FireTick 距上次开火经过的 tick 数
	// 只在同行存在目标时累加，超过 speed*24 时开火并归零
	FireTick int
}
