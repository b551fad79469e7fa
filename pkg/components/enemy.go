package components

// EnemyComponent 标识实体为进攻的敌人
//
// 敌人只在自己的行内水平移动，X 随时间减小，越过 0 即突破基地
type EnemyComponent struct {
	// TypeName 敌人类型名称（如 "Tank Dragon"）
	TypeName string
	// Row 所在行，生成时随机分配，之后不变
	Row int
	// X 连续的水平位置（世界坐标，单位与格子尺寸一致）
	X float64
	// Wave 生成时所处的波次（用于日志与调试显示）
	Wave int
}
