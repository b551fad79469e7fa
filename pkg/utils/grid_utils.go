package utils

// BoardLayout 描述战场在屏幕上的位置
// 所有坐标都是逻辑屏幕坐标（ebiten Layout 返回的尺寸）
type BoardLayout struct {
	OriginX  float64 // 网格左上角 X
	OriginY  float64 // 网格左上角 Y
	CellSize float64 // 正方形格子边长
	Rows     int
	Cols     int
}

// Width 网格总宽度
func (b BoardLayout) Width() float64 {
	return float64(b.Cols) * b.CellSize
}

// Height 网格总高度
func (b BoardLayout) Height() float64 {
	return float64(b.Rows) * b.CellSize
}

// ScreenToCell 将屏幕坐标转换为网格坐标
// 参数:
//   - screenX, screenY: 鼠标或触摸的屏幕坐标
//
// 返回:
//   - row, col: 网格坐标
//   - isValid: 是否落在网格范围内
func (b BoardLayout) ScreenToCell(screenX, screenY int) (row, col int, isValid bool) {
	if b.CellSize <= 0 {
		return 0, 0, false
	}
	x := float64(screenX) - b.OriginX
	y := float64(screenY) - b.OriginY
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
		return 0, 0, false
	}

	col = int(x / b.CellSize)
	row = int(y / b.CellSize)

	// 边界检查（防止浮点数计算误差导致的越界）
	if col >= b.Cols {
		col = b.Cols - 1
	}
	if row >= b.Rows {
		row = b.Rows - 1
	}
	return row, col, true
}

// CellOrigin 返回格子左上角的屏幕坐标
func (b BoardLayout) CellOrigin(row, col int) (x, y float64) {
	return b.OriginX + float64(col)*b.CellSize, b.OriginY + float64(row)*b.CellSize
}

// CellCenter 返回格子中心的屏幕坐标
func (b BoardLayout) CellCenter(row, col int) (x, y float64) {
	x, y = b.CellOrigin(row, col)
	return x + b.CellSize/2, y + b.CellSize/2
}

// BoardToScreenX 把战场内的横坐标（0 为基地一侧）转换为屏幕 X
func (b BoardLayout) BoardToScreenX(boardX float64) float64 {
	return b.OriginX + boardX
}
