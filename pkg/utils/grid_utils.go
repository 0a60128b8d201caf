package utils

// BoardGrid 描述棋盘在屏幕上的位置
// 行列数随玩家设置变化，因此不再使用固定常量
type BoardGrid struct {
	StartX, StartY float64 // 棋盘左上角屏幕坐标
	TileSize       float64 // 每格边长
	Cols, Rows     int     // 列数、行数
}

// ScreenToTile 将屏幕坐标转换为棋盘格子坐标
// 参数:
//   - x, y: 鼠标或触摸的屏幕坐标
//
// 返回:
//   - row, col: 行列索引
//   - isValid: 是否落在棋盘内
func (g BoardGrid) ScreenToTile(x, y int) (row, col int, isValid bool) {
	if g.TileSize <= 0 || g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}

	fx := float64(x)
	fy := float64(y)
	endX := g.StartX + float64(g.Cols)*g.TileSize
	endY := g.StartY + float64(g.Rows)*g.TileSize
	if fx < g.StartX || fx >= endX || fy < g.StartY || fy >= endY {
		return 0, 0, false
	}

	col = int((fx - g.StartX) / g.TileSize)
	row = int((fy - g.StartY) / g.TileSize)

	// 边界检查（防止浮点数计算误差导致的越界）
	if col >= g.Cols {
		col = g.Cols - 1
	}
	if row >= g.Rows {
		row = g.Rows - 1
	}
	return row, col, true
}

// TileOrigin 返回格子左上角的屏幕坐标
func (g BoardGrid) TileOrigin(row, col int) (x, y float64) {
	return g.StartX + float64(col)*g.TileSize, g.StartY + float64(row)*g.TileSize
}

// TileCenter 返回格子中心的屏幕坐标
func (g BoardGrid) TileCenter(row, col int) (x, y float64) {
	x, y = g.TileOrigin(row, col)
	return x + g.TileSize/2, y + g.TileSize/2
}
