package config

// Layout constants for the desktop window.
// The window is sized for the largest board (16x10); smaller boards are
// centred horizontally below the control bar.
const (
	// GameWindowWidth is the logical screen width.
	GameWindowWidth = 800

	// GameWindowHeight is the logical screen height.
	GameWindowHeight = 600

	// TileSize is the edge length of one tile in pixels.
	TileSize = 48.0

	// BoardBorder is the frame drawn around the board.
	BoardBorder = 2.0

	// ControlBarHeight is the strip at the top showing settings and key hints.
	ControlBarHeight = 64.0

	// StatusLineY is where the "eggs marked" readout is printed.
	StatusLineY = 44

	// BoardTopY is the screen Y of the first tile row.
	BoardTopY = ControlBarHeight + 8.0

	// DialogWidth and DialogHeight size the endgame report.
	DialogWidth  = 360.0
	DialogHeight = 340.0
)

// GetBoardBounds returns the screen rectangle covered by a board of the given
// size: startX, startY, endX, endY.
func GetBoardBounds(cols, rows int) (float64, float64, float64, float64) {
	w := float64(cols) * TileSize
	h := float64(rows) * TileSize
	startX := (GameWindowWidth - w) / 2
	startY := BoardTopY
	return startX, startY, startX + w, startY + h
}

// GetDialogBounds returns the endgame report rectangle, centred on screen.
func GetDialogBounds() (x, y, w, h float64) {
	x = (GameWindowWidth - DialogWidth) / 2
	y = (GameWindowHeight - DialogHeight) / 2
	return x, y, DialogWidth, DialogHeight
}
