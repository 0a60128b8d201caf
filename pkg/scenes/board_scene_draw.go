package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 配色
var (
	caveColor      = color.RGBA{R: 28, G: 24, B: 36, A: 255}
	barColor       = color.RGBA{R: 44, G: 38, B: 56, A: 255}
	textColor      = color.RGBA{R: 236, G: 228, B: 210, A: 255}
	dimTextColor   = color.RGBA{R: 120, G: 114, B: 126, A: 255}
	hoverColor     = color.RGBA{R: 255, G: 230, B: 140, A: 255}
	markColor      = color.RGBA{R: 214, G: 64, B: 48, A: 255}
	buttonColor    = color.RGBA{R: 96, G: 72, B: 48, A: 255}
	overlayColor   = color.RGBA{A: 160}
	panelColor     = color.RGBA{R: 58, G: 50, B: 70, A: 255}
	panelEdgeColor = color.RGBA{R: 180, G: 150, B: 96, A: 255}

	// 未挖开格子与挖开地面，按 FloorVariant 区分
	coverColors = [engine.FloorVariants]color.RGBA{
		{R: 86, G: 74, B: 62, A: 255},
		{R: 92, G: 78, B: 64, A: 255},
		{R: 80, G: 70, B: 60, A: 255},
	}
	floorColors = [engine.FloorVariants]color.RGBA{
		{R: 150, G: 136, B: 112, A: 255},
		{R: 156, G: 140, B: 116, A: 255},
		{R: 144, G: 132, B: 110, A: 255},
	}
	eggColors = [engine.EggVariants]color.RGBA{
		{R: 226, G: 214, B: 180, A: 255},
		{R: 206, G: 222, B: 190, A: 255},
		{R: 220, G: 196, B: 206, A: 255},
	}
	dragonColors = [engine.DragonVariants]color.RGBA{
		{R: 200, G: 40, B: 32, A: 255},
		{R: 60, G: 140, B: 60, A: 255},
		{R: 60, G: 90, B: 190, A: 255},
		{R: 150, G: 70, B: 170, A: 255},
	}
	// 数字 1..8 的颜色
	countColors = [engine.MaxAdjacency + 1]color.RGBA{
		{},
		{R: 40, G: 70, B: 200, A: 255},
		{R: 30, G: 120, B: 40, A: 255},
		{R: 190, G: 30, B: 30, A: 255},
		{R: 30, G: 30, B: 120, A: 255},
		{R: 120, G: 30, B: 30, A: 255},
		{R: 30, G: 120, B: 120, A: 255},
		{R: 20, G: 20, B: 20, A: 255},
		{R: 90, G: 90, B: 90, A: 255},
	}
)

// Draw 绘制控制栏、棋盘和战报
func (s *BoardScene) Draw(screen *ebiten.Image) {
	screen.Fill(caveColor)
	s.drawControlBar(screen)
	s.drawBoard(screen)
	s.drawSummary(screen)
	if s.controller.ResultsVisible() {
		s.drawResults(screen)
	}
}

func (s *BoardScene) drawControlBar(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.ControlBarHeight, barColor, false)
	s.drawText(screen, settingsLine(*s.controller.Settings()), s.fonts.body, 12, 8, textColor, text.AlignStart)

	if s.controller.Outcome().Terminal() && !s.controller.ResultsVisible() {
		s.drawButton(screen, playAgainButton, "Play Again")
		return
	}
	s.drawText(screen, s.controller.FlagReadout(), s.fonts.body,
		config.GameWindowWidth/2, config.StatusLineY-8, textColor, text.AlignCenter)
}

func (s *BoardScene) drawBoard(screen *ebiten.Image) {
	board := s.controller.Board()
	if board == nil {
		return
	}
	grid := s.grid()
	outcome := s.controller.Outcome()

	vector.StrokeRect(screen,
		float32(grid.StartX-config.BoardBorder), float32(grid.StartY-config.BoardBorder),
		float32(float64(grid.Cols)*grid.TileSize+2*config.BoardBorder),
		float32(float64(grid.Rows)*grid.TileSize+2*config.BoardBorder),
		config.BoardBorder, panelEdgeColor, false)

	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			tile, _ := board.Tile(row, col)
			x, y := grid.TileOrigin(row, col)
			s.drawTile(screen, tile, lookOf(tile, outcome), x, y, grid.TileSize)
		}
	}

	if s.hoverOK {
		if tile, ok := board.Tile(s.hoverRow, s.hoverCol); ok && hoverable(tile, outcome) {
			x, y := grid.TileOrigin(s.hoverRow, s.hoverCol)
			vector.StrokeRect(screen, float32(x+1), float32(y+1),
				float32(grid.TileSize-2), float32(grid.TileSize-2), 2, hoverColor, false)
		}
	}
}

func (s *BoardScene) drawTile(screen *ebiten.Image, tile engine.Tile, look tileLook, x, y, size float64) {
	fx, fy, fs := float32(x), float32(y), float32(size)
	cx, cy := fx+fs/2, fy+fs/2

	switch look {
	case lookFloor, lookNumber:
		vector.DrawFilledRect(screen, fx, fy, fs, fs, floorColors[tile.FloorVariant], false)
	default:
		vector.DrawFilledRect(screen, fx, fy, fs, fs, coverColors[tile.FloorVariant], false)
	}
	vector.StrokeRect(screen, fx, fy, fs, fs, 1, caveColor, false)

	switch look {
	case lookHidden:
		vector.DrawFilledCircle(screen, cx, cy, fs*0.28, eggColors[tile.EggVariant], true)
	case lookMarked:
		vector.DrawFilledCircle(screen, cx, cy, fs*0.28, eggColors[tile.EggVariant], true)
		vector.StrokeLine(screen, cx-fs*0.2, cy-fs*0.2, cx+fs*0.2, cy+fs*0.2, 3, markColor, true)
		vector.StrokeLine(screen, cx-fs*0.2, cy+fs*0.2, cx+fs*0.2, cy-fs*0.2, 3, markColor, true)
	case lookDragon:
		vector.DrawFilledCircle(screen, cx, cy, fs*0.36, dragonColors[tile.DragonVariant], true)
		vector.DrawFilledCircle(screen, cx-fs*0.12, cy-fs*0.08, fs*0.05, textColor, true)
		vector.DrawFilledCircle(screen, cx+fs*0.12, cy-fs*0.08, fs*0.05, textColor, true)
	case lookNumber:
		s.drawText(screen, fmt.Sprint(tile.Count), s.fonts.count,
			x+size/2, y+(size-countFontSize)/2-2, countColors[tile.Count], text.AlignCenter)
	}
}

func (s *BoardScene) drawSummary(screen *ebiten.Image) {
	s.drawText(screen, s.hint, s.fonts.body, config.GameWindowWidth/2, config.GameWindowHeight-46, dimTextColor, text.AlignCenter)
	if !s.summaryOK {
		return
	}
	line := fmt.Sprintf("Played %d   Won %d   Perfect %d", s.summary.Played, s.summary.Won, s.summary.Perfect)
	s.drawText(screen, line, s.fonts.body, config.GameWindowWidth/2, config.GameWindowHeight-24, dimTextColor, text.AlignCenter)
}

func (s *BoardScene) drawResults(screen *ebiten.Image) {
	results := s.controller.Results()
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, overlayColor, false)

	x, y, w, h := config.GetDialogBounds()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, panelEdgeColor, false)

	s.drawText(screen, reportTitle(results), s.fonts.title, x+w/2, y+14, textColor, text.AlignCenter)
	vector.StrokeLine(screen, float32(x+24), float32(y+48), float32(x+w-24), float32(y+48), 1, panelEdgeColor, false)

	lines := reportLines(results)
	tallyRows := engine.MaxAdjacency / 2
	for i, line := range lines {
		clr := textColor
		if line.Dim {
			clr = dimTextColor
		}
		var lx, ly float64
		if i < engine.MaxAdjacency {
			// 数字统计分两列
			lx = x + 60 + float64(i/tallyRows)*(w/2-20)
			ly = y + 60 + float64(i%tallyRows)*26
		} else {
			lx = x + 40
			ly = y + 60 + float64(tallyRows)*26 + 8 + float64(i-engine.MaxAdjacency)*26
		}
		s.drawText(screen, line.Text, s.fonts.body, lx, ly, clr, text.AlignStart)
	}

	s.drawButton(screen, dismissButton, "Very Well")
}

func (s *BoardScene) drawButton(screen *ebiten.Image, r rect, label string) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), buttonColor, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, panelEdgeColor, false)
	s.drawText(screen, label, s.fonts.body, r.X+r.W/2, r.Y+(r.H-bodyFontSize)/2-1, textColor, text.AlignCenter)
}

// drawText 绘制文本，(x, y) 为对齐点的顶部
func (s *BoardScene) drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, str, face, op)
}
