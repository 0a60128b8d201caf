package scenes

import (
	"context"
	"time"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/game"
	"github.com/decker502/dragonsweeper/pkg/history"
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/decker502/dragonsweeper/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

var boardLog = logger.For("BoardScene")

// SummaryReader 提供历史战绩汇总
type SummaryReader interface {
	Summary(ctx context.Context) (history.Summary, error)
}

// rect 屏幕矩形
type rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内
func (r rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

// 按钮位置
var (
	playAgainButton = rect{X: config.GameWindowWidth/2 - 70, Y: config.StatusLineY - 10, W: 140, H: 28}
	dismissButton   = func() rect {
		x, y, w, h := config.GetDialogBounds()
		return rect{X: x + (w-140)/2, Y: y + h - 48, W: 140, H: 32}
	}()
)

// settingsKeys 修改棋盘设置的按键映射
var settingsKeys = map[ebiten.Key]boardKey{
	ebiten.KeyBracketLeft:  keyWidthDown,
	ebiten.KeyBracketRight: keyWidthUp,
	ebiten.KeyMinus:        keyHeightDown,
	ebiten.KeyEqual:        keyHeightUp,
	ebiten.KeyComma:        keyMinesDown,
	ebiten.KeyPeriod:       keyMinesUp,
}

// BoardScene 是唯一的游戏场景：控制栏、棋盘与战报
type BoardScene struct {
	controller *game.Controller
	summaries  SummaryReader // 可为 nil
	fonts      *sceneFonts
	hint       string

	tracker utils.PressTracker

	// 悬停格子，键盘操作作用于此格
	hoverRow, hoverCol int
	hoverOK            bool
	lastPointerX       int
	lastPointerY       int

	summary   history.Summary
	summaryOK bool
}

// NewBoardScene 创建棋盘场景
//
// 参数：
//   - controller: 已开局的控制器
//   - summaries: 历史战绩来源，可为 nil
//
// 返回：
//   - *BoardScene: 场景实例
//   - error: 字体加载失败
func NewBoardScene(controller *game.Controller, summaries SummaryReader) (*BoardScene, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	s := &BoardScene{
		controller: controller,
		summaries:  summaries,
		fonts:      fonts,
		hint:       controlsHint(utils.IsMobile()),
	}
	s.refreshSummary()
	return s, nil
}

// Update 处理输入
func (s *BoardScene) Update(deltaTime float64) {
	s.handleAudioKeys()

	switch {
	case s.controller.ResultsVisible():
		s.updateResults()
	case s.controller.Outcome().Terminal():
		s.handleSettingsKeys()
		s.updateGameOver()
	default:
		s.handleSettingsKeys()
		s.updatePlaying(deltaTime)
	}
}

func (s *BoardScene) handleAudioKeys() {
	settings := s.controller.Settings()
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.controller.SetSoundEnabled(!settings.SoundEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.controller.SetMusicEnabled(!settings.MusicEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key7) || inpututil.IsKeyJustPressed(ebiten.Key8) {
		s.controller.SetSoundVolume(adjustedVolume(settings.SoundVolume, inpututil.IsKeyJustPressed(ebiten.Key8)))
	}
	if inpututil.IsKeyJustPressed(ebiten.Key9) || inpututil.IsKeyJustPressed(ebiten.Key0) {
		s.controller.SetMusicVolume(adjustedVolume(settings.MusicVolume, inpututil.IsKeyJustPressed(ebiten.Key0)))
	}
}

func (s *BoardScene) handleSettingsKeys() {
	for key, action := range settingsKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		w, h, pct := adjustedBoard(*s.controller.Settings(), action)
		if _, err := s.controller.ChangeBoard(w, h, pct); err != nil {
			boardLog.WithError(err).Error("failed to apply board settings")
		}
		s.hoverOK = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.newGame()
	}
}

// updateResults 战报显示期间只响应关闭
func (s *BoardScene) updateResults() {
	dismiss := inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if !dismiss && utils.IsPointerJustPressed() {
		x, y := utils.GetPointerPosition()
		dismiss = dismissButton.Contains(x, y)
	}
	if dismiss && s.controller.DismissResults() {
		s.refreshSummary()
	}
}

func (s *BoardScene) updateGameOver() {
	restart := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if !restart && utils.IsPointerJustPressed() {
		x, y := utils.GetPointerPosition()
		restart = playAgainButton.Contains(x, y)
	}
	if restart {
		s.newGame()
	}
}

func (s *BoardScene) updatePlaying(deltaTime float64) {
	grid := s.grid()
	board := s.controller.Board()
	if board == nil {
		return
	}

	s.updateHover(grid, board)

	action, x, y := utils.ReadPointerAction(&s.tracker, deltaTime)
	if action != utils.ActionNone {
		if row, col, ok := grid.ScreenToTile(x, y); ok {
			s.apply(action, row, col)
			return
		}
	}

	if action := utils.ReadKeyboardAction(); action != utils.ActionNone && s.hoverOK {
		s.apply(action, s.hoverRow, s.hoverCol)
	}
}

// updateHover 指针移动时悬停跟随指针，方向键移动悬停格子
func (s *BoardScene) updateHover(grid utils.BoardGrid, board *engine.Board) {
	x, y := utils.GetPointerPosition()
	if x != s.lastPointerX || y != s.lastPointerY {
		s.lastPointerX, s.lastPointerY = x, y
		s.hoverRow, s.hoverCol, s.hoverOK = grid.ScreenToTile(x, y)
	}

	dr, dc := 0, 0
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		dr = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		dr = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		dc = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		dc = 1
	}
	if dr != 0 || dc != 0 {
		if !s.hoverOK {
			s.hoverRow, s.hoverCol, s.hoverOK = 0, 0, true
		} else {
			s.hoverRow = clampIndex(s.hoverRow+dr, board.Height())
			s.hoverCol = clampIndex(s.hoverCol+dc, board.Width())
		}
	}
	if s.hoverOK && !board.InBounds(s.hoverRow, s.hoverCol) {
		s.hoverOK = false
	}
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (s *BoardScene) apply(action utils.TileAction, row, col int) {
	switch action {
	case utils.ActionDig:
		res := s.controller.Dig(row, col)
		boardLog.WithFields(logrus.Fields{"row": row, "col": col, "event": res.Event.String()}).Debug("dig")
	case utils.ActionFlag:
		ev := s.controller.ToggleFlag(row, col)
		boardLog.WithFields(logrus.Fields{"row": row, "col": col, "event": ev.String()}).Debug("flag")
	}
}

func (s *BoardScene) newGame() {
	if err := s.controller.NewGame(); err != nil {
		boardLog.WithError(err).Error("failed to start new game")
	}
	s.tracker = utils.PressTracker{}
}

// grid 返回当前棋盘的屏幕布局
func (s *BoardScene) grid() utils.BoardGrid {
	settings := s.controller.Settings()
	cols, rows := settings.Width, settings.Height
	if board := s.controller.Board(); board != nil {
		cols, rows = board.Width(), board.Height()
	}
	startX, startY, _, _ := config.GetBoardBounds(cols, rows)
	return utils.BoardGrid{StartX: startX, StartY: startY, TileSize: config.TileSize, Cols: cols, Rows: rows}
}

func (s *BoardScene) refreshSummary() {
	if s.summaries == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	summary, err := s.summaries.Summary(ctx)
	if err != nil {
		boardLog.WithError(err).Warn("failed to read history summary")
		return
	}
	s.summary = summary
	s.summaryOK = true
}

// SaveOnExit 保存玩家设置
func (s *BoardScene) SaveOnExit() bool {
	if err := s.controller.SettingsManager().Save(); err != nil {
		boardLog.WithError(err).Error("failed to save settings on exit")
		return false
	}
	return true
}
