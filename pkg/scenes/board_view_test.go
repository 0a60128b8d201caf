package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/dragonsweeper/pkg/config"
	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/game"
)

// TestLookOf 测试格子显示方式
func TestLookOf(t *testing.T) {
	tests := []struct {
		name    string
		tile    engine.Tile
		outcome engine.Outcome
		want    tileLook
	}{
		{"进行中未挖开", engine.Tile{}, engine.InProgress, lookHidden},
		{"进行中已标记", engine.Tile{Flagged: true}, engine.InProgress, lookMarked},
		{"挖开空地", engine.Tile{Revealed: true}, engine.InProgress, lookFloor},
		{"挖开数字", engine.Tile{Revealed: true, Count: 3}, engine.InProgress, lookNumber},
		{"失败时龙现身", engine.Tile{Mine: true}, engine.Defeat, lookDragon},
		{"失败时标记的龙也现身", engine.Tile{Mine: true, Flagged: true}, engine.Defeat, lookDragon},
		{"失败时错误标记被隐藏", engine.Tile{Flagged: true}, engine.Defeat, lookHidden},
		{"胜利时标记保留", engine.Tile{Mine: true, Flagged: true}, engine.Victory, lookMarked},
		{"胜利时未标记的蛋不现身", engine.Tile{Mine: true}, engine.Victory, lookHidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lookOf(tt.tile, tt.outcome); got != tt.want {
				t.Errorf("lookOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestHoverable 只有进行中的未挖开格子响应悬停
func TestHoverable(t *testing.T) {
	if !hoverable(engine.Tile{}, engine.InProgress) {
		t.Error("hidden tile not hoverable while playing")
	}
	if !hoverable(engine.Tile{Flagged: true}, engine.InProgress) {
		t.Error("flagged tile not hoverable while playing")
	}
	if hoverable(engine.Tile{Revealed: true}, engine.InProgress) {
		t.Error("revealed tile hoverable")
	}
	if hoverable(engine.Tile{}, engine.Defeat) {
		t.Error("tile hoverable after the game ended")
	}
}

// TestReportLines 测试战报内容
func TestReportLines(t *testing.T) {
	res := &engine.Results{
		Tally:   map[int]int{1: 4, 2: 2, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 8: 0},
		Silent:  true,
		Perfect: false,
	}

	if got := reportTitle(res); got != "Endgame Report: Victory" {
		t.Errorf("title = %q", got)
	}
	lines := reportLines(res)
	if len(lines) != engine.MaxAdjacency+2 {
		t.Fatalf("got %d lines, want %d", len(lines), engine.MaxAdjacency+2)
	}
	if lines[0].Text != "1  x 4" || lines[0].Dim {
		t.Errorf("line 1 = %+v", lines[0])
	}
	if !lines[2].Dim {
		t.Error("zero tally row not dimmed")
	}
	if lines[8].Text != "eggs didn't hatch" {
		t.Errorf("silent line = %q", lines[8].Text)
	}
	if lines[9].Text != "not every living egg was marked" || !lines[9].Dim {
		t.Errorf("perfect line = %+v", lines[9])
	}

	defeat := &engine.Results{Tally: map[int]int{}, Perfect: true}
	if got := reportTitle(defeat); got != "Endgame Report: Defeat" {
		t.Errorf("defeat title = %q", got)
	}
	lines = reportLines(defeat)
	if lines[8].Text != "dragons hatched" || lines[9].Text != "all eggs marked" {
		t.Errorf("defeat lines = %+v", lines[8:])
	}

	if reportLines(nil) != nil {
		t.Error("nil results produced lines")
	}
}

// TestAdjustedBoard 测试设置按键
func TestAdjustedBoard(t *testing.T) {
	s := game.GameSettings{Width: 12, Height: 8, MinesPercentage: 0.2}

	tests := []struct {
		key   boardKey
		wantW int
		wantH int
		wantP float64
	}{
		{keyWidthDown, 11, 8, 0.2},
		{keyWidthUp, 13, 8, 0.2},
		{keyHeightDown, 12, 7, 0.2},
		{keyHeightUp, 12, 9, 0.2},
		{keyMinesDown, 12, 8, 0.19},
		{keyMinesUp, 12, 8, 0.21},
	}
	for _, tt := range tests {
		w, h, p := adjustedBoard(s, tt.key)
		if w != tt.wantW || h != tt.wantH || p != tt.wantP {
			t.Errorf("key %d: got %dx%d@%v, want %dx%d@%v", tt.key, w, h, p, tt.wantW, tt.wantH, tt.wantP)
		}
	}
}

// TestAdjustedBoardThroughController 超出范围的调整被设置管理器校正
func TestAdjustedBoardThroughController(t *testing.T) {
	c := game.NewController(game.NewSettingsManager(nil, nil), nil, nil, 1)
	if err := c.NewGame(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		w, h, p := adjustedBoard(*c.Settings(), keyWidthUp)
		if _, err := c.ChangeBoard(w, h, p); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Settings().Width; got != engine.MaxWidth {
		t.Errorf("width = %d, want %d", got, engine.MaxWidth)
	}
	if got := c.Board().Width(); got != engine.MaxWidth {
		t.Errorf("board width = %d, want %d", got, engine.MaxWidth)
	}
}

func TestSettingsLine(t *testing.T) {
	line := settingsLine(game.GameSettings{Width: 12, Height: 8, MinesPercentage: 0.2, SoundEnabled: true, SoundVolume: 0.15, MusicVolume: 0.5})
	for _, want := range []string{"W 12 [ ]", "H 8 - =", "Eggs 20%", "Sound on 15%", "Music off 50%"} {
		if !strings.Contains(line, want) {
			t.Errorf("settings line %q missing %q", line, want)
		}
	}
}

func TestAdjustedVolume(t *testing.T) {
	tests := []struct {
		in   float64
		up   bool
		want float64
	}{
		{0.15, true, 0.2},
		{0.15, false, 0.1},
		{0.98, true, 1},
		{0.03, false, 0},
		{0, false, 0},
	}
	for _, tt := range tests {
		if got := adjustedVolume(tt.in, tt.up); got != tt.want {
			t.Errorf("adjustedVolume(%v, %v) = %v, want %v", tt.in, tt.up, got, tt.want)
		}
	}
}

// TestButtonsOnScreen 按钮在窗口内，关闭按钮在战报内
func TestButtonsOnScreen(t *testing.T) {
	window := rect{W: config.GameWindowWidth, H: config.GameWindowHeight}
	for _, b := range []rect{playAgainButton, dismissButton} {
		if !window.Contains(int(b.X), int(b.Y)) || !window.Contains(int(b.X+b.W)-1, int(b.Y+b.H)-1) {
			t.Errorf("button %+v outside window", b)
		}
	}

	x, y, w, h := config.GetDialogBounds()
	dialog := rect{X: x, Y: y, W: w, H: h}
	if !dialog.Contains(int(dismissButton.X), int(dismissButton.Y)) ||
		!dialog.Contains(int(dismissButton.X+dismissButton.W)-1, int(dismissButton.Y+dismissButton.H)-1) {
		t.Errorf("dismiss button %+v outside dialog %+v", dismissButton, dialog)
	}
	if playAgainButton.Y+playAgainButton.H > config.ControlBarHeight {
		t.Errorf("play again button %+v overlaps the board", playAgainButton)
	}
}

func TestControlsHint(t *testing.T) {
	if !strings.Contains(controlsHint(true), "hold to mark") {
		t.Errorf("mobile hint = %q", controlsHint(true))
	}
	if !strings.Contains(controlsHint(false), "right-click") {
		t.Errorf("desktop hint = %q", controlsHint(false))
	}
}
