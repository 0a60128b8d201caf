package scenes

import (
	"fmt"

	"github.com/decker502/dragonsweeper/pkg/engine"
	"github.com/decker502/dragonsweeper/pkg/game"
)

// tileLook 格子的显示方式
type tileLook int

const (
	lookHidden tileLook = iota // 未挖开的蛋
	lookMarked                 // 已标记
	lookDragon                 // 失败后现身的龙
	lookFloor                  // 挖开的空地
	lookNumber                 // 挖开且有数字
)

// lookOf 根据格子与对局状态决定显示方式
// 失败时所有龙现身，标记不再显示
func lookOf(t engine.Tile, outcome engine.Outcome) tileLook {
	if t.Revealed {
		if t.Count > 0 {
			return lookNumber
		}
		return lookFloor
	}
	if outcome == engine.Defeat {
		if t.Mine {
			return lookDragon
		}
		return lookHidden
	}
	if t.Flagged {
		return lookMarked
	}
	return lookHidden
}

// hoverable 只有进行中的未挖开格子响应悬停
func hoverable(t engine.Tile, outcome engine.Outcome) bool {
	return outcome == engine.InProgress && !t.Revealed
}

// reportLine 战报中的一行，Dim 表示灰显
type reportLine struct {
	Text string
	Dim  bool
}

// reportTitle 战报标题
func reportTitle(res *engine.Results) string {
	if res != nil && res.Silent {
		return "Endgame Report: Victory"
	}
	return "Endgame Report: Defeat"
}

// reportLines 生成战报内容：1..8 每种数字的数量（为 0 时灰显），然后是胜负与标记情况
func reportLines(res *engine.Results) []reportLine {
	if res == nil {
		return nil
	}
	lines := make([]reportLine, 0, engine.MaxAdjacency+2)
	for n := 1; n <= engine.MaxAdjacency; n++ {
		count := res.Tally[n]
		lines = append(lines, reportLine{
			Text: fmt.Sprintf("%d  x %d", n, count),
			Dim:  count == 0,
		})
	}

	if res.Silent {
		lines = append(lines, reportLine{Text: "eggs didn't hatch"})
	} else {
		lines = append(lines, reportLine{Text: "dragons hatched", Dim: true})
	}
	if res.Perfect {
		lines = append(lines, reportLine{Text: "all eggs marked"})
	} else {
		lines = append(lines, reportLine{Text: "not every living egg was marked", Dim: true})
	}
	return lines
}

// boardKey 修改棋盘设置的按键
type boardKey int

const (
	keyWidthDown boardKey = iota
	keyWidthUp
	keyHeightDown
	keyHeightUp
	keyMinesDown
	keyMinesUp
)

// adjustedBoard 返回按键作用后的棋盘设置，蛋占比每次调整 1%
func adjustedBoard(s game.GameSettings, key boardKey) (width, height int, minesPercentage float64) {
	width, height = s.Width, s.Height
	percent := int(s.MinesPercentage*100 + 0.5)
	switch key {
	case keyWidthDown:
		width--
	case keyWidthUp:
		width++
	case keyHeightDown:
		height--
	case keyHeightUp:
		height++
	case keyMinesDown:
		percent--
	case keyMinesUp:
		percent++
	}
	return width, height, float64(percent) / 100
}

// volumeStep 音量按键每次调整 5%
const volumeStep = 5

// adjustedVolume 返回调高或调低一档后的音量，按整数百分比取整并限制在 0 ~ 1
func adjustedVolume(volume float64, up bool) float64 {
	percent := int(volume*100 + 0.5)
	if up {
		percent += volumeStep
	} else {
		percent -= volumeStep
	}
	percent = max(0, min(100, percent))
	return float64(percent) / 100
}

// settingsLine 控制栏第一行：当前设置
func settingsLine(s game.GameSettings) string {
	return fmt.Sprintf("W %d [ ]  H %d - =  Eggs %d%% , .  Sound %s %d%% (S 7 8)  Music %s %d%% (M 9 0)",
		s.Width, s.Height, int(s.MinesPercentage*100+0.5),
		onOff(s.SoundEnabled), int(s.SoundVolume*100+0.5),
		onOff(s.MusicEnabled), int(s.MusicVolume*100+0.5))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// controlsHint 操作提示，触摸设备与桌面不同
func controlsHint(mobile bool) string {
	if mobile {
		return "Tap to dig, hold to mark an egg"
	}
	return "Click or Space to dig, right-click or Shift+Space to mark   N new game   F11 fullscreen"
}
