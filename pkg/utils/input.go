// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TileAction 玩家对格子的操作
type TileAction int

const (
	// ActionNone 无操作
	ActionNone TileAction = iota
	// ActionDig 挖开
	ActionDig
	// ActionFlag 标记/取消标记
	ActionFlag
)

// LongPressSeconds 触摸长按多久视为标记
const LongPressSeconds = 0.4

// PressTracker 区分触摸的轻点（挖开）与长按（标记）
// 长按在达到阈值时立即触发，松开时不再触发挖开
type PressTracker struct {
	pressing bool
	fired    bool
	held     float64
	x, y     int
}

// Update 推进一帧
//
// 参数：
//   - pressed: 当前是否按下
//   - x, y: 当前指针位置
//   - dt: 帧间隔（秒）
//
// 返回：
//   - TileAction: 本帧触发的操作
//   - int, int: 操作位置
func (p *PressTracker) Update(pressed bool, x, y int, dt float64) (TileAction, int, int) {
	if pressed {
		if !p.pressing {
			*p = PressTracker{pressing: true, x: x, y: y}
			return ActionNone, 0, 0
		}
		p.x, p.y = x, y
		p.held += dt
		if !p.fired && p.held >= LongPressSeconds {
			p.fired = true
			return ActionFlag, p.x, p.y
		}
		return ActionNone, 0, 0
	}

	if p.pressing {
		p.pressing = false
		if !p.fired {
			return ActionDig, p.x, p.y
		}
	}
	return ActionNone, 0, 0
}

// ReadPointerAction 读取本帧的鼠标或触摸操作
// 鼠标左键挖开、右键标记；触摸轻点挖开、长按标记
func ReadPointerAction(tracker *PressTracker, dt float64) (TileAction, int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 || tracker.pressing {
		x, y := tracker.x, tracker.y
		if len(touchIDs) > 0 {
			x, y = ebiten.TouchPosition(touchIDs[0])
		}
		return tracker.Update(len(touchIDs) > 0, x, y, dt)
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		return ActionDig, x, y
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		return ActionFlag, x, y
	}
	return ActionNone, x, y
}

// ReadKeyboardAction 读取键盘操作：Space/Enter 挖开，Shift+Space/Enter 标记
func ReadKeyboardAction() TileAction {
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) && !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return ActionNone
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		return ActionFlag
	}
	return ActionDig
}

// IsPointerJustPressed 检测鼠标左键或触摸是否刚刚按下
func IsPointerJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
