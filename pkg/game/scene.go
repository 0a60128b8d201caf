package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 是游戏的一个画面，拥有独立的更新与渲染逻辑
type Scene interface {
	// Update 推进场景 deltaTime 秒
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，场景在程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 移动端进入后台
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
