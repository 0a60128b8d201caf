package game

import (
	"github.com/decker502/dragonsweeper/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
)

var sceneLog = logger.For("SceneManager")

// SceneManager 保持唯一的活动场景，并把 Update 与 Draw 转发给它
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建没有活动场景的管理器，用 SwitchTo 设置场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 把 scene 设为活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// SaveOnExit 如果当前场景实现了 Saveable，则调用其 SaveOnExit
//
// 返回：
//   - bool: 保存成功或无需保存时返回 true
func (sm *SceneManager) SaveOnExit() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		sceneLog.Warn("scene failed to save on exit")
		return false
	}
	return true
}

// Update 更新活动场景（如有）
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制活动场景（如有）
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
