package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// 旧场景实现 Lifecycle 时调用其 Exit()，新场景实现 Lifecycle 时调用其 Enter()。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if lc, ok := sm.currentScene.(Lifecycle); ok {
		lc.Exit()
	}
	sm.currentScene = scene
	if lc, ok := scene.(Lifecycle); ok {
		lc.Enter()
	}
	log.Printf("[SceneManager] Switched scene: %T", scene)
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Shutdown 退出当前场景（窗口关闭时调用）
//
// 返回：
//   - bool: 当前场景实现 Saveable 时返回其 SaveOnExit() 结果，否则返回 true
func (sm *SceneManager) Shutdown() bool {
	saved := true
	if s, ok := sm.currentScene.(Saveable); ok {
		saved = s.SaveOnExit()
	}
	if lc, ok := sm.currentScene.(Lifecycle); ok {
		lc.Exit()
	}
	return saved
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
