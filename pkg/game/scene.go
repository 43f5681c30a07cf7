package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the overlay host (e.g. the page with the menu closed or open).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Lifecycle 是一个可选接口，用于在场景切换时挂载/卸载资源
//
// 实现此接口的场景会在以下时机被调用：
//   - Enter()：成为当前场景时
//   - Exit()：被替换或程序退出时
//
// Exit 必须可以安全地重复调用。
type Lifecycle interface {
	Enter()
	Exit()
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在窗口关闭时被调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
