package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// lifecycleScene 记录 Enter/Exit/SaveOnExit 调用
type lifecycleScene struct {
	MockScene
	enters, exits, saves int
	saveResult           bool
}

func (l *lifecycleScene) Enter()           { l.enters++ }
func (l *lifecycleScene) Exit()            { l.exits++ }
func (l *lifecycleScene) SaveOnExit() bool { l.saves++; return l.saveResult }

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.GetCurrentScene() != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle a nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(80, 60))
	if !sm.Shutdown() {
		t.Error("Shutdown() without a scene should report success")
	}
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerLifecycle 验证切换场景时的 Enter/Exit 调用
func TestSceneManagerLifecycle(t *testing.T) {
	sm := NewSceneManager()
	first := &lifecycleScene{}
	second := &lifecycleScene{saveResult: true}

	sm.SwitchTo(first)
	if first.enters != 1 {
		t.Errorf("first.enters = %d, want 1", first.enters)
	}

	// 切换到同一场景是空操作
	sm.SwitchTo(first)
	if first.enters != 1 || first.exits != 0 {
		t.Errorf("re-switching to the same scene called Enter/Exit: %d/%d", first.enters, first.exits)
	}

	sm.SwitchTo(second)
	if first.exits != 1 || second.enters != 1 {
		t.Errorf("switch: first.exits=%d second.enters=%d, want 1/1", first.exits, second.enters)
	}

	if !sm.Shutdown() {
		t.Error("Shutdown() = false, want true")
	}
	if second.saves != 1 || second.exits != 1 {
		t.Errorf("Shutdown: saves=%d exits=%d, want 1/1", second.saves, second.exits)
	}
}
