// Package app 提供叠加层应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/inktrail/pkg/config"
	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/frame"
	"github.com/decker502/inktrail/pkg/game"
	"github.com/decker502/inktrail/pkg/scenes"
	"github.com/decker502/inktrail/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出（包括 gg 的 slog 日志）
	Verbose bool
	// ConfigPath 磁盘上的 trail.yaml，为空时使用嵌入的默认配置
	ConfigPath string
	// Policy 覆盖已保存的淡出策略（退出时随设置一起保存），为空时使用已保存的设置
	Policy string
	// AppName gdata 存储目录名，为空时使用 "inktrail"
	AppName string
}

// App 叠加层应用的核心包装器，实现 ebiten.Game 接口
//
// 每个 tick：Update 把光标位置和按键转换为事件总线上的信号；
// Layout 把窗口尺寸作为视口尺寸发布；Draw 推进帧循环（相当于一次显示刷新）后绘制场景。
type App struct {
	trailConfig  *config.TrailConfig
	bus          *events.Bus
	loop         *frame.Loop
	cursor       *events.CursorTracker
	viewport     *events.ViewportTracker
	sceneManager *game.SceneManager
	menu         *scenes.MenuScene
	verbose      bool
	lastUpdate   time.Time
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	configureLogging(cfg.Verbose)

	trailConfig, err := config.ResolveTrailConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("轨迹配置加载失败: %w", err)
	}
	log.Printf("[Config] Trail config: window=%dms policy=%s", trailConfig.WindowMs, trailConfig.Policy)

	appName := cfg.AppName
	if appName == "" {
		appName = "inktrail"
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		// 无法持久化时仍可运行，设置只保存在内存中
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, err := newSettings(gdataManager, trailConfig, cfg.Policy)
	if err != nil {
		return nil, err
	}

	return newApp(cfg.Verbose, trailConfig, settings)
}

// newSettings 创建用户设置
//
// 淡出策略的优先级：-policy 参数 > 已保存的设置 > trail.yaml 的 policy > simple。
func newSettings(gdataManager *gdata.Manager, trailConfig *config.TrailConfig, policyOverride string) (*game.SettingsManager, error) {
	defaults := game.DefaultSettings()
	if trailConfig.Policy != "" {
		defaults.FadePolicy = trailConfig.Policy
	}
	settings, err := game.NewSettingsManagerWithDefaults(gdataManager, defaults)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	if policyOverride != "" {
		if err := settings.SetFadePolicy(policyOverride); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func newApp(verbose bool, trailConfig *config.TrailConfig, settings *game.SettingsManager) (*App, error) {
	bus := events.NewBus()
	a := &App{
		trailConfig:  trailConfig,
		bus:          bus,
		loop:         frame.NewLoop(),
		cursor:       events.NewCursorTracker(bus),
		viewport:     events.NewViewportTracker(bus),
		sceneManager: game.NewSceneManager(),
		verbose:      verbose,
	}

	width, height := trailConfig.Overlay.Width, trailConfig.Overlay.Height
	a.viewport.Observe(width, height)

	menu, err := scenes.NewMenuScene(scenes.MenuSceneConfig{
		Bus:      a.bus,
		Frames:   a.loop,
		Settings: settings,
		Trail:    trailConfig,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return nil, fmt.Errorf("菜单场景创建失败: %w", err)
	}
	a.menu = menu
	a.sceneManager.SwitchTo(menu)
	return a, nil
}

// configureLogging 非 verbose 模式丢弃 log 输出；verbose 模式同时打开 gg 的日志
func configureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return
	}
	gg.SetLogger(slog.Default())
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	x, y := utils.PointerPosition()
	a.cursor.Observe(x, y)

	a.handleInput()

	now := time.Now()
	deltaTime := 1.0 / 60.0
	if !a.lastUpdate.IsZero() {
		deltaTime = now.Sub(a.lastUpdate).Seconds()
	}
	a.lastUpdate = now
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) handleInput() {
	pressed, px, py := utils.PointerJustPressed()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.bus.EmitMenu(events.ToggleMenu)
	case pressed && a.menu.HitBurger(px, py):
		a.bus.EmitMenu(events.ToggleMenu)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.bus.EmitMenu(events.CloseMenu)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.menu.CycleFadePolicy()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.menu.ToggleTrail()
	}
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// Draw 绘制画面
// 每次显示刷新调用一次：先执行登记的帧回调（轨迹重绘），再绘制场景
func (a *App) Draw(screen *ebiten.Image) {
	a.loop.Tick()
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 叠加层按窗口实际尺寸绘制，尺寸变化时发布 resize 事件
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.viewport.Observe(outsideWidth, outsideHeight)
	if w, h := a.viewport.Size(); w > 0 && h > 0 {
		return w, h
	}
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Bus 返回事件总线
func (a *App) Bus() *events.Bus {
	return a.bus
}

// Menu 返回菜单场景
func (a *App) Menu() *scenes.MenuScene {
	return a.menu
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Config 返回生效的轨迹配置
func (a *App) Config() *config.TrailConfig {
	return a.trailConfig
}
