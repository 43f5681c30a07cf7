package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/inktrail/pkg/config"
	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/game"
	"github.com/decker502/inktrail/pkg/surface"
	"github.com/decker502/inktrail/pkg/trail"
)

// burgerMargin 汉堡按钮距窗口右上角的边距（像素）
const burgerMargin = 16

// TrailCanvas 菜单会话使用的绘制表面
// surface.Canvas 是默认实现，测试中可替换
type TrailCanvas interface {
	trail.Surface
	Width() int
	Height() int
	Pixels() []byte
	Close() error
}

// CanvasFactory 按视口尺寸创建绘制表面
type CanvasFactory func(width, height int) (TrailCanvas, error)

// NewGGCanvas 默认的 CanvasFactory，使用 gogpu/gg 离屏画布
func NewGGCanvas(width, height int) (TrailCanvas, error) {
	c, err := surface.NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MenuSceneConfig 菜单场景的依赖
type MenuSceneConfig struct {
	Bus      *events.Bus
	Frames   trail.Frames
	Clock    trail.Clock
	Rand     trail.Rand
	Settings *game.SettingsManager
	Trail    *config.TrailConfig

	// NewCanvas 为 nil 时使用 NewGGCanvas
	NewCanvas CanvasFactory

	// 初始视口尺寸
	Width  int
	Height int
}

// menuSession 一次菜单打开期间的资源
// 每次打开都会新建，关闭时整体释放
type menuSession struct {
	canvas   TrailCanvas
	renderer *trail.Renderer
}

// MenuScene 全屏菜单叠加层
//
// 订阅 toggleMenu / closeMenu 信号开关菜单。菜单打开时挂载一个新的墨迹渲染器，
// 关闭时卸载并释放画布，因此每次打开的轨迹都从空白开始。
type MenuScene struct {
	cfg  MenuSceneConfig
	opts trail.Options

	background color.NRGBA
	backdrop   color.NRGBA

	width  int
	height int

	open    bool
	session *menuSession

	menuSub   events.Subscription
	resizeSub events.Subscription

	// 用于绘制遮罩的 1x1 白色像素
	whitePixel *ebiten.Image
	// 画布像素上传目标，尺寸随画布变化重建
	trailImage *ebiten.Image
}

// NewMenuScene 创建菜单场景（菜单初始为关闭）
//
// 参数：
//   - cfg: 场景依赖，Bus、Frames、Settings 不能为空；Trail 为 nil 时使用默认配置
//
// 返回：
//   - *MenuScene: 场景实例
//   - error: 依赖缺失时返回错误
func NewMenuScene(cfg MenuSceneConfig) (*MenuScene, error) {
	if cfg.Bus == nil || cfg.Frames == nil || cfg.Settings == nil {
		return nil, fmt.Errorf("menu scene requires bus, frames and settings")
	}
	if cfg.Trail == nil {
		cfg.Trail = config.DefaultTrailConfig()
	}
	if cfg.NewCanvas == nil {
		cfg.NewCanvas = NewGGCanvas
	}
	if cfg.Clock == nil {
		cfg.Clock = trail.NewMonotonicClock()
	}

	overlay := cfg.Trail.Overlay
	bg, err := config.ParseColor(overlay.Background)
	if err != nil {
		return nil, fmt.Errorf("overlay background: %w", err)
	}
	backdrop, err := config.ParseColor(overlay.Backdrop)
	if err != nil {
		return nil, fmt.Errorf("overlay backdrop: %w", err)
	}

	return &MenuScene{
		cfg:        cfg,
		opts:       cfg.Trail.Options(),
		background: toNRGBA(bg, 1),
		backdrop:   toNRGBA(backdrop, overlay.BackdropAlpha),
		width:      cfg.Width,
		height:     cfg.Height,
	}, nil
}

// Enter 订阅菜单信号与视口变化
func (s *MenuScene) Enter() {
	if s.menuSub != nil {
		return
	}
	s.menuSub = s.cfg.Bus.OnMenu(s.handleSignal)
	s.resizeSub = s.cfg.Bus.OnResize(func(w, h int) {
		s.width, s.height = w, h
	})
	log.Printf("[MenuScene] Entered (%dx%d)", s.width, s.height)
}

// Exit 关闭菜单并取消订阅；重复调用安全
func (s *MenuScene) Exit() {
	s.Close()
	if s.menuSub != nil {
		s.menuSub.Cancel()
		s.menuSub = nil
	}
	if s.resizeSub != nil {
		s.resizeSub.Cancel()
		s.resizeSub = nil
	}
	if s.trailImage != nil {
		s.trailImage.Deallocate()
		s.trailImage = nil
	}
}

// SaveOnExit 窗口关闭时保存用户设置
func (s *MenuScene) SaveOnExit() bool {
	if err := s.cfg.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Failed to save settings on exit: %v", err)
		return false
	}
	return true
}

func (s *MenuScene) handleSignal(sig events.Signal) {
	log.Printf("[MenuScene] Signal: %s", sig)
	switch sig {
	case events.ToggleMenu:
		if s.open {
			s.Close()
		} else {
			s.Open()
		}
	case events.CloseMenu:
		s.Close()
	}
}

// IsOpen 返回菜单是否打开
func (s *MenuScene) IsOpen() bool {
	return s.open
}

// Renderer 返回当前会话的渲染器；菜单关闭或轨迹关闭时返回 nil
func (s *MenuScene) Renderer() *trail.Renderer {
	if s.session == nil {
		return nil
	}
	return s.session.renderer
}

// Open 打开菜单
//
// 轨迹开启时创建新画布和新渲染器并挂载。画布创建失败时菜单照常打开，只是没有轨迹。
func (s *MenuScene) Open() {
	if s.open {
		return
	}
	s.open = true

	settings := s.cfg.Settings.GetSettings()
	if !settings.TrailEnabled {
		log.Printf("[MenuScene] Opened (trail disabled)")
		return
	}

	canvas, err := s.cfg.NewCanvas(s.width, s.height)
	if err != nil {
		log.Printf("[MenuScene] Opened without trail: %v", err)
		return
	}

	renderer := trail.New(s.opts, trail.Deps{
		Surface:        canvas,
		Events:         s.cfg.Bus,
		Frames:         s.cfg.Frames,
		Clock:          s.cfg.Clock,
		Rand:           s.cfg.Rand,
		Policy:         s.policy(settings.FadePolicy),
		ViewportWidth:  s.width,
		ViewportHeight: s.height,
	})
	renderer.Mount()
	s.session = &menuSession{canvas: canvas, renderer: renderer}
	log.Printf("[MenuScene] Opened (policy=%s)", renderer.Policy().Name())
}

// Close 关闭菜单，卸载渲染器并释放画布
func (s *MenuScene) Close() {
	if !s.open {
		return
	}
	s.open = false
	if s.session != nil {
		s.session.renderer.Unmount()
		if err := s.session.canvas.Close(); err != nil {
			log.Printf("[MenuScene] Canvas close failed: %v", err)
		}
		s.session = nil
	}
	log.Printf("[MenuScene] Closed")
}

// CycleFadePolicy 切换淡出策略并持久化，当前会话立即生效
func (s *MenuScene) CycleFadePolicy() string {
	name := s.cfg.Settings.CycleFadePolicy()
	if err := s.cfg.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Failed to save settings: %v", err)
	}
	if r := s.Renderer(); r != nil {
		r.SetPolicy(s.policy(name))
	}
	log.Printf("[MenuScene] Fade policy: %s", name)
	return name
}

// ToggleTrail 切换轨迹开关并持久化，下次打开菜单时生效
func (s *MenuScene) ToggleTrail() bool {
	enabled := !s.cfg.Settings.GetSettings().TrailEnabled
	s.cfg.Settings.SetTrailEnabled(enabled)
	if err := s.cfg.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Failed to save settings: %v", err)
	}
	log.Printf("[MenuScene] Trail enabled: %v", enabled)
	return enabled
}

// BurgerRect 返回右上角汉堡按钮的热区
func (s *MenuScene) BurgerRect() image.Rectangle {
	size := s.cfg.Trail.Overlay.BurgerSize
	x1 := s.width - burgerMargin
	return image.Rect(x1-size, burgerMargin, x1, burgerMargin+size)
}

// HitBurger 判断坐标是否落在汉堡按钮热区内
func (s *MenuScene) HitBurger(x, y int) bool {
	return image.Pt(x, y).In(s.BurgerRect())
}

func (s *MenuScene) policy(name string) trail.FadePolicy {
	p, err := trail.PolicyByName(name, s.opts)
	if err != nil {
		log.Printf("[MenuScene] %v, using %s", err, trail.PolicySimple)
		p, _ = trail.PolicyByName(trail.PolicySimple, s.opts)
	}
	return p
}

// Update 菜单本身没有基于时间的逻辑，轨迹由帧循环驱动
func (s *MenuScene) Update(deltaTime float64) {}

// Draw 绘制页面背景、菜单遮罩、墨迹和汉堡按钮
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	if s.open {
		s.drawBackdrop(screen)
		s.drawTrail(screen)
		ebitenutil.DebugPrintAt(screen, s.hint(), burgerMargin, burgerMargin)
	}
	s.drawBurger(screen)
}

func (s *MenuScene) hint() string {
	settings := s.cfg.Settings.GetSettings()
	return fmt.Sprintf("MENU  [Esc] close  [P] fade: %s  [T] trail: %v",
		settings.FadePolicy, settings.TrailEnabled)
}

func (s *MenuScene) drawBackdrop(screen *ebiten.Image) {
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(color.White)
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.ScaleWithColor(s.backdrop)
	screen.DrawImage(s.whitePixel, op)
}

func (s *MenuScene) drawTrail(screen *ebiten.Image) {
	if s.session == nil {
		return
	}
	canvas := s.session.canvas
	w, h := canvas.Width(), canvas.Height()
	pixels := canvas.Pixels()
	if w <= 0 || h <= 0 || len(pixels) != 4*w*h {
		return
	}

	if s.trailImage == nil || s.trailImage.Bounds().Dx() != w || s.trailImage.Bounds().Dy() != h {
		if s.trailImage != nil {
			s.trailImage.Deallocate()
		}
		s.trailImage = ebiten.NewImage(w, h)
	}
	// gg 输出预乘 alpha RGBA，与 WritePixels 要求一致
	s.trailImage.WritePixels(pixels)
	screen.DrawImage(s.trailImage, nil)
}

func (s *MenuScene) drawBurger(screen *ebiten.Image) {
	r := s.BurgerRect()
	bar := r.Dy() / 8
	if bar < 2 {
		bar = 2
	}
	ink := toNRGBA(s.opts.Accent, 1)
	for i := 0; i < 3; i++ {
		y := r.Min.Y + r.Dy()/4 + i*r.Dy()/4 - bar/2
		rect := image.Rect(r.Min.X+r.Dx()/6, y, r.Max.X-r.Dx()/6, y+bar).Intersect(screen.Bounds())
		if rect.Empty() {
			continue
		}
		screen.SubImage(rect).(*ebiten.Image).Fill(ink)
	}
}

func toNRGBA(c trail.Color, alpha float64) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(alpha * 255)}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
