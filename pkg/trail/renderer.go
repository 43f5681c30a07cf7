package trail

import (
	"log"
	"math/rand/v2"

	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/frame"
)

// Deps 渲染器依赖的宿主协作者
//
// Surface、Events、Frames 缺一不可；缺失时渲染器保持惰性（不报错、不工作）。
// Clock、Rand、Policy 可为 nil，分别使用单调时钟、全局随机源和 Options.Policy。
type Deps struct {
	Surface Surface
	Events  Events
	Frames  Frames
	Clock   Clock
	Rand    Rand
	Policy  FadePolicy

	// 挂载时的初始视口尺寸
	ViewportWidth  int
	ViewportHeight int
}

// FrameStats 单次重绘的统计
type FrameStats struct {
	Purged   int // 本次清除的过期点
	Live     int // 清除后剩余的点
	Segments int // 绘制的线段
	Dots     int // 绘制的纹理点
}

// Renderer 光标墨迹渲染器
//
// 状态只有两个：Unmounted 和 Mounted。挂载时订阅指针/视口事件并启动
// 逐帧重绘循环；卸载时取消订阅、取消待执行的帧并清空表面。
// 所有方法都应在宿主的同一个 goroutine 中调用。
type Renderer struct {
	opts   Options
	deps   Deps
	policy FadePolicy
	clock  Clock
	rand   Rand

	history History
	width   int
	height  int

	mounted    bool
	pending    frame.Handle
	last       FrameStats
	pointerSub events.Subscription
	resizeSub  events.Subscription
}

// New 创建渲染器（未挂载）
func New(opts Options, deps Deps) *Renderer {
	r := &Renderer{
		opts:   opts,
		deps:   deps,
		clock:  deps.Clock,
		rand:   deps.Rand,
		policy: deps.Policy,
		width:  deps.ViewportWidth,
		height: deps.ViewportHeight,
	}
	if r.clock == nil {
		r.clock = NewMonotonicClock()
	}
	if r.rand == nil {
		r.rand = globalRand{}
	}
	if r.policy == nil {
		p, err := PolicyByName(opts.Policy, opts)
		if err != nil {
			log.Printf("[Trail] Warning: %v, falling back to %s", err, PolicySimple)
			p, _ = PolicyByName(PolicySimple, opts)
		}
		r.policy = p
	}
	return r
}

// Mount 挂载：订阅事件并启动重绘循环
//
// 绘制表面不可用（未提供或拒绝初始尺寸）时保持未挂载状态，不会 panic。
// 已挂载时再次调用是空操作。
func (r *Renderer) Mount() {
	if r.mounted {
		return
	}
	if r.deps.Surface == nil || r.deps.Events == nil || r.deps.Frames == nil {
		log.Printf("[Trail] Drawing surface or host signals unavailable, staying inert")
		return
	}
	if r.width > 0 && r.height > 0 {
		if err := r.deps.Surface.Resize(r.width, r.height); err != nil {
			log.Printf("[Trail] Surface rejected %dx%d: %v, staying inert", r.width, r.height, err)
			return
		}
	}

	r.pointerSub = r.deps.Events.OnPointerMove(r.OnPointerMove)
	r.resizeSub = r.deps.Events.OnResize(r.OnResize)
	r.mounted = true
	log.Printf("[Trail] Mounted (%dx%d, policy=%s, window=%v)", r.width, r.height, r.policy.Name(), r.opts.Window)

	r.Repaint()
}

// Unmount 卸载：取消两个订阅和待执行的帧，清空表面与历史
// 可以安全地重复调用
func (r *Renderer) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false

	if r.resizeSub != nil {
		r.resizeSub.Cancel()
		r.resizeSub = nil
	}
	if r.pointerSub != nil {
		r.pointerSub.Cancel()
		r.pointerSub = nil
	}
	r.deps.Frames.CancelFrame(r.pending)
	r.pending = 0

	r.deps.Surface.Clear()
	r.history.Reset()
	r.last = FrameStats{}
	log.Printf("[Trail] Unmounted")
}

// Mounted 返回是否处于挂载状态
func (r *Renderer) Mounted() bool {
	return r.mounted
}

// OnPointerMove 记录一次指针采样
func (r *Renderer) OnPointerMove(x, y float64) {
	if !r.mounted {
		return
	}
	r.history.Append(Point{X: x, Y: y, CapturedAt: r.clock.Now()})
}

// OnResize 更新视口与表面像素尺寸
// 历史点保留在旧坐标系中，不做换算
func (r *Renderer) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if !r.mounted {
		return
	}
	if err := r.deps.Surface.Resize(width, height); err != nil {
		log.Printf("[Trail] Surface resize to %dx%d failed: %v", width, height, err)
	}
}

// Viewport 返回当前视口尺寸
func (r *Renderer) Viewport() (int, int) {
	return r.width, r.height
}

// Points 返回当前轨迹点副本（旧的在前）
func (r *Renderer) Points() []Point {
	return r.history.Points()
}

// LastFrame 返回最近一次重绘的统计
func (r *Renderer) LastFrame() FrameStats {
	return r.last
}

// Policy 返回当前淡出策略
func (r *Renderer) Policy() FadePolicy {
	return r.policy
}

// SetPolicy 切换淡出策略，nil 被忽略
func (r *Renderer) SetPolicy(p FadePolicy) {
	if p != nil {
		r.policy = p
	}
}

// Repaint 重绘一帧并登记下一帧
//
// 每帧都是完全清屏后根据当前历史重画，不做增量累积。
// 未挂载时是空操作。
func (r *Renderer) Repaint() FrameStats {
	if !r.mounted {
		return FrameStats{}
	}
	// 手动调用时可能已有待执行的帧，先取消，保证同一时刻只有一个循环
	r.deps.Frames.CancelFrame(r.pending)
	r.pending = 0

	stats := r.paint()
	r.last = stats

	if r.mounted {
		r.pending = r.deps.Frames.RequestFrame(r.onFrame)
	}
	return stats
}

func (r *Renderer) onFrame() {
	r.pending = 0
	r.Repaint()
}

func (r *Renderer) paint() FrameStats {
	now := r.clock.Now()
	window := r.opts.Window

	var stats FrameStats
	stats.Purged = r.history.Purge(now, window)
	stats.Live = r.history.Len()

	surface := r.deps.Surface
	surface.Clear()

	points := r.history.points
	if len(points) < 2 {
		return stats
	}

	base := r.policy.Base()
	for i := 0; i < len(points)-1; i++ {
		p, next := points[i], points[i+1]
		style := r.policy.Style(p.Age(now), window)

		surface.StrokeSegment(Segment{
			X0: p.X, Y0: p.Y,
			X1: next.X, Y1: next.Y,
			Width: r.opts.StrokeWidth + r.rand.Float64()*r.opts.StrokeJitter,
			Style: style,
		})
		stats.Segments++

		// 偶数段额外盖一个小圆点，模拟笔触纹理
		if i%2 == 0 {
			fade := 0.0
			if base > 0 {
				fade = style.Opacity / base
			}
			surface.FillDot(Dot{
				X: p.X, Y: p.Y,
				Radius: r.opts.DotRadius,
				Style:  Style{Color: style.Color, Opacity: r.opts.DotOpacity * fade},
			})
			stats.Dots++
		}
	}
	return stats
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
