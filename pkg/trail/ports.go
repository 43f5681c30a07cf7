package trail

import (
	"time"

	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/frame"
)

// Segment 一段圆头圆角的线段
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Style          Style
}

// Dot 一个实心纹理点
type Dot struct {
	X, Y   float64
	Radius float64
	Style  Style
}

// Surface 全视口、透明、不拦截指针的绘制表面
type Surface interface {
	// Resize 调整像素缓冲区尺寸
	Resize(width, height int) error
	// Clear 完全透明清屏
	Clear()
	// StrokeSegment 绘制线段（圆形线帽与连接）
	StrokeSegment(s Segment)
	// FillDot 绘制实心圆点
	FillDot(d Dot)
}

// Events 宿主提供的指针移动与视口变化订阅
type Events interface {
	OnPointerMove(fn func(x, y float64)) events.Subscription
	OnResize(fn func(width, height int)) events.Subscription
}

// Frames "下一次显示刷新时执行"调度原语
type Frames interface {
	RequestFrame(cb func()) frame.Handle
	CancelFrame(h frame.Handle)
}

// Clock 单调时钟
type Clock interface {
	Now() time.Duration
}

// Rand 随机数来源，返回 [0, 1)
// *math/rand.Rand 满足该接口；测试中可注入常量
type Rand interface {
	Float64() float64
}

// MonotonicClock 以创建时刻为零点的单调时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建单调时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间（time.Since 使用单调读数）
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock 手动推进的时钟，用于回放和测试
type ManualClock struct {
	now time.Duration
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Duration { return c.now }

// Set 设置当前时间；时间不会倒退
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Advance 推进时间
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}
