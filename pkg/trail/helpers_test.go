package trail

import (
	"errors"
	"math"
	"time"

	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/frame"
)

// recordingSurface 记录每一帧的绘制调用
type recordingSurface struct {
	width, height int
	clears        int
	segments      []Segment
	dots          []Dot
	resizeErr     error
	resizes       int
}

func (s *recordingSurface) Resize(width, height int) error {
	if s.resizeErr != nil {
		return s.resizeErr
	}
	s.width, s.height = width, height
	s.resizes++
	return nil
}

// Clear 清屏时同时丢弃上一帧记录，只保留当前帧
func (s *recordingSurface) Clear() {
	s.clears++
	s.segments = nil
	s.dots = nil
}

func (s *recordingSurface) StrokeSegment(seg Segment) { s.segments = append(s.segments, seg) }
func (s *recordingSurface) FillDot(d Dot)             { s.dots = append(s.dots, d) }

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

var errNoContext = errors.New("no 2d context")

type fixture struct {
	surface *recordingSurface
	bus     *events.Bus
	loop    *frame.Loop
	clock   *ManualClock
	r       *Renderer
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		surface: &recordingSurface{},
		bus:     events.NewBus(),
		loop:    frame.NewLoop(),
		clock:   &ManualClock{},
	}
	f.r = New(opts, Deps{
		Surface:        f.surface,
		Events:         f.bus,
		Frames:         f.loop,
		Clock:          f.clock,
		Rand:           constRand(0),
		ViewportWidth:  800,
		ViewportHeight: 600,
	})
	return f
}

// moveAt 在指定毫秒时刻发布一次指针移动
func (f *fixture) moveAt(ms int, x, y float64) {
	f.clock.Set(time.Duration(ms) * time.Millisecond)
	f.bus.EmitPointerMove(x, y)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
