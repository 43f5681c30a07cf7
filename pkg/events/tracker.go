package events

// CursorTracker 把轮询得到的光标位置转换为指针移动事件
//
// ebiten 只提供 CursorPosition() 轮询接口，没有 mousemove 事件；
// 位置不变时不发布，避免静止的光标在轨迹里堆积重复点。
type CursorTracker struct {
	bus   *Bus
	last  [2]int
	known bool
}

// NewCursorTracker 创建光标跟踪器
func NewCursorTracker(bus *Bus) *CursorTracker {
	return &CursorTracker{bus: bus}
}

// Observe 记录一次轮询结果，位置变化时发布 pointer-move
//
// 返回：
//   - bool: 是否发布了事件
func (c *CursorTracker) Observe(x, y int) bool {
	if c.known && c.last[0] == x && c.last[1] == y {
		return false
	}
	c.last = [2]int{x, y}
	c.known = true
	c.bus.EmitPointerMove(float64(x), float64(y))
	return true
}

// ViewportTracker 把 Layout 报告的外部尺寸转换为 resize 事件
type ViewportTracker struct {
	bus    *Bus
	width  int
	height int
}

// NewViewportTracker 创建视口跟踪器
func NewViewportTracker(bus *Bus) *ViewportTracker {
	return &ViewportTracker{bus: bus}
}

// Observe 记录一次布局尺寸，尺寸变化时发布 resize
// 非正尺寸（窗口最小化等）被忽略
func (v *ViewportTracker) Observe(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == v.width && height == v.height {
		return false
	}
	v.width, v.height = width, height
	v.bus.EmitResize(width, height)
	return true
}

// Size 返回最近一次观察到的视口尺寸
func (v *ViewportTracker) Size() (int, int) {
	return v.width, v.height
}
