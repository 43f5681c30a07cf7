package trail

import "time"

// Point 一次指针采样（不可变）
type Point struct {
	X, Y       float64       // 采样时的视口坐标
	CapturedAt time.Duration // 单调时钟时间戳
}

// Age 返回该点在 now 时刻的年龄
func (p Point) Age(now time.Duration) time.Duration {
	return now - p.CapturedAt
}

// History 按时间顺序（旧的在前）保存的轨迹点
//
// 长度由保留窗口隐式限定：每次重绘都会清除过期点。
type History struct {
	points []Point
}

// Append 追加一个点
func (h *History) Append(p Point) {
	h.points = append(h.points, p)
}

// Purge 清除 age >= window 的点，原地复用底层数组
//
// 返回：
//   - int: 被清除的点数
func (h *History) Purge(now, window time.Duration) int {
	kept := h.points[:0]
	for _, p := range h.points {
		if p.Age(now) < window {
			kept = append(kept, p)
		}
	}
	removed := len(h.points) - len(kept)
	// 清掉尾部残留，避免底层数组持有过期数据
	clear(h.points[len(kept):])
	h.points = kept
	return removed
}

// Len 返回当前点数
func (h *History) Len() int {
	return len(h.points)
}

// Points 返回点列表副本
func (h *History) Points() []Point {
	out := make([]Point, len(h.points))
	copy(out, h.points)
	return out
}

// Reset 丢弃所有点
func (h *History) Reset() {
	h.points = nil
}
