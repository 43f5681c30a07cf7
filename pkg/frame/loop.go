// Package frame 提供"下一次显示刷新时执行"的调度原语
//
// Loop 对应浏览器的 requestAnimationFrame / cancelAnimationFrame：
// 宿主在每次显示刷新时调用 Tick()，执行刷新前登记的回调。
// 回调里再次登记的请求会留到下一次刷新，从而形成自我续期的循环。
//
// Loop 只在单个 goroutine 中使用（ebiten 的 Draw），不加锁。
package frame

// Handle 标识一次已登记的帧回调
// 零值永远不会被分配，可以作为"无待执行帧"使用
type Handle uint64

// Loop 帧回调调度器
type Loop struct {
	next    Handle
	pending map[Handle]func()
	order   []Handle // 登记顺序，保证同一帧内按请求顺序执行
	ticks   uint64
}

// NewLoop 创建空的帧调度器
func NewLoop() *Loop {
	return &Loop{
		pending: make(map[Handle]func()),
	}
}

// RequestFrame 登记一个在下一次 Tick 时执行的回调
//
// 参数：
//   - cb: 回调函数，nil 会被忽略并返回零值 Handle
//
// 返回：
//   - Handle: 可传给 CancelFrame 的句柄
func (l *Loop) RequestFrame(cb func()) Handle {
	if cb == nil {
		return 0
	}
	l.next++
	h := l.next
	l.pending[h] = cb
	l.order = append(l.order, h)
	return h
}

// CancelFrame 取消尚未执行的回调
// 对零值、已执行或已取消的句柄调用是安全的空操作
func (l *Loop) CancelFrame(h Handle) {
	delete(l.pending, h)
}

// Tick 执行一次显示刷新
//
// 只执行调用 Tick 之前登记的回调；回调中新登记的请求留到下一次 Tick。
// 回调执行前会再次检查是否已被取消（前一个回调可能取消了后一个）。
//
// 返回：
//   - int: 本次实际执行的回调数量
func (l *Loop) Tick() int {
	l.ticks++
	batch := l.order
	l.order = nil

	ran := 0
	for _, h := range batch {
		cb, ok := l.pending[h]
		if !ok {
			continue
		}
		delete(l.pending, h)
		cb()
		ran++
	}
	return ran
}

// Pending 返回等待执行的回调数量
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Ticks 返回已经执行过的刷新次数
func (l *Loop) Ticks() uint64 {
	return l.ticks
}
