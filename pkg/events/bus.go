// Package events 是宿主环境到叠加层组件的入站端口
//
// 宿主（ebiten 主循环）把指针移动、视口尺寸变化以及菜单信号
// （对应网页里的 toggleMenu / closeMenu 自定义事件）发布到 Bus，
// 组件在挂载时订阅、卸载时取消订阅。Bus 本身不持有任何组件状态。
package events

// Signal 菜单信号类型
type Signal int

const (
	// ToggleMenu 切换菜单开/关（汉堡按钮）
	ToggleMenu Signal = iota
	// CloseMenu 强制关闭菜单
	CloseMenu
)

// String 返回信号名称（与宿主页面的自定义事件名一致）
func (s Signal) String() string {
	switch s {
	case ToggleMenu:
		return "toggleMenu"
	case CloseMenu:
		return "closeMenu"
	default:
		return "unknown"
	}
}

// Subscription 表示一次订阅
type Subscription interface {
	// Cancel 取消订阅；重复调用是安全的空操作
	Cancel()
}

type listenerList[T any] struct {
	next      int
	listeners map[int]T
	order     []int
}

func (l *listenerList[T]) add(fn T) int {
	if l.listeners == nil {
		l.listeners = make(map[int]T)
	}
	l.next++
	id := l.next
	l.listeners[id] = fn
	l.order = append(l.order, id)
	return id
}

func (l *listenerList[T]) remove(id int) {
	if _, ok := l.listeners[id]; !ok {
		return
	}
	delete(l.listeners, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// snapshot 返回当前监听器副本，允许回调中取消订阅
func (l *listenerList[T]) snapshot() []T {
	out := make([]T, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.listeners[id])
	}
	return out
}

func (l *listenerList[T]) count() int {
	return len(l.listeners)
}

type subscription struct {
	cancel func()
}

func (s *subscription) Cancel() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Bus 宿主事件总线
//
// 和帧调度器一样只在宿主的单个 goroutine 中使用。
type Bus struct {
	pointer listenerList[func(x, y float64)]
	resize  listenerList[func(width, height int)]
	menu    listenerList[func(Signal)]
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{}
}

// OnPointerMove 订阅指针移动事件（视口坐标）
func (b *Bus) OnPointerMove(fn func(x, y float64)) Subscription {
	id := b.pointer.add(fn)
	return &subscription{cancel: func() { b.pointer.remove(id) }}
}

// OnResize 订阅视口尺寸变化事件
func (b *Bus) OnResize(fn func(width, height int)) Subscription {
	id := b.resize.add(fn)
	return &subscription{cancel: func() { b.resize.remove(id) }}
}

// OnMenu 订阅菜单信号
func (b *Bus) OnMenu(fn func(Signal)) Subscription {
	id := b.menu.add(fn)
	return &subscription{cancel: func() { b.menu.remove(id) }}
}

// EmitPointerMove 发布指针移动事件
func (b *Bus) EmitPointerMove(x, y float64) {
	for _, fn := range b.pointer.snapshot() {
		fn(x, y)
	}
}

// EmitResize 发布视口尺寸变化事件
func (b *Bus) EmitResize(width, height int) {
	for _, fn := range b.resize.snapshot() {
		fn(width, height)
	}
}

// EmitMenu 发布菜单信号
func (b *Bus) EmitMenu(s Signal) {
	for _, fn := range b.menu.snapshot() {
		fn(s)
	}
}

// ListenerCount 返回当前各类监听器数量（pointer, resize, menu），用于诊断和测试
func (b *Bus) ListenerCount() (pointer, resize, menu int) {
	return b.pointer.count(), b.resize.count(), b.menu.count()
}
