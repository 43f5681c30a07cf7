package events

import "testing"

func TestBusPointerMove(t *testing.T) {
	bus := NewBus()
	var gotX, gotY float64
	calls := 0
	sub := bus.OnPointerMove(func(x, y float64) {
		gotX, gotY = x, y
		calls++
	})

	bus.EmitPointerMove(12, 34)
	if calls != 1 || gotX != 12 || gotY != 34 {
		t.Fatalf("listener got (%v,%v) calls=%d, want (12,34) calls=1", gotX, gotY, calls)
	}

	sub.Cancel()
	bus.EmitPointerMove(1, 1)
	if calls != 1 {
		t.Errorf("listener called after Cancel: calls=%d", calls)
	}

	// 重复取消不应 panic
	sub.Cancel()
}

func TestBusResizeAndMenu(t *testing.T) {
	bus := NewBus()
	var w, h int
	var signals []Signal
	rs := bus.OnResize(func(width, height int) { w, h = width, height })
	ms := bus.OnMenu(func(s Signal) { signals = append(signals, s) })

	bus.EmitResize(1200, 800)
	bus.EmitMenu(ToggleMenu)
	bus.EmitMenu(CloseMenu)

	if w != 1200 || h != 800 {
		t.Errorf("resize listener got %dx%d, want 1200x800", w, h)
	}
	if len(signals) != 2 || signals[0] != ToggleMenu || signals[1] != CloseMenu {
		t.Errorf("menu signals = %v", signals)
	}

	p, r, m := bus.ListenerCount()
	if p != 0 || r != 1 || m != 1 {
		t.Errorf("ListenerCount() = (%d,%d,%d), want (0,1,1)", p, r, m)
	}
	rs.Cancel()
	ms.Cancel()
	p, r, m = bus.ListenerCount()
	if p != 0 || r != 0 || m != 0 {
		t.Errorf("ListenerCount() after cancel = (%d,%d,%d), want zeros", p, r, m)
	}
}

// TestCancelDuringEmit 验证回调中取消自身订阅不影响本次分发
func TestCancelDuringEmit(t *testing.T) {
	bus := NewBus()
	var sub Subscription
	firstCalls, secondCalls := 0, 0
	sub = bus.OnPointerMove(func(x, y float64) {
		firstCalls++
		sub.Cancel()
	})
	bus.OnPointerMove(func(x, y float64) { secondCalls++ })

	bus.EmitPointerMove(0, 0)
	bus.EmitPointerMove(0, 0)

	if firstCalls != 1 {
		t.Errorf("self-cancelling listener called %d times, want 1", firstCalls)
	}
	if secondCalls != 2 {
		t.Errorf("second listener called %d times, want 2", secondCalls)
	}
}

func TestSignalString(t *testing.T) {
	tests := []struct {
		s    Signal
		want string
	}{
		{ToggleMenu, "toggleMenu"},
		{CloseMenu, "closeMenu"},
		{Signal(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Signal(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
