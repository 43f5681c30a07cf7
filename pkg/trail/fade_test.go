package trail

import (
	"testing"
	"time"
)

// TestSimpleFadeMonotonic 单色淡出：不透明度随年龄单调不增，窗口边界处恰好为 0
func TestSimpleFadeMonotonic(t *testing.T) {
	window := 1000 * time.Millisecond
	f := SimpleFade{Accent: RGB(30, 63, 102), BaseOpacity: 0.6}

	prev := f.Style(0, window).Opacity
	if !almostEqual(prev, 0.6) {
		t.Fatalf("opacity at age 0 = %v, want 0.6", prev)
	}
	for age := time.Duration(0); age <= window; age += 10 * time.Millisecond {
		st := f.Style(age, window)
		if st.Opacity > prev+1e-12 {
			t.Fatalf("opacity increased at age %v: %v > %v", age, st.Opacity, prev)
		}
		if st.Color != f.Accent {
			t.Fatalf("color changed at age %v: %v", age, st.Color)
		}
		prev = st.Opacity
	}
	if got := f.Style(window, window).Opacity; got != 0 {
		t.Errorf("opacity at window = %v, want exactly 0", got)
	}
	if got := f.Style(2*window, window).Opacity; got != 0 {
		t.Errorf("opacity past window = %v, want 0", got)
	}
}

// TestTwoPhaseFade 两阶段淡出的颜色与不透明度
func TestTwoPhaseFade(t *testing.T) {
	window := 2000 * time.Millisecond
	half := window / 2
	accent := RGB(30, 63, 102)
	neutral := RGB(40, 40, 40)
	f := TwoPhaseFade{Accent: accent, Neutral: neutral, BaseOpacity: 0.6}

	if got := f.Style(0, window); got.Color != accent || got.Opacity != 0.6 {
		t.Errorf("age 0: got %+v, want accent at 0.6", got)
	}
	if got := f.Style(half, window); got.Color != neutral || got.Opacity != 0.6 {
		t.Errorf("age half: got %+v, want neutral at 0.6", got)
	}

	// 第一阶段不透明度恒定，颜色逐通道线性变化
	quarter := f.Style(half/2, window)
	if quarter.Opacity != 0.6 {
		t.Errorf("quarter opacity = %v, want 0.6", quarter.Opacity)
	}
	want := RGB(35, 51.5, 71)
	if !almostEqual(quarter.Color.R, want.R) || !almostEqual(quarter.Color.G, want.G) || !almostEqual(quarter.Color.B, want.B) {
		t.Errorf("quarter color = %v, want %v", quarter.Color, want)
	}

	// 第二阶段颜色固定，不透明度线性下降
	tests := []struct {
		age  time.Duration
		want float64
	}{
		{half, 0.6},
		{half + 250*time.Millisecond, 0.45},
		{half + 500*time.Millisecond, 0.3},
		{half + 750*time.Millisecond, 0.15},
		{window, 0},
	}
	for _, tt := range tests {
		got := f.Style(tt.age, window)
		if got.Color != neutral {
			t.Errorf("age %v: color = %v, want neutral", tt.age, got.Color)
		}
		if !almostEqual(got.Opacity, tt.want) {
			t.Errorf("age %v: opacity = %v, want %v", tt.age, got.Opacity, tt.want)
		}
	}
}

func TestPolicyByName(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", PolicySimple, false},
		{"simple", PolicySimple, false},
		{"two-phase", PolicyTwoPhase, false},
		{"sparkle", "", true},
	}
	for _, tt := range tests {
		p, err := PolicyByName(tt.name, opts)
		if tt.wantErr {
			if err == nil {
				t.Errorf("PolicyByName(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("PolicyByName(%q) error: %v", tt.name, err)
			continue
		}
		if p.Name() != tt.want {
			t.Errorf("PolicyByName(%q).Name() = %q, want %q", tt.name, p.Name(), tt.want)
		}
		if p.Base() != opts.BaseOpacity {
			t.Errorf("PolicyByName(%q).Base() = %v, want %v", tt.name, p.Base(), opts.BaseOpacity)
		}
	}
}

func TestColorLerpAndString(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(100, 200, 50)
	if got := a.Lerp(b, -1); got != a {
		t.Errorf("Lerp(-1) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 2); got != b {
		t.Errorf("Lerp(2) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != RGB(50, 100, 25) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
	if got := RGB(30, 63, 102).String(); got != "rgb(30,63,102)" {
		t.Errorf("String() = %q", got)
	}
}
