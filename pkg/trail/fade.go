package trail

import (
	"fmt"
	"math"
	"time"
)

// Color RGB 颜色，通道取值 0~255
type Color struct {
	R, G, B float64
}

// RGB 构造颜色
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Lerp 按通道线性插值，t 限制在 [0, 1]
// t=0 精确返回 c，t=1 精确返回 to
func (c Color) Lerp(to Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return to
	}
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// String 以 rgb(r,g,b) 形式输出（四舍五入）
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)))
}

// Style 一段轨迹的外观
type Style struct {
	Color   Color
	Opacity float64 // 0~1
}

// FadePolicy 根据点的年龄决定线段外观
type FadePolicy interface {
	// Name 返回策略名（配置文件中使用）
	Name() string
	// Style 返回年龄为 age 的点所对应的颜色和不透明度
	// window 为保留窗口；age >= window 时不透明度为 0
	Style(age, window time.Duration) Style
	// Base 返回 age=0 时的不透明度，用于换算纹理点的衰减系数
	Base() float64
}

// 策略名
const (
	PolicySimple   = "simple"
	PolicyTwoPhase = "two-phase"
)

// SimpleFade 单色线性淡出
// 颜色固定为 Accent，不透明度从 BaseOpacity 线性降到窗口边界处的 0
type SimpleFade struct {
	Accent      Color
	BaseOpacity float64
}

func (SimpleFade) Name() string { return PolicySimple }

func (f SimpleFade) Base() float64 { return f.BaseOpacity }

func (f SimpleFade) Style(age, window time.Duration) Style {
	return Style{Color: f.Accent, Opacity: f.BaseOpacity * remaining(age, 0, window)}
}

// TwoPhaseFade 两阶段淡出
//
//   - [0, window/2)：颜色从 Accent 线性过渡到 Neutral，不透明度保持 BaseOpacity
//   - [window/2, window)：颜色保持 Neutral，不透明度从 BaseOpacity 线性降到 0
type TwoPhaseFade struct {
	Accent      Color
	Neutral     Color
	BaseOpacity float64
}

func (TwoPhaseFade) Name() string { return PolicyTwoPhase }

func (f TwoPhaseFade) Base() float64 { return f.BaseOpacity }

func (f TwoPhaseFade) Style(age, window time.Duration) Style {
	half := window / 2
	if age < half {
		t := 0.0
		if half > 0 && age > 0 {
			t = float64(age) / float64(half)
		}
		return Style{Color: f.Accent.Lerp(f.Neutral, t), Opacity: f.BaseOpacity}
	}
	return Style{Color: f.Neutral, Opacity: f.BaseOpacity * remaining(age, half, window)}
}

// remaining 返回 age 在 [from, to] 区间内剩余的比例，结果限制在 [0, 1]
func remaining(age, from, to time.Duration) float64 {
	span := to - from
	if span <= 0 || age >= to {
		return 0
	}
	if age <= from {
		return 1
	}
	return 1 - float64(age-from)/float64(span)
}

// PolicyByName 根据名称构造淡出策略
//
// 参数：
//   - name: "simple" 或 "two-phase"，空字符串视为 "simple"
//   - opts: 提供颜色和基础不透明度
func PolicyByName(name string, opts Options) (FadePolicy, error) {
	switch name {
	case "", PolicySimple:
		return SimpleFade{Accent: opts.Accent, BaseOpacity: opts.BaseOpacity}, nil
	case PolicyTwoPhase:
		return TwoPhaseFade{Accent: opts.Accent, Neutral: opts.Neutral, BaseOpacity: opts.BaseOpacity}, nil
	default:
		return nil, fmt.Errorf("unknown fade policy %q", name)
	}
}
