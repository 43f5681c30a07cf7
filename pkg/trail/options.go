package trail

import "time"

// Options 轨迹渲染器的可调参数
type Options struct {
	Window       time.Duration // 保留窗口
	BaseOpacity  float64       // 线段基础不透明度
	Accent       Color         // 墨水蓝
	Neutral      Color         // 两阶段淡出的目标灰色
	StrokeWidth  float64       // 基础线宽
	StrokeJitter float64       // 线宽随机抖动上限，实际线宽 = StrokeWidth + rand*StrokeJitter
	DotRadius    float64       // 纹理点半径
	DotOpacity   float64       // 纹理点基础不透明度
	Policy       string        // 淡出策略名
}

// DefaultOptions 返回默认参数
func DefaultOptions() Options {
	return Options{
		Window:       1000 * time.Millisecond,
		BaseOpacity:  0.6,
		Accent:       RGB(30, 63, 102),
		Neutral:      RGB(40, 40, 40),
		StrokeWidth:  2,
		StrokeJitter: 1.5,
		DotRadius:    1,
		DotOpacity:   0.4,
		Policy:       PolicySimple,
	}
}
