// Package surface 提供基于 gogpu/gg 的离屏绘制表面
//
// Canvas 对应网页里的全视口透明 <canvas>：轨迹渲染器在上面画线和点，
// 宿主再把像素上传到窗口（ebiten）或保存为 PNG（回放工具）。
package surface

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/decker502/inktrail/pkg/trail"
)

// Canvas gg.Context 的包装，实现 trail.Surface
type Canvas struct {
	ctx    *gg.Context
	closed bool
}

var _ trail.Surface = (*Canvas)(nil)

// NewCanvas 创建指定尺寸的透明画布
//
// 参数：
//   - width, height: 像素尺寸，必须为正
//
// 返回：
//   - *Canvas: 画布
//   - error: 尺寸非法时返回错误
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	ctx := gg.NewContext(width, height)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	return &Canvas{ctx: ctx}, nil
}

// Width 返回像素宽度
func (c *Canvas) Width() int { return c.ctx.Width() }

// Height 返回像素高度
func (c *Canvas) Height() int { return c.ctx.Height() }

// Resize 调整像素缓冲区；尺寸变化时内容被丢弃
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return fmt.Errorf("canvas closed")
	}
	if err := c.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("failed to resize canvas: %w", err)
	}
	return nil
}

// Clear 完全透明清屏
func (c *Canvas) Clear() {
	if c.closed {
		return
	}
	c.ctx.ClearPath()
	c.ctx.Clear()
}

// StrokeSegment 以圆形线帽和连接绘制一段线
func (c *Canvas) StrokeSegment(s trail.Segment) {
	if c.closed || s.Style.Opacity <= 0 {
		return
	}
	c.setStyle(s.Style)
	c.ctx.SetLineCap(gg.LineCapRound)
	c.ctx.SetLineJoin(gg.LineJoinRound)
	c.ctx.SetLineWidth(s.Width)
	c.ctx.DrawLine(s.X0, s.Y0, s.X1, s.Y1)
	if err := c.ctx.Stroke(); err != nil {
		gg.Logger().Warn("trail segment stroke failed", "err", err)
	}
}

// FillDot 绘制实心圆点
func (c *Canvas) FillDot(d trail.Dot) {
	if c.closed || d.Style.Opacity <= 0 || d.Radius <= 0 {
		return
	}
	c.setStyle(d.Style)
	c.ctx.DrawCircle(d.X, d.Y, d.Radius)
	if err := c.ctx.Fill(); err != nil {
		gg.Logger().Warn("trail dot fill failed", "err", err)
	}
}

func (c *Canvas) setStyle(st trail.Style) {
	a := st.Opacity
	if a > 1 {
		a = 1
	}
	c.ctx.SetRGBA(st.Color.R/255, st.Color.G/255, st.Color.B/255, a)
}

// Pixels 返回预乘 alpha 的 RGBA 像素（行优先，4 字节/像素）
// 返回的切片属于画布，下一次绘制前有效
func (c *Canvas) Pixels() []byte {
	_ = c.ctx.FlushGPU()
	return c.ctx.ResizeTarget().Data()
}

// SavePNG 保存当前画面
func (c *Canvas) SavePNG(path string) error {
	if err := c.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Close 释放 gg 上下文；重复调用安全
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ctx.Close()
}
