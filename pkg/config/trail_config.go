package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/inktrail/pkg/embedded"
	"github.com/decker502/inktrail/pkg/trail"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid trail config")

// DefaultTrailConfigPath 嵌入的默认配置路径
const DefaultTrailConfigPath = "data/trail.yaml"

// TrailConfig 墨迹轨迹与叠加层配置（data/trail.yaml）
type TrailConfig struct {
	WindowMs     int      `yaml:"windowMs"`     // 保留窗口（毫秒），默认 1000
	BaseOpacity  *float64 `yaml:"baseOpacity"`  // 线段基础不透明度，默认 0.6；显式 0 表示不绘制
	Accent       string   `yaml:"accent"`       // 墨水颜色，"rgb(r,g,b)" 或 "#rrggbb"
	Neutral      string   `yaml:"neutral"`      // 两阶段淡出的目标颜色
	StrokeWidth  float64  `yaml:"strokeWidth"`  // 基础线宽，默认 2
	StrokeJitter *float64 `yaml:"strokeJitter"` // 线宽抖动上限，默认 1.5；显式 0 表示不抖动
	DotRadius    float64  `yaml:"dotRadius"`    // 纹理点半径，默认 1
	DotOpacity   *float64 `yaml:"dotOpacity"`   // 纹理点基础不透明度，默认 0.4；显式 0 关闭纹理点
	Policy       string   `yaml:"policy"`       // "simple" 或 "two-phase"，默认 simple

	Overlay OverlayConfig `yaml:"overlay"`
}

// OverlayConfig 菜单叠加层与窗口配置
type OverlayConfig struct {
	Title         string  `yaml:"title"`         // 窗口标题
	Width         int     `yaml:"width"`         // 初始窗口宽度，默认 1024
	Height        int     `yaml:"height"`        // 初始窗口高度，默认 768
	Background    string  `yaml:"background"`    // 宿主页面背景色
	Backdrop      string  `yaml:"backdrop"`      // 菜单打开时的遮罩颜色
	BackdropAlpha float64 `yaml:"backdropAlpha"` // 遮罩不透明度，默认 0.92
	BurgerSize    int     `yaml:"burgerSize"`    // 右上角汉堡按钮热区边长（像素），默认 48
}

// DefaultTrailConfig 返回全部使用默认值的配置
func DefaultTrailConfig() *TrailConfig {
	cfg := &TrailConfig{}
	applyTrailDefaults(cfg)
	return cfg
}

// LoadTrailConfig 从 YAML 文件加载配置
//
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*TrailConfig - 应用默认值并通过校验的配置
//	error - 读取、解析或校验失败
func LoadTrailConfig(path string) (*TrailConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trail config file %s: %w", path, err)
	}
	return ParseTrailConfig(data, path)
}

// ResolveTrailConfig 按优先级加载配置：
// 磁盘路径（非空时）> 嵌入的 data/trail.yaml > 内置默认值
func ResolveTrailConfig(path string) (*TrailConfig, error) {
	if path != "" {
		return LoadTrailConfig(path)
	}
	if embedded.Exists(DefaultTrailConfigPath) {
		data, err := embedded.ReadFile(DefaultTrailConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", DefaultTrailConfigPath, err)
		}
		return ParseTrailConfig(data, DefaultTrailConfigPath)
	}
	return DefaultTrailConfig(), nil
}

// ParseTrailConfig 解析 YAML 数据
// source 仅用于错误信息
func ParseTrailConfig(data []byte, source string) (*TrailConfig, error) {
	var cfg TrailConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse trail config YAML from %s: %w", source, err)
	}

	applyTrailDefaults(&cfg)

	if err := validateTrailConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid trail config in %s: %w", source, err)
	}
	return &cfg, nil
}

// applyTrailDefaults 为缺失字段设置默认值
func applyTrailDefaults(cfg *TrailConfig) {
	def := trail.DefaultOptions()

	if cfg.WindowMs == 0 {
		cfg.WindowMs = int(def.Window / time.Millisecond)
	}
	if cfg.BaseOpacity == nil {
		cfg.BaseOpacity = floatPtr(def.BaseOpacity)
	}
	if cfg.Accent == "" {
		cfg.Accent = def.Accent.String()
	}
	if cfg.Neutral == "" {
		cfg.Neutral = def.Neutral.String()
	}
	if cfg.StrokeWidth == 0 {
		cfg.StrokeWidth = def.StrokeWidth
	}
	if cfg.StrokeJitter == nil {
		cfg.StrokeJitter = floatPtr(def.StrokeJitter)
	}
	if cfg.DotRadius == 0 {
		cfg.DotRadius = def.DotRadius
	}
	if cfg.DotOpacity == nil {
		cfg.DotOpacity = floatPtr(def.DotOpacity)
	}
	if cfg.Policy == "" {
		cfg.Policy = def.Policy
	}

	o := &cfg.Overlay
	if o.Title == "" {
		o.Title = "Ink Trail"
	}
	if o.Width == 0 {
		o.Width = 1024
	}
	if o.Height == 0 {
		o.Height = 768
	}
	if o.Background == "" {
		o.Background = "rgb(245,242,235)"
	}
	if o.Backdrop == "" {
		o.Backdrop = "rgb(250,250,248)"
	}
	if o.BackdropAlpha == 0 {
		o.BackdropAlpha = 0.92
	}
	if o.BurgerSize == 0 {
		o.BurgerSize = 48
	}
}

// validateTrailConfig 校验取值范围
func validateTrailConfig(cfg *TrailConfig) error {
	if cfg.WindowMs < 0 {
		return fmt.Errorf("%w: windowMs must be positive, got %d", ErrInvalidConfig, cfg.WindowMs)
	}
	if err := checkUnit("baseOpacity", *cfg.BaseOpacity); err != nil {
		return err
	}
	if err := checkUnit("dotOpacity", *cfg.DotOpacity); err != nil {
		return err
	}
	if err := checkUnit("overlay.backdropAlpha", cfg.Overlay.BackdropAlpha); err != nil {
		return err
	}
	if cfg.StrokeWidth < 0 {
		return fmt.Errorf("%w: strokeWidth must not be negative", ErrInvalidConfig)
	}
	if *cfg.StrokeJitter < 0 {
		return fmt.Errorf("%w: strokeJitter must not be negative", ErrInvalidConfig)
	}
	if cfg.DotRadius < 0 {
		return fmt.Errorf("%w: dotRadius must not be negative", ErrInvalidConfig)
	}
	if cfg.Policy != trail.PolicySimple && cfg.Policy != trail.PolicyTwoPhase {
		return fmt.Errorf("%w: unknown policy %q (want %q or %q)", ErrInvalidConfig, cfg.Policy, trail.PolicySimple, trail.PolicyTwoPhase)
	}
	for name, value := range map[string]string{
		"accent":             cfg.Accent,
		"neutral":            cfg.Neutral,
		"overlay.background": cfg.Overlay.Background,
		"overlay.backdrop":   cfg.Overlay.Backdrop,
	} {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	if cfg.Overlay.Width < 0 || cfg.Overlay.Height < 0 || cfg.Overlay.BurgerSize < 0 {
		return fmt.Errorf("%w: overlay sizes must be positive", ErrInvalidConfig)
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func derefOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, name, v)
	}
	return nil
}

// Options 转换为渲染器参数
func (c *TrailConfig) Options() trail.Options {
	accent, _ := ParseColor(c.Accent)
	neutral, _ := ParseColor(c.Neutral)
	def := trail.DefaultOptions()
	return trail.Options{
		Window:       time.Duration(c.WindowMs) * time.Millisecond,
		BaseOpacity:  derefOr(c.BaseOpacity, def.BaseOpacity),
		Accent:       accent,
		Neutral:      neutral,
		StrokeWidth:  c.StrokeWidth,
		StrokeJitter: derefOr(c.StrokeJitter, def.StrokeJitter),
		DotRadius:    c.DotRadius,
		DotOpacity:   derefOr(c.DotOpacity, def.DotOpacity),
		Policy:       c.Policy,
	}
}

// ParseColor 解析 "rgb(r,g,b)" 或 "#rrggbb"
func ParseColor(s string) (trail.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return trail.Color{}, fmt.Errorf("bad hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return trail.Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return trail.RGB(float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)), nil
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[len("rgb("):len(s)-1], ",")
		if len(parts) != 3 {
			return trail.Color{}, fmt.Errorf("bad rgb color %q", s)
		}
		var ch [3]float64
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return trail.Color{}, fmt.Errorf("bad rgb channel %q in %q", p, s)
			}
			ch[i] = float64(v)
		}
		return trail.RGB(ch[0], ch[1], ch[2]), nil
	}

	return trail.Color{}, fmt.Errorf("unsupported color %q", s)
}
