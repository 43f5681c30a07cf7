package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/inktrail/pkg/events"
	"github.com/decker502/inktrail/pkg/frame"
	"github.com/decker502/inktrail/pkg/trail"
)

// Sample 一次指针采样
type Sample struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	T int     `yaml:"t"` // 毫秒
}

// Script 回放脚本
type Script struct {
	Samples []Sample `yaml:"samples"`
}

// loadScript 读取并校验回放脚本
func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return parseScript(data)
}

// parseScript 解析脚本；采样时间必须非负且不递减
func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(s.Samples) == 0 {
		return nil, fmt.Errorf("script has no samples")
	}
	prev := 0
	for i, smp := range s.Samples {
		if smp.T < 0 {
			return nil, fmt.Errorf("sample %d: negative time %d", i, smp.T)
		}
		if smp.T < prev {
			return nil, fmt.Errorf("sample %d: time %d goes backwards (previous %d)", i, smp.T, prev)
		}
		prev = smp.T
	}
	return &s, nil
}

// parseTimes 解析逗号分隔的毫秒时间点，返回升序结果
func parseTimes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("bad capture time %q", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no capture times")
	}
	sort.Ints(out)
	return out, nil
}

// replayConfig 一次回放的参数
type replayConfig struct {
	Options trail.Options
	Surface trail.Surface
	Rand    trail.Rand
	Width   int
	Height  int
}

// frameFunc 每个截取时间点在重绘后调用
type frameFunc func(ms int, stats trail.FrameStats) error

// runReplay 用手动时钟回放脚本
//
// 渲染器在 t=0 挂载；每个截取时间点之前的采样先按各自时间发布，
// 然后时钟拨到截取时间，帧循环推进一次。
func runReplay(script *Script, times []int, cfg replayConfig, onFrame frameFunc) error {
	clock := &trail.ManualClock{}
	loop := frame.NewLoop()
	bus := events.NewBus()

	r := trail.New(cfg.Options, trail.Deps{
		Surface:        cfg.Surface,
		Events:         bus,
		Frames:         loop,
		Clock:          clock,
		Rand:           cfg.Rand,
		ViewportWidth:  cfg.Width,
		ViewportHeight: cfg.Height,
	})
	r.Mount()
	if !r.Mounted() {
		return fmt.Errorf("renderer did not mount")
	}
	defer r.Unmount()

	next := 0
	for _, at := range times {
		for next < len(script.Samples) && script.Samples[next].T <= at {
			smp := script.Samples[next]
			clock.Set(ms(smp.T))
			bus.EmitPointerMove(smp.X, smp.Y)
			next++
		}
		clock.Set(ms(at))
		if loop.Tick() == 0 {
			return fmt.Errorf("no frame scheduled at %dms", at)
		}
		if err := onFrame(at, r.LastFrame()); err != nil {
			return err
		}
	}
	return nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
