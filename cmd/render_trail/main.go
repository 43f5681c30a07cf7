// cmd/render_trail/main.go
// 墨迹轨迹离屏回放工具 - 按脚本回放指针路径，把指定时刻的画面保存为 PNG
//
// 用法：
//
//	go run ./cmd/render_trail -script data/replays/scribble.yaml -at 300,600,900,1500 -out /tmp/trail
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/decker502/inktrail/pkg/config"
	"github.com/decker502/inktrail/pkg/surface"
	"github.com/decker502/inktrail/pkg/trail"
)

var (
	// 命令行参数
	scriptPath = flag.String("script", "data/replays/scribble.yaml", "回放脚本路径")
	configPath = flag.String("config", "", "trail.yaml 路径（默认使用内置默认值）")
	policy     = flag.String("policy", "", "淡出策略：simple 或 two-phase（覆盖配置）")
	at         = flag.String("at", "300,600,900,1500", "截取时间点（毫秒，逗号分隔）")
	outDir     = flag.String("out", "trail_frames", "PNG 输出目录")
	width      = flag.Int("width", 1024, "画布宽度")
	height     = flag.Int("height", 768, "画布高度")
	seed       = flag.Uint64("seed", 1, "线宽抖动随机种子")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if *verbose {
		gg.SetLogger(slog.Default())
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "render_trail: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultTrailConfig()
	if *configPath != "" {
		loaded, err := config.LoadTrailConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	opts := cfg.Options()
	if *policy != "" {
		opts.Policy = *policy
	}
	if _, err := trail.PolicyByName(opts.Policy, opts); err != nil {
		return err
	}

	script, err := loadScript(*scriptPath)
	if err != nil {
		return err
	}
	times, err := parseTimes(*at)
	if err != nil {
		return err
	}

	canvas, err := surface.NewCanvas(*width, *height)
	if err != nil {
		return err
	}
	defer canvas.Close()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	fmt.Printf("回放 %s: %d 个采样, 策略 %s\n", *scriptPath, len(script.Samples), opts.Policy)
	return runReplay(script, times, replayConfig{
		Options: opts,
		Surface: canvas,
		Rand:    rand.New(rand.NewPCG(*seed, *seed)),
		Width:   *width,
		Height:  *height,
	}, func(ms int, stats trail.FrameStats) error {
		path := filepath.Join(*outDir, fmt.Sprintf("frame_%d.png", ms))
		if err := canvas.SavePNG(path); err != nil {
			return err
		}
		fmt.Printf("  %5dms: live=%d segments=%d dots=%d purged=%d -> %s\n",
			ms, stats.Live, stats.Segments, stats.Dots, stats.Purged, path)
		return nil
	})
}
