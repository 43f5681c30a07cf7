package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/inktrail/pkg/app"
	"github.com/decker502/inktrail/pkg/embedded"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "trail.yaml 路径（默认使用嵌入配置）")
	policy     = flag.String("policy", "", "本次运行的淡出策略：simple 或 two-phase")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Policy:     *policy,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	overlay := gameApp.Config().Overlay
	ebiten.SetWindowSize(overlay.Width, overlay.Height)
	ebiten.SetWindowTitle(overlay.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	// 窗口关闭时通过 Saveable 保存设置
	if err := ebiten.RunGame(&closingGame{App: gameApp}); err != nil {
		log.Fatal(err)
	}
}

// closingGame 在窗口关闭请求时保存设置并结束主循环
type closingGame struct {
	*app.App
}

func (g *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.GetSceneManager().Shutdown()
		return ebiten.Termination
	}
	return g.App.Update()
}
