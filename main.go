package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sortbox/pkg/app"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/embedded"
	"github.com/decker502/sortbox/pkg/game"
)

func main() {
	levelFlag := flag.String("level", "", "直接进入指定关卡 (如 1-2)，跳过主菜单")
	verboseFlag := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verboseFlag,
		Level:   *levelFlag,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("分拣工坊")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatalf("游戏运行错误: %v", err)
	}

	// 窗口关闭后：当前场景如需保存则执行保存
	if scene := gameApp.GetSceneManager().GetCurrentScene(); scene != nil {
		if saveable, ok := scene.(game.Saveable); ok && saveable.SaveOnExit() {
			if sm := game.GetGameState().GetSaveManager(); sm != nil {
				if err := sm.Save(); err != nil {
					log.Printf("[Main] 退出保存失败: %v", err)
				}
			}
		}
	}
}
