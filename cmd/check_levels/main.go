// check_levels 校验 data/levels 下的全部关卡配置
// 在不启动游戏的情况下检查 YAML 能否解析、容量是否足够
//
// 用法: go run ./cmd/check_levels [关卡目录]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/decker502/sortbox/pkg/config"
)

func main() {
	levelDir := "data/levels"
	if len(os.Args) > 1 {
		levelDir = os.Args[1]
	}

	matches, err := filepath.Glob(filepath.Join(levelDir, "level-*.yaml"))
	if err != nil || len(matches) == 0 {
		fmt.Printf("未找到关卡文件: %s\n", levelDir)
		os.Exit(1)
	}
	sort.Strings(matches)

	failed := 0
	for _, path := range matches {
		cfg, err := config.LoadLevelConfig(path)
		if err != nil {
			fmt.Printf("FAIL: %s\n      %v\n", path, err)
			failed++
			continue
		}

		capacity := 0
		for _, z := range cfg.Zones {
			capacity += z.ZoneCapacity()
		}
		fmt.Printf("OK:   %s - ID=%s 物品=%d 放置区=%d 总容量=%d\n",
			path, cfg.ID, cfg.TotalItems(), len(cfg.Zones), capacity)
	}

	if failed > 0 {
		fmt.Printf("\n%d 个关卡配置有错误\n", failed)
		os.Exit(1)
	}
	fmt.Printf("\n全部 %d 个关卡配置有效\n", len(matches))
}
