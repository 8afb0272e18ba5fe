// verify_placement 无头模式验证放置判定流程
// 按关卡配置搭建实体和系统，把每个物品依次丢到它该去的放置区中心，
// 打印每次判定结果，最后检查关卡是否恰好完成
//
// 用法: go run ./cmd/verify_placement [关卡文件]
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/entities"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/systems"
	"github.com/decker502/sortbox/pkg/types"
)

func main() {
	log.SetOutput(io.Discard)

	levelPath := "data/levels/level-1-1.yaml"
	if len(os.Args) > 1 {
		levelPath = os.Args[1]
	}

	cfg, err := config.LoadLevelConfig(levelPath)
	if err != nil {
		fmt.Printf("关卡加载失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("关卡 %s: %d 个物品, %d 个放置区\n\n", cfg.ID, cfg.TotalItems(), len(cfg.Zones))

	em := ecs.NewEntityManager()
	gs := game.GetGameState()
	gs.ResetForLevel(cfg.ID, cfg.TotalItems(), cfg.PointsPerPlacement)

	zoneIDs := make([]ecs.EntityID, 0, len(cfg.Zones))
	for _, zc := range cfg.Zones {
		zoneID, err := entities.CreateZone(em, zc)
		if err != nil {
			fmt.Printf("放置区创建失败: %v\n", err)
			os.Exit(1)
		}
		zoneIDs = append(zoneIDs, zoneID)
	}

	gridZoneSystem := systems.NewGridZoneSystem(em)
	placementSystem := systems.NewPlacementSystem(em, gridZoneSystem, gs)

	// 每个物品丢到第一个能接受它的放置区中心
	accepted, rejected := 0, 0
	for _, group := range cfg.Items {
		for i := 0; i < group.Count; i++ {
			itemID := createItemForGroup(em, group.Type)
			item, _ := ecs.GetComponent[*components.ItemComponent](em, itemID)

			x, y, found := targetFor(em, gridZoneSystem, zoneIDs, item)
			if !found {
				fmt.Printf("  %s#%d: 找不到可用放置区\n", group.Type, i+1)
				rejected++
				continue
			}

			result := placementSystem.ResolveDrop(itemID, x, y)
			if result.Accepted {
				fmt.Printf("  %s#%d → 放置区 %d 格 (%d, %d)\n", group.Type, i+1, result.ZoneEntity, result.Col, result.Row)
				accepted++
			} else {
				fmt.Printf("  %s#%d → 拒绝: %s\n", group.Type, i+1, result.Reason)
				rejected++
			}
		}
	}

	completed := gs.CheckCompletion()
	fmt.Printf("\n接受 %d, 拒绝 %d, 关卡完成: %v, 得分: %d\n", accepted, rejected, completed, gs.CurrentScore())

	if !completed || rejected > 0 {
		os.Exit(1)
	}
}

// createItemForGroup 直接创建物品实体（跳过纸箱流程）
// 配置已校验，类型解析不会失败
func createItemForGroup(em *ecs.EntityManager, typeName string) ecs.EntityID {
	itemType, _ := types.ParseItemType(typeName)
	return entities.CreateItem(em, itemType, 512, 600)
}

// targetFor 找到第一个能接受该物品且还有空位的放置区，返回其中心坐标
func targetFor(em *ecs.EntityManager, gzs *systems.GridZoneSystem, zoneIDs []ecs.EntityID, item *components.ItemComponent) (float64, float64, bool) {
	for _, zoneID := range zoneIDs {
		if zone, ok := ecs.GetComponent[*components.GridZoneComponent](em, zoneID); ok {
			if zone.RequireExactMatch && zone.Accept != item.Type {
				continue
			}
			if gzs.IsFull(zoneID) {
				continue
			}
			cx, cy, _, _, _ := gzs.ZoneBounds(zoneID)
			return cx, cy, true
		}
		if slot, ok := ecs.GetComponent[*components.SlotZoneComponent](em, zoneID); ok {
			if slot.RequireExactMatch && slot.Accept != item.Type {
				continue
			}
			if slot.Occupant != ecs.InvalidEntity {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, zoneID)
			return pos.X, pos.Y, true
		}
	}
	return 0, 0, false
}
