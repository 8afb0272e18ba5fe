package entities

import (
	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// CreateSpawnBox 按关卡配置创建纸箱实体
// 物品队列按 items 声明顺序展开（每组展开为 Count 个同类型物品）
//
// 返回: 创建的实体ID
func CreateSpawnBox(manager *ecs.EntityManager, cfg *config.LevelConfig) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{
		X: cfg.Spawn.X,
		Y: cfg.Spawn.Y,
	})

	queue := buildItemQueue(cfg)
	manager.AddComponent(id, &components.SpawnBoxComponent{
		Queue:        queue,
		InitialQueue: append([]types.ItemType(nil), queue...),
		Presented:    ecs.InvalidEntity,
		MouthOffsetY: config.SpawnBoxMouthOffsetY,
	})

	return id
}

// buildItemQueue 把物品分组配置展开成逐个吐出的队列
// 配置已校验，类型解析不会失败
func buildItemQueue(cfg *config.LevelConfig) []types.ItemType {
	queue := make([]types.ItemType, 0, cfg.TotalItems())
	for _, group := range cfg.Items {
		itemType, _ := types.ParseItemType(group.Type)
		for i := 0; i < group.Count; i++ {
			queue = append(queue, itemType)
		}
	}
	return queue
}
