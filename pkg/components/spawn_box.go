package components

import (
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// SpawnBoxComponent 纸箱（物品出生容器）
// 按关卡配置的顺序逐个吐出待分拣物品：
// 箱口的物品被拖走或放好后，下一个物品才会出现
type SpawnBoxComponent struct {
	// Queue 尚未吐出的物品类型队列（按配置顺序）
	Queue []types.ItemType

	// InitialQueue 初始队列副本，Reset 时恢复
	InitialQueue []types.ItemType

	// Presented 当前摆在箱口等待拖拽的物品实体ID
	// 没有待取物品时为 InvalidEntity
	Presented ecs.EntityID

	// MouthOffsetY 箱口锚点相对箱子中心的Y偏移（像素）
	MouthOffsetY float64
}
