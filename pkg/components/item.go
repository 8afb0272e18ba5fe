package components

import (
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// ItemComponent 标识实体为可分拣物品
// 记录物品类型和当前的放置状态
//
// 不变式：一个物品同一时刻至多占用一个格子或槽位；
// Placed 为 true 时 ZoneEntity 必须有效，反之 ZoneEntity 为 InvalidEntity
type ItemComponent struct {
	// Type 物品类型（封闭枚举，加载关卡时从配置解析）
	Type types.ItemType

	// Placed 物品是否已正确放入某个放置区
	Placed bool

	// ZoneEntity 当前占用的放置区实体ID（未放置时为 InvalidEntity）
	ZoneEntity ecs.EntityID

	// Row/Col 在网格放置区中占用的格子坐标（槽位放置区恒为 0,0）
	Row int
	Col int
}
