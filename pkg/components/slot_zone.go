package components

import (
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// SlotZoneComponent 单槽放置区（挂钩、托盘）
// 至多容纳一个物品，物品锚点即放置区中心
//
// 不变式：occupied ⇔ Occupant != ecs.InvalidEntity
type SlotZoneComponent struct {
	// Accept 本槽位接受的物品类型
	Accept types.ItemType
	// RequireExactMatch 为 false 时接受任意类型物品
	RequireExactMatch bool

	Width  float64 // 槽位命中区域宽度（像素）
	Height float64 // 槽位命中区域高度（像素）

	// Label 槽位标题（渲染用，如 "钥匙钩"）
	Label string

	// Occupant 当前占用槽位的物品实体ID（空槽为 InvalidEntity）
	Occupant ecs.EntityID
}
