package entities

import (
	"image/color"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// 每种物品类型的填充颜色
// 颜色即物品的主要视觉区分（不加载图片资源）
var itemColors = map[types.ItemType]color.RGBA{
	types.ItemBook: {R: 66, G: 110, B: 180, A: 255},  // 蓝
	types.ItemToy:  {R: 220, G: 90, B: 90, A: 255},   // 红
	types.ItemTool: {R: 120, G: 120, B: 130, A: 255}, // 灰
	types.ItemGem:  {R: 150, G: 80, B: 200, A: 255},  // 紫
	types.ItemKey:  {R: 210, G: 170, B: 60, A: 255},  // 金
	types.ItemCoin: {R: 235, G: 200, B: 90, A: 255},  // 亮金
}

// 每种物品类型的单字标签（画在方块左上角）
var itemLabels = map[types.ItemType]string{
	types.ItemBook: "书",
	types.ItemToy:  "玩",
	types.ItemTool: "工",
	types.ItemGem:  "宝",
	types.ItemKey:  "钥",
	types.ItemCoin: "币",
}

// CreateItem 创建一个待分拣的物品实体
// 参数:
//   - manager: EntityManager 实例
//   - itemType: 物品类型
//   - x, y: 初始位置（世界坐标，通常是纸箱箱口）
//
// 返回: 创建的实体ID
func CreateItem(manager *ecs.EntityManager, itemType types.ItemType, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: x, Y: y})

	clr, ok := itemColors[itemType]
	if !ok {
		clr = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
	manager.AddComponent(id, &components.SpriteComponent{
		Width:  config.DefaultItemSize,
		Height: config.DefaultItemSize,
		Color:  clr,
		Label:  itemLabels[itemType],
		Layer:  components.LayerItem,
	})

	manager.AddComponent(id, &components.ItemComponent{
		Type:       itemType,
		ZoneEntity: ecs.InvalidEntity,
	})

	// 初始"家"就是出生点：第一次被拒绝时飞回箱口
	manager.AddComponent(id, &components.DraggableComponent{
		Width:  config.DefaultItemSize,
		Height: config.DefaultItemSize,
		HomeX:  x,
		HomeY:  y,
	})

	return id
}
