package entities

import (
	"fmt"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// CreateZone 按关卡配置创建一个放置区实体
// 配置已经过 config 层校验，这里只做类型分发
//
// 返回: 创建的实体ID
func CreateZone(manager *ecs.EntityManager, zc config.ZoneConfig) (ecs.EntityID, error) {
	switch zc.Kind {
	case config.ZoneKindGrid:
		return CreateGridZone(manager, zc), nil
	case config.ZoneKindSlot:
		return CreateSlotZone(manager, zc), nil
	default:
		return ecs.InvalidEntity, fmt.Errorf("unknown zone kind %q", zc.Kind)
	}
}

// CreateGridZone 创建网格放置区实体
// 占用表在这里一次性分配好（Rows x Cols，全空）
func CreateGridZone(manager *ecs.EntityManager, zc config.ZoneConfig) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: zc.X, Y: zc.Y})

	occupancy := make([][]ecs.EntityID, zc.Rows)
	for row := range occupancy {
		occupancy[row] = make([]ecs.EntityID, zc.Cols)
	}

	// 校验保证 AcceptAny 为 false 时 Accept 必然可解析
	acceptType, _ := types.ParseItemType(zc.Accept)

	manager.AddComponent(id, &components.GridZoneComponent{
		Accept:            acceptType,
		RequireExactMatch: !zc.AcceptAny,
		Rows:              zc.Rows,
		Cols:              zc.Cols,
		CellWidth:         zc.CellWidth,
		CellHeight:        zc.CellHeight,
		SpacingX:          zc.SpacingX,
		SpacingY:          zc.SpacingY,
		Isometric:         zc.Isometric,
		IsoTileWidth:      zc.IsoTileWidth,
		IsoTileHeight:     zc.IsoTileHeight,
		IsoColumnYOffset:  zc.IsoColumnYOffset,
		Label:             zc.Label,
		Occupancy:         occupancy,
	})

	return id
}

// CreateSlotZone 创建单槽放置区实体
func CreateSlotZone(manager *ecs.EntityManager, zc config.ZoneConfig) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.PositionComponent{X: zc.X, Y: zc.Y})

	acceptType, _ := types.ParseItemType(zc.Accept)

	manager.AddComponent(id, &components.SlotZoneComponent{
		Accept:            acceptType,
		RequireExactMatch: !zc.AcceptAny,
		Width:             zc.Width,
		Height:            zc.Height,
		Label:             zc.Label,
		Occupant:          ecs.InvalidEntity,
	})

	return id
}
