package systems

import (
	"log"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/utils"
)

// DragSystem 处理物品的指针拖拽
// 统一鼠标和触摸输入：按下拾起、移动跟随、松手交给放置判定
//
// 拖起已放置的物品会立刻释放它占用的格子/槽位并回退计数，
// 这样同一次拖拽把物品放回刚腾出的格子时，该格已经是空格
type DragSystem struct {
	entityManager   *ecs.EntityManager
	gameState       *game.GameState
	placementSystem *PlacementSystem
	gridZoneSystem  *GridZoneSystem

	// dragged 当前被拖拽的物品实体（没有时为 InvalidEntity）
	dragged ecs.EntityID
}

// NewDragSystem 创建拖拽系统
func NewDragSystem(em *ecs.EntityManager, gs *game.GameState, ps *PlacementSystem, gzs *GridZoneSystem) *DragSystem {
	return &DragSystem{
		entityManager:   em,
		gameState:       gs,
		placementSystem: ps,
		gridZoneSystem:  gzs,
	}
}

// DraggedItem 返回当前被拖拽的物品实体ID（渲染高亮用）
func (s *DragSystem) DraggedItem() ecs.EntityID {
	return s.dragged
}

// Update 处理本帧的指针输入
func (s *DragSystem) Update(deltaTime float64) {
	// 暂停或关卡完成后屏蔽拖拽
	if s.gameState.IsPaused || s.gameState.IsLevelCompleted() {
		s.clearHover()
		s.abortDrag()
		return
	}

	pointer := utils.GetPointerState()
	px, py := float64(pointer.X), float64(pointer.Y)

	s.updateHover(px, py)

	if pointer.JustPressed {
		s.TryPickUp(px, py)
	}

	if s.dragged == ecs.InvalidEntity {
		return
	}

	// 拖拽中物品被外部销毁：按自动放弃处理，不报错
	drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, s.dragged)
	if !ok || !s.entityManager.IsAlive(s.dragged) {
		log.Printf("[DragSystem] 拖拽中的物品 %d 已失效，放弃拖拽", s.dragged)
		s.dragged = ecs.InvalidEntity
		return
	}

	if pointer.Pressed {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.dragged); ok {
			pos.X = px + drag.GrabOffsetX
			pos.Y = py + drag.GrabOffsetY
		}
	}

	if pointer.JustReleased {
		s.DropAt(px+drag.GrabOffsetX, py+drag.GrabOffsetY)
	}
}

// TryPickUp 尝试在指定位置拾起物品
//
// 重叠时拾起最上层的物品（绘制在最后的，即实体ID最大的）。
// 拾起已放置的物品会立刻释放占用并回退计数。
//
// 返回是否成功拾起
func (s *DragSystem) TryPickUp(px, py float64) bool {
	if s.dragged != ecs.InvalidEntity {
		return false
	}

	target := s.topmostItemAt(px, py)
	if target == ecs.InvalidEntity {
		return false
	}

	drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, target)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	item, _ := ecs.GetComponent[*components.ItemComponent](s.entityManager, target)

	// 拖起已放置的物品：立刻释放格子/槽位
	if item.Placed {
		s.releasePlacement(target, item)
	}

	drag.Dragging = true
	drag.GrabOffsetX = pos.X - px
	drag.GrabOffsetY = pos.Y - py
	s.dragged = target

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, target); ok {
		sprite.Layer = components.LayerDragging
	}

	log.Printf("[DragSystem] 拾起物品 %d (%s)", target, item.Type)
	return true
}

// DropAt 在指定位置放下当前拖拽的物品
func (s *DragSystem) DropAt(px, py float64) {
	itemID := s.dragged
	s.dragged = ecs.InvalidEntity
	if itemID == ecs.InvalidEntity {
		return
	}

	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, itemID); ok {
		drag.Dragging = false
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, itemID); ok {
		sprite.Layer = components.LayerItem
	}

	s.placementSystem.ResolveDrop(itemID, px, py)
}

// releasePlacement 释放物品占用的格子/槽位并回退计数
func (s *DragSystem) releasePlacement(itemID ecs.EntityID, item *components.ItemComponent) {
	zoneID := item.ZoneEntity

	if ecs.HasComponent[*components.GridZoneComponent](s.entityManager, zoneID) {
		if err := s.gridZoneSystem.ReleaseCell(zoneID, item.Col, item.Row); err != nil {
			log.Printf("[DragSystem] 释放格子失败: %v", err)
		}
	} else if slot, ok := ecs.GetComponent[*components.SlotZoneComponent](s.entityManager, zoneID); ok {
		if slot.Occupant == itemID {
			slot.Occupant = ecs.InvalidEntity
		}
	}

	item.Placed = false
	item.ZoneEntity = ecs.InvalidEntity
	s.gameState.OnItemRemoved()
}

// abortDrag 放弃进行中的拖拽（暂停/完成时调用），物品飞回原位
func (s *DragSystem) abortDrag() {
	if s.dragged == ecs.InvalidEntity {
		return
	}
	s.DropAt(-1e9, -1e9) // 落点在所有放置区之外，必然按拒绝回退
}

// topmostItemAt 返回命中点上最上层的可拖拽物品
// 实体ID越大创建越晚、绘制越靠上，取命中者中ID最大的；
// 吸附动画进行中的物品不可拾起
func (s *DragSystem) topmostItemAt(px, py float64) ecs.EntityID {
	itemIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.ItemComponent](),
		ecs.TypeOf[*components.DraggableComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	top := ecs.InvalidEntity
	for _, id := range itemIDs {
		if ecs.HasComponent[*components.SnapMotionComponent](s.entityManager, id) {
			continue
		}
		drag, _ := ecs.GetComponent[*components.DraggableComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if utils.PointInRect(px, py, pos.X, pos.Y, drag.Width, drag.Height) && id > top {
			top = id
		}
	}
	return top
}

// updateHover 更新所有物品的悬停高亮状态
func (s *DragSystem) updateHover(px, py float64) {
	s.clearHover()

	top := s.topmostItemAt(px, py)
	if top == ecs.InvalidEntity {
		return
	}
	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, top); ok {
		drag.Hovered = true
	}
}

// clearHover 清除所有物品的悬停状态
func (s *DragSystem) clearHover() {
	itemIDs := s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.DraggableComponent]())
	for _, id := range itemIDs {
		if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, id); ok {
			drag.Hovered = false
		}
	}
}
