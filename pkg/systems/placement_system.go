package systems

import (
	"log"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/utils"
)

// RejectReason 放置被拒绝的原因
// 仅用于日志和调试工具：对玩家来说所有拒绝表现一致（物品飞回原位）
type RejectReason int

const (
	// RejectNone 未被拒绝（放置成功）
	RejectNone RejectReason = iota
	// RejectInvalidDrop 落点不在任何放置区内，或物品引用已失效
	RejectInvalidDrop
	// RejectNoFreeCell 网格放置区已满
	RejectNoFreeCell
	// RejectTypeMismatch 物品类型与放置区要求不符
	RejectTypeMismatch
	// RejectOccupiedSlot 单槽放置区已被其他物品占用
	RejectOccupiedSlot
)

// String 返回拒绝原因的字符串表示
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectInvalidDrop:
		return "invalid drop"
	case RejectNoFreeCell:
		return "no free cell"
	case RejectTypeMismatch:
		return "type mismatch"
	case RejectOccupiedSlot:
		return "slot occupied"
	default:
		return "unknown"
	}
}

// DropResult 单次放置判定的结果
type DropResult struct {
	Accepted bool         // 是否接受
	Reason   RejectReason // 拒绝原因（Accepted 为 true 时为 RejectNone）

	ZoneEntity ecs.EntityID // 接受放置的放置区实体
	Row, Col   int          // 网格放置区中选中的格子（槽位恒为 0,0）

	AnchorX, AnchorY float64 // 物品吸附的目标锚点（世界坐标）
}

// PlacementSystem 放置判定系统
// 物品被松手时决定接受/拒绝，以及放进哪个格子
//
// 每次判定是无状态的：所有占用检查都读当前占用表，
// 物品拖起时释放的格子在同一次拖拽的落下判定中已经是空格
//
// 计数采用事件驱动：接受时直接通知 GameState 做 O(1) 递增，
// 不做逐帧全量扫描
type PlacementSystem struct {
	entityManager  *ecs.EntityManager
	gridZoneSystem *GridZoneSystem
	gameState      *game.GameState
}

// NewPlacementSystem 创建放置判定系统
func NewPlacementSystem(em *ecs.EntityManager, gzs *GridZoneSystem, gs *game.GameState) *PlacementSystem {
	return &PlacementSystem{
		entityManager:  em,
		gridZoneSystem: gzs,
		gameState:      gs,
	}
}

// ResolveDrop 判定一次放置
//
// 判定流程（任何一步失败都整体拒绝，不存在部分放置）：
//  1. 物品引用失效 → 拒绝（视为 InvalidDrop，不抛错）
//  2. 落点定位到放置区；找不到 → InvalidDrop
//  3. 单槽放置区已被其他物品占用 → OccupiedSlot
//  4. 类型不匹配（且放置区要求精确匹配）→ TypeMismatch
//  5. 网格放置区找最近空格；全满 → NoFreeCell
//  6. 接受：写入占用、更新物品状态、启动吸附动画、通知计数
//  7. 拒绝：物品飞回最后稳定位置，放置区状态不变
func (s *PlacementSystem) ResolveDrop(itemID ecs.EntityID, worldX, worldY float64) DropResult {
	item, ok := ecs.GetComponent[*components.ItemComponent](s.entityManager, itemID)
	if !ok || !s.entityManager.IsAlive(itemID) {
		// 拖拽过程中物品被外部销毁：按自动拒绝处理，无可回退的实体
		log.Printf("[PlacementSystem] 物品 %d 已失效，放置取消", itemID)
		return DropResult{Reason: RejectInvalidDrop}
	}

	// 网格放置区优先于槽位检查落点（按实体ID顺序，先建先查）
	if zoneID, found := s.findGridZoneAt(worldX, worldY); found {
		return s.resolveGridDrop(itemID, item, zoneID, worldX, worldY)
	}
	if zoneID, found := s.findSlotZoneAt(worldX, worldY); found {
		return s.resolveSlotDrop(itemID, item, zoneID)
	}

	return s.reject(itemID, RejectInvalidDrop)
}

// resolveGridDrop 网格放置区的接受路径
func (s *PlacementSystem) resolveGridDrop(itemID ecs.EntityID, item *components.ItemComponent, zoneID ecs.EntityID, worldX, worldY float64) DropResult {
	zone, _ := ecs.GetComponent[*components.GridZoneComponent](s.entityManager, zoneID)

	if zone.RequireExactMatch && item.Type != zone.Accept {
		return s.reject(itemID, RejectTypeMismatch)
	}

	col, row, found := s.gridZoneSystem.FindNearestFreeCell(zoneID, worldX, worldY)
	if !found {
		return s.reject(itemID, RejectNoFreeCell)
	}

	if err := s.gridZoneSystem.OccupyCell(zoneID, col, row, itemID); err != nil {
		// FindNearestFreeCell 只返回空格，这里失败说明状态被并发修改，
		// 单线程契约下不应发生
		log.Printf("[PlacementSystem] 占用格子失败: %v", err)
		return s.reject(itemID, RejectInvalidDrop)
	}

	anchorX, anchorY, _ := s.gridZoneSystem.CellWorldPosition(zoneID, col, row)
	s.accept(itemID, item, zoneID, col, row, anchorX, anchorY)

	return DropResult{
		Accepted:   true,
		ZoneEntity: zoneID,
		Row:        row,
		Col:        col,
		AnchorX:    anchorX,
		AnchorY:    anchorY,
	}
}

// resolveSlotDrop 单槽放置区的接受路径
func (s *PlacementSystem) resolveSlotDrop(itemID ecs.EntityID, item *components.ItemComponent, zoneID ecs.EntityID) DropResult {
	slot, _ := ecs.GetComponent[*components.SlotZoneComponent](s.entityManager, zoneID)
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, zoneID)
	if !ok {
		return s.reject(itemID, RejectInvalidDrop)
	}

	// 已被其他物品占用（自己拖起时已释放，不会挡住自己）
	if slot.Occupant != ecs.InvalidEntity && slot.Occupant != itemID {
		return s.reject(itemID, RejectOccupiedSlot)
	}
	if slot.RequireExactMatch && item.Type != slot.Accept {
		return s.reject(itemID, RejectTypeMismatch)
	}

	slot.Occupant = itemID
	s.accept(itemID, item, zoneID, 0, 0, pos.X, pos.Y)

	return DropResult{
		Accepted:   true,
		ZoneEntity: zoneID,
		AnchorX:    pos.X,
		AnchorY:    pos.Y,
	}
}

// accept 提交放置：更新物品状态、回滚快照和计数，并启动吸附动画
// 占用写入由调用方完成，这里保证物品侧的字段一起更新
func (s *PlacementSystem) accept(itemID ecs.EntityID, item *components.ItemComponent, zoneID ecs.EntityID, col, row int, anchorX, anchorY float64) {
	item.Placed = true
	item.ZoneEntity = zoneID
	item.Row = row
	item.Col = col

	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, itemID); ok {
		drag.HomeX = anchorX
		drag.HomeY = anchorY
	}

	s.startSnap(itemID, anchorX, anchorY, config.SnapAcceptDuration, true)
	s.gameState.OnItemPlaced()

	log.Printf("[PlacementSystem] 物品 %d (%s) 放入放置区 %d 格 (%d, %d)", itemID, item.Type, zoneID, col, row)
}

// reject 拒绝放置：物品飞回最后稳定位置，放置区状态不变
func (s *PlacementSystem) reject(itemID ecs.EntityID, reason RejectReason) DropResult {
	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, itemID); ok {
		s.startSnap(itemID, drag.HomeX, drag.HomeY, config.SnapRejectDuration, false)
	}

	log.Printf("[PlacementSystem] 放置被拒绝: 物品 %d, 原因: %s", itemID, reason)
	return DropResult{Reason: reason}
}

// startSnap 为物品挂上吸附飞行动画
func (s *PlacementSystem) startSnap(itemID ecs.EntityID, toX, toY, duration float64, bounce bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, itemID)
	if !ok {
		return
	}

	s.entityManager.AddComponent(itemID, &components.SnapMotionComponent{
		FromX:    pos.X,
		FromY:    pos.Y,
		ToX:      toX,
		ToY:      toY,
		Duration: duration,
		Bounce:   bounce,
	})
}

// findGridZoneAt 定位包含落点的网格放置区
func (s *PlacementSystem) findGridZoneAt(worldX, worldY float64) (ecs.EntityID, bool) {
	zoneIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.GridZoneComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	for _, zoneID := range zoneIDs {
		cx, cy, w, h, ok := s.gridZoneSystem.ZoneBounds(zoneID)
		if ok && utils.PointInRect(worldX, worldY, cx, cy, w, h) {
			return zoneID, true
		}
	}
	return ecs.InvalidEntity, false
}

// findSlotZoneAt 定位包含落点的单槽放置区
func (s *PlacementSystem) findSlotZoneAt(worldX, worldY float64) (ecs.EntityID, bool) {
	zoneIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SlotZoneComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	for _, zoneID := range zoneIDs {
		slot, _ := ecs.GetComponent[*components.SlotZoneComponent](s.entityManager, zoneID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, zoneID)
		if utils.PointInRect(worldX, worldY, pos.X, pos.Y, slot.Width, slot.Height) {
			return zoneID, true
		}
	}
	return ecs.InvalidEntity, false
}
