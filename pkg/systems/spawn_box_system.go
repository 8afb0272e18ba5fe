package systems

import (
	"log"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/entities"
	"github.com/decker502/sortbox/pkg/types"
)

// SpawnBoxSystem 纸箱（物品容器）系统
// 按关卡配置的顺序逐个吐出物品：箱口的物品被正确放置后，
// 下一个物品才出现在箱口。被拒绝而飞回的物品仍算箱口的物品，
// 不会和新物品重叠
type SpawnBoxSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpawnBoxSystem 创建纸箱系统
func NewSpawnBoxSystem(em *ecs.EntityManager) *SpawnBoxSystem {
	return &SpawnBoxSystem{entityManager: em}
}

// Update 检查每个纸箱是否需要吐出下一个物品
func (s *SpawnBoxSystem) Update(deltaTime float64) {
	boxIDs := s.boxEntities()
	for _, boxID := range boxIDs {
		box, _ := ecs.GetComponent[*components.SpawnBoxComponent](s.entityManager, boxID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, boxID)

		if !s.presentedConsumed(box) || len(box.Queue) == 0 {
			continue
		}

		// 吐出下一个物品
		itemType := box.Queue[0]
		box.Queue = box.Queue[1:]

		itemID := entities.CreateItem(s.entityManager, itemType, pos.X, pos.Y+box.MouthOffsetY)
		box.Presented = itemID
		log.Printf("[SpawnBoxSystem] 纸箱 %d 吐出物品 %d (%s)，队列剩余 %d", boxID, itemID, itemType, len(box.Queue))
	}
}

// HasMoreItems 纸箱里是否还有未放置的物品（含箱口等待中的）
func (s *SpawnBoxSystem) HasMoreItems(boxID ecs.EntityID) bool {
	return s.RemainingCount(boxID) > 0
}

// RemainingCount 返回尚未正确放置的物品数量（队列 + 箱口待取）
func (s *SpawnBoxSystem) RemainingCount(boxID ecs.EntityID) int {
	box, ok := ecs.GetComponent[*components.SpawnBoxComponent](s.entityManager, boxID)
	if !ok {
		return 0
	}

	count := len(box.Queue)
	if !s.presentedConsumed(box) {
		count++
	}
	return count
}

// ResetToInitialState 恢复纸箱到关卡初始状态（重新开始关卡用）
// 销毁所有已吐出的物品，恢复物品队列
func (s *SpawnBoxSystem) ResetToInitialState(boxID ecs.EntityID) {
	box, ok := ecs.GetComponent[*components.SpawnBoxComponent](s.entityManager, boxID)
	if !ok {
		return
	}

	// 销毁所有物品实体（本关所有物品都源于纸箱）
	itemIDs := s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.ItemComponent]())
	for _, id := range itemIDs {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.FlushDestroyed()

	box.Queue = append([]types.ItemType(nil), box.InitialQueue...)
	box.Presented = ecs.InvalidEntity

	log.Printf("[SpawnBoxSystem] 纸箱 %d 重置，队列恢复为 %d 个物品", boxID, len(box.Queue))
}

// presentedConsumed 箱口物品是否已被"消耗"（已放置或已不存在）
// true 表示箱口空出，可以吐下一个
func (s *SpawnBoxSystem) presentedConsumed(box *components.SpawnBoxComponent) bool {
	if box.Presented == ecs.InvalidEntity {
		return true
	}
	item, ok := ecs.GetComponent[*components.ItemComponent](s.entityManager, box.Presented)
	if !ok || !s.entityManager.IsAlive(box.Presented) {
		return true
	}
	return item.Placed
}

// boxEntities 查询所有纸箱实体
func (s *SpawnBoxSystem) boxEntities() []ecs.EntityID {
	return s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SpawnBoxComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
}
