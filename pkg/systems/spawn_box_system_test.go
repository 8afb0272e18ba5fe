package systems

import (
	"testing"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/entities"
)

// newTestBox 创建一个装有 book x2, toy x1 的纸箱
func newTestBox(em *ecs.EntityManager) ecs.EntityID {
	return entities.CreateSpawnBox(em, &config.LevelConfig{
		ID:    "test",
		Spawn: config.SpawnConfig{X: 512, Y: 648},
		Items: []config.ItemGroupConfig{
			{Type: "book", Count: 2},
			{Type: "toy", Count: 1},
		},
	})
}

// TestSpawnBoxPresentsFirstItem 测试首次更新吐出第一个物品
func TestSpawnBoxPresentsFirstItem(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewSpawnBoxSystem(em)
	boxID := newTestBox(em)

	system.Update(1.0 / 60.0)

	box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
	if box.Presented == ecs.InvalidEntity {
		t.Fatal("Expected an item at the box mouth")
	}
	if len(box.Queue) != 2 {
		t.Errorf("Expected 2 items left in queue, got %d", len(box.Queue))
	}

	// 物品出现在箱口锚点
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, box.Presented)
	if pos.X != 512 || pos.Y != 648+box.MouthOffsetY {
		t.Errorf("Expected item at box mouth (512, %f), got (%f, %f)", 648+box.MouthOffsetY, pos.X, pos.Y)
	}
}

// TestSpawnBoxWaitsForPlacement 测试箱口物品未消耗时不吐新物品
func TestSpawnBoxWaitsForPlacement(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewSpawnBoxSystem(em)
	boxID := newTestBox(em)

	system.Update(1.0 / 60.0)
	box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
	first := box.Presented

	// 箱口物品还在等待：继续更新不应吐出新物品
	system.Update(1.0 / 60.0)
	system.Update(1.0 / 60.0)
	if box.Presented != first {
		t.Error("Expected presented item to stay until placed")
	}
	if len(box.Queue) != 2 {
		t.Errorf("Expected queue unchanged at 2, got %d", len(box.Queue))
	}

	// 放置后吐出下一个
	item, _ := ecs.GetComponent[*components.ItemComponent](em, first)
	item.Placed = true
	system.Update(1.0 / 60.0)
	if box.Presented == first || box.Presented == ecs.InvalidEntity {
		t.Error("Expected next item after previous was placed")
	}
	if len(box.Queue) != 1 {
		t.Errorf("Expected 1 item left in queue, got %d", len(box.Queue))
	}
}

// TestSpawnBoxRemainingCount 测试剩余计数（队列 + 箱口待取）
func TestSpawnBoxRemainingCount(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewSpawnBoxSystem(em)
	boxID := newTestBox(em)

	if got := system.RemainingCount(boxID); got != 3 {
		t.Errorf("Expected 3 before first update, got %d", got)
	}

	// 吐出第一个后仍是 3（队列 2 + 箱口 1）
	system.Update(1.0 / 60.0)
	if got := system.RemainingCount(boxID); got != 3 {
		t.Errorf("Expected 3 with one at the mouth, got %d", got)
	}

	box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
	item, _ := ecs.GetComponent[*components.ItemComponent](em, box.Presented)
	item.Placed = true
	if got := system.RemainingCount(boxID); got != 2 {
		t.Errorf("Expected 2 after placing one, got %d", got)
	}
	if !system.HasMoreItems(boxID) {
		t.Error("Expected box to have more items")
	}
}

// TestSpawnBoxQueueOrder 测试物品按配置顺序吐出
func TestSpawnBoxQueueOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewSpawnBoxSystem(em)
	boxID := newTestBox(em)

	wantOrder := []string{"book", "book", "toy"}
	for i, want := range wantOrder {
		system.Update(1.0 / 60.0)
		box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
		item, ok := ecs.GetComponent[*components.ItemComponent](em, box.Presented)
		if !ok {
			t.Fatalf("Item %d missing at the mouth", i)
		}
		if item.Type.String() != want {
			t.Errorf("Item %d: expected %s, got %s", i, want, item.Type)
		}
		item.Placed = true
	}

	// 队列耗尽
	system.Update(1.0 / 60.0)
	if system.RemainingCount(boxID) != 0 {
		t.Errorf("Expected empty box, got %d remaining", system.RemainingCount(boxID))
	}
}

// TestSpawnBoxReset 测试重置恢复初始队列并销毁所有物品
func TestSpawnBoxReset(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewSpawnBoxSystem(em)
	boxID := newTestBox(em)

	// 吐出并放置两个物品
	for i := 0; i < 2; i++ {
		system.Update(1.0 / 60.0)
		box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
		item, _ := ecs.GetComponent[*components.ItemComponent](em, box.Presented)
		item.Placed = true
	}

	system.ResetToInitialState(boxID)

	box, _ := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
	if len(box.Queue) != 3 {
		t.Errorf("Expected queue restored to 3, got %d", len(box.Queue))
	}
	if box.Presented != ecs.InvalidEntity {
		t.Error("Expected empty box mouth after reset")
	}

	// 所有物品实体已销毁
	itemIDs := em.GetEntitiesWith(ecs.TypeOf[*components.ItemComponent]())
	if len(itemIDs) != 0 {
		t.Errorf("Expected all items destroyed, found %d", len(itemIDs))
	}
}
