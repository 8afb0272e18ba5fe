package entities

import (
	"testing"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// TestCreateItemComponents 测试物品实体的组件装配
func TestCreateItemComponents(t *testing.T) {
	em := ecs.NewEntityManager()

	id := CreateItem(em, types.ItemBook, 120, 340)
	if id == ecs.InvalidEntity {
		t.Fatal("Expected valid entity ID")
	}

	item, ok := ecs.GetComponent[*components.ItemComponent](em, id)
	if !ok || item.Type != types.ItemBook {
		t.Errorf("Expected book item component, got ok=%v type=%v", ok, item)
	}
	if item.Placed || item.ZoneEntity != ecs.InvalidEntity {
		t.Error("Expected fresh item to be unplaced")
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 120 || pos.Y != 340 {
		t.Errorf("Expected position (120,340), got %v", pos)
	}

	// 初始"家"就是出生点
	drag, ok := ecs.GetComponent[*components.DraggableComponent](em, id)
	if !ok || drag.HomeX != 120 || drag.HomeY != 340 {
		t.Errorf("Expected home at spawn point, got %v", drag)
	}

	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !ok || sprite.Layer != components.LayerItem {
		t.Errorf("Expected sprite on item layer, got %v", sprite)
	}
}

// TestItemColorsDistinct 测试每种类型的颜色互不相同
func TestItemColorsDistinct(t *testing.T) {
	seen := make(map[[4]uint8]types.ItemType)
	for _, itemType := range types.AllItemTypes() {
		clr, ok := itemColors[itemType]
		if !ok {
			t.Errorf("Missing color for item type %s", itemType)
			continue
		}
		key := [4]uint8{clr.R, clr.G, clr.B, clr.A}
		if prev, dup := seen[key]; dup {
			t.Errorf("Types %s and %s share the same color", prev, itemType)
		}
		seen[key] = itemType
	}
}

// TestCreateSpawnBoxQueue 测试物品分组按顺序展开成队列
func TestCreateSpawnBoxQueue(t *testing.T) {
	em := ecs.NewEntityManager()

	boxID := CreateSpawnBox(em, &config.LevelConfig{
		ID:    "test",
		Spawn: config.SpawnConfig{X: 512, Y: 648},
		Items: []config.ItemGroupConfig{
			{Type: "gem", Count: 2},
			{Type: "coin", Count: 1},
		},
	})

	box, ok := ecs.GetComponent[*components.SpawnBoxComponent](em, boxID)
	if !ok {
		t.Fatal("Expected spawn box component")
	}

	want := []types.ItemType{types.ItemGem, types.ItemGem, types.ItemCoin}
	if len(box.Queue) != len(want) {
		t.Fatalf("Expected queue of %d, got %d", len(want), len(box.Queue))
	}
	for i, itemType := range want {
		if box.Queue[i] != itemType {
			t.Errorf("Queue[%d]: expected %s, got %s", i, itemType, box.Queue[i])
		}
	}

	// InitialQueue 是独立副本
	box.Queue = box.Queue[1:]
	if len(box.InitialQueue) != len(want) {
		t.Errorf("Expected InitialQueue unchanged at %d, got %d", len(want), len(box.InitialQueue))
	}
}

// TestCreateZoneDispatch 测试配置类型分发
func TestCreateZoneDispatch(t *testing.T) {
	em := ecs.NewEntityManager()

	gridID, err := CreateZone(em, config.ZoneConfig{
		Kind: config.ZoneKindGrid, Accept: "book",
		X: 300, Y: 300, Rows: 2, Cols: 3,
		CellWidth: 72, CellHeight: 72,
	})
	if err != nil {
		t.Fatalf("CreateZone(grid) failed: %v", err)
	}
	zone, ok := ecs.GetComponent[*components.GridZoneComponent](em, gridID)
	if !ok {
		t.Fatal("Expected grid zone component")
	}
	if len(zone.Occupancy) != 2 || len(zone.Occupancy[0]) != 3 {
		t.Errorf("Expected 2x3 occupancy table, got %dx%d", len(zone.Occupancy), len(zone.Occupancy[0]))
	}
	if !zone.RequireExactMatch || zone.Accept != types.ItemBook {
		t.Errorf("Expected exact-match book zone, got exact=%v accept=%s", zone.RequireExactMatch, zone.Accept)
	}

	slotID, err := CreateZone(em, config.ZoneConfig{
		Kind: config.ZoneKindSlot, Accept: "key",
		X: 800, Y: 220, Width: 90, Height: 90,
	})
	if err != nil {
		t.Fatalf("CreateZone(slot) failed: %v", err)
	}
	slot, ok := ecs.GetComponent[*components.SlotZoneComponent](em, slotID)
	if !ok || slot.Occupant != ecs.InvalidEntity {
		t.Errorf("Expected empty key slot, got %v", slot)
	}

	if _, err := CreateZone(em, config.ZoneConfig{Kind: "shelf"}); err == nil {
		t.Error("Expected error for unknown zone kind")
	}

	// AcceptAny 放置区不要求精确匹配
	anyID, err := CreateZone(em, config.ZoneConfig{
		Kind: config.ZoneKindGrid, AcceptAny: true,
		X: 500, Y: 300, Rows: 1, Cols: 1,
		CellWidth: 72, CellHeight: 72,
	})
	if err != nil {
		t.Fatalf("CreateZone(acceptAny) failed: %v", err)
	}
	anyZone, _ := ecs.GetComponent[*components.GridZoneComponent](em, anyID)
	if anyZone.RequireExactMatch {
		t.Error("Expected accept-any zone to skip exact match")
	}
}
