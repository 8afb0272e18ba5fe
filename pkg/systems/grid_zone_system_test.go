package systems

import (
	"math"
	"testing"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/entities"
)

// newTestGridZone 创建一个测试用矩形网格放置区
func newTestGridZone(em *ecs.EntityManager, x, y float64, rows, cols int, cellSize float64) ecs.EntityID {
	return entities.CreateGridZone(em, config.ZoneConfig{
		Kind:       config.ZoneKindGrid,
		Accept:     "book",
		X:          x,
		Y:          y,
		Rows:       rows,
		Cols:       cols,
		CellWidth:  cellSize,
		CellHeight: cellSize,
	})
}

// TestCellLocalPositionRect 测试矩形布局的格子坐标换算
func TestCellLocalPositionRect(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)

	zone := &components.GridZoneComponent{
		Rows: 3, Cols: 3,
		CellWidth: 72, CellHeight: 72,
	}

	// 3x3 网格以原点为中心：中心格 (1,1) 恰好在原点
	x, y := system.CellLocalPosition(zone, 1, 1)
	if x != 0 || y != 0 {
		t.Errorf("Expected center cell at (0,0), got (%f, %f)", x, y)
	}

	// 原点格 (0,0) 在左上角
	x, y = system.CellLocalPosition(zone, 0, 0)
	if x != -72 || y != -72 {
		t.Errorf("Expected cell (0,0) at (-72,-72), got (%f, %f)", x, y)
	}

	// 末格 (2,2) 在右下角，与原点格对称
	x, y = system.CellLocalPosition(zone, 2, 2)
	if x != 72 || y != 72 {
		t.Errorf("Expected cell (2,2) at (72,72), got (%f, %f)", x, y)
	}
}

// TestCellLocalPositionRectSpacing 测试带间距的矩形布局
func TestCellLocalPositionRectSpacing(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)

	zone := &components.GridZoneComponent{
		Rows: 2, Cols: 2,
		CellWidth: 60, CellHeight: 60,
		SpacingX: 10, SpacingY: 10,
	}

	// 总宽 = 2*60 + 10 = 130，原点格在 (-65+30, -65+30) = (-35, -35)
	x, y := system.CellLocalPosition(zone, 0, 0)
	if x != -35 || y != -35 {
		t.Errorf("Expected cell (0,0) at (-35,-35), got (%f, %f)", x, y)
	}

	// 相邻格间隔 = 格宽 + 间距 = 70
	x2, _ := system.CellLocalPosition(zone, 1, 0)
	if x2-x != 70 {
		t.Errorf("Expected horizontal step of 70, got %f", x2-x)
	}
}

// TestCellLocalPositionIsometric 测试等距菱形投影
func TestCellLocalPositionIsometric(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)

	zone := &components.GridZoneComponent{
		Rows: 3, Cols: 3,
		Isometric:        true,
		IsoTileWidth:     96,
		IsoTileHeight:    48,
		IsoColumnYOffset: 6,
	}

	// 原点格在原点
	x, y := system.CellLocalPosition(zone, 0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Expected iso cell (0,0) at origin, got (%f, %f)", x, y)
	}

	// col=1, row=0: x = 48, y = 24 + 6 = 30
	x, y = system.CellLocalPosition(zone, 1, 0)
	if x != 48 || y != 30 {
		t.Errorf("Expected iso cell (1,0) at (48,30), got (%f, %f)", x, y)
	}

	// col=0, row=1: x = -48, y = 24（行不加列偏移）
	x, y = system.CellLocalPosition(zone, 0, 1)
	if x != -48 || y != 24 {
		t.Errorf("Expected iso cell (0,1) at (-48,24), got (%f, %f)", x, y)
	}

	// 同一输入重复换算结果不变（纯函数）
	x2, y2 := system.CellLocalPosition(zone, 1, 0)
	if x2 != 48 || y2 != 30 {
		t.Errorf("Expected deterministic result, got (%f, %f)", x2, y2)
	}
}

// TestCellPositionInjective 测试不同格子映射到不同坐标
func TestCellPositionInjective(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)

	zones := []*components.GridZoneComponent{
		{Rows: 4, Cols: 4, CellWidth: 72, CellHeight: 72},
		{Rows: 4, Cols: 4, Isometric: true, IsoTileWidth: 96, IsoTileHeight: 48, IsoColumnYOffset: 6},
	}

	for _, zone := range zones {
		seen := make(map[[2]float64][2]int)
		for row := 0; row < zone.Rows; row++ {
			for col := 0; col < zone.Cols; col++ {
				x, y := system.CellLocalPosition(zone, col, row)
				key := [2]float64{x, y}
				if prev, dup := seen[key]; dup {
					t.Errorf("Cells (%d,%d) and (%d,%d) map to the same position (%f, %f)",
						col, row, prev[0], prev[1], x, y)
				}
				seen[key] = [2]int{col, row}
			}
		}
	}
}

// TestFindNearestFreeCell 测试最近空格查找
func TestFindNearestFreeCell(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 3, 3, 72)

	// 落点在中心格上方一点：中心格最近
	col, row, found := system.FindNearestFreeCell(zoneID, 500, 290)
	if !found || col != 1 || row != 1 {
		t.Errorf("Expected nearest cell (1,1), got (%d,%d) found=%v", col, row, found)
	}

	// 中心格被占用后，同一落点应找到正上方的格子
	item := em.CreateEntity()
	if err := system.OccupyCell(zoneID, 1, 1, item); err != nil {
		t.Fatalf("OccupyCell failed: %v", err)
	}
	col, row, found = system.FindNearestFreeCell(zoneID, 500, 290)
	if !found || col != 1 || row != 0 {
		t.Errorf("Expected nearest free cell (1,0), got (%d,%d) found=%v", col, row, found)
	}
}

// TestFindNearestFreeCellTieBreak 测试等距离时的平局规则
// 行主序扫描中先到的格子获胜，结果是确定性的
func TestFindNearestFreeCellTieBreak(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 1, 2, 72)

	// 落点恰好在两个格子的正中间：两格等距
	// 行主序先扫到 (0,0)，它应当获胜
	col, row, found := system.FindNearestFreeCell(zoneID, 500, 300)
	if !found || col != 0 || row != 0 {
		t.Errorf("Expected tie to resolve to first scanned cell (0,0), got (%d,%d)", col, row)
	}
}

// TestFindNearestFreeCellFull 测试满格时返回失败
func TestFindNearestFreeCellFull(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 2, 2, 72)

	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			item := em.CreateEntity()
			if err := system.OccupyCell(zoneID, col, row, item); err != nil {
				t.Fatalf("OccupyCell(%d,%d) failed: %v", col, row, err)
			}
		}
	}

	if !system.IsFull(zoneID) {
		t.Error("Expected zone to be full")
	}
	if _, _, found := system.FindNearestFreeCell(zoneID, 500, 300); found {
		t.Error("Expected no free cell in a full zone")
	}
}

// TestOccupyCellRules 测试格子占用的约束
func TestOccupyCellRules(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 2, 2, 72)

	itemA := em.CreateEntity()
	itemB := em.CreateEntity()

	if err := system.OccupyCell(zoneID, 0, 0, itemA); err != nil {
		t.Fatalf("First occupy failed: %v", err)
	}

	// 同一物品重复占用：幂等空操作
	if err := system.OccupyCell(zoneID, 0, 0, itemA); err != nil {
		t.Errorf("Re-occupy by same item should be a no-op, got error: %v", err)
	}

	// 其他物品占用已占格子：报错，占用者不变
	if err := system.OccupyCell(zoneID, 0, 0, itemB); err == nil {
		t.Error("Expected error when occupying an occupied cell with a different item")
	}

	// InvalidEntity 不能作为占用者
	if err := system.OccupyCell(zoneID, 1, 1, ecs.InvalidEntity); err == nil {
		t.Error("Expected error when occupying with InvalidEntity")
	}

	// 越界格子
	if err := system.OccupyCell(zoneID, 5, 5, itemA); err == nil {
		t.Error("Expected error for out-of-range cell")
	}
}

// TestReleaseCell 测试释放后格子重新可用
func TestReleaseCell(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 1, 1, 72)

	item := em.CreateEntity()
	if err := system.OccupyCell(zoneID, 0, 0, item); err != nil {
		t.Fatalf("OccupyCell failed: %v", err)
	}
	if !system.IsOccupied(zoneID, 0, 0) {
		t.Fatal("Expected cell to be occupied")
	}

	if err := system.ReleaseCell(zoneID, 0, 0); err != nil {
		t.Fatalf("ReleaseCell failed: %v", err)
	}
	if system.IsOccupied(zoneID, 0, 0) {
		t.Error("Expected cell to be free after release")
	}

	// 释放后的格子可被重新占用
	other := em.CreateEntity()
	if err := system.OccupyCell(zoneID, 0, 0, other); err != nil {
		t.Errorf("Expected released cell to be occupiable again: %v", err)
	}
}

// TestCountOccupiedAndReset 测试占用计数和整区重置
func TestCountOccupiedAndReset(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 3, 3, 72)

	for i := 0; i < 3; i++ {
		item := em.CreateEntity()
		if err := system.OccupyCell(zoneID, i, 0, item); err != nil {
			t.Fatalf("OccupyCell failed: %v", err)
		}
	}
	if got := system.CountOccupied(zoneID); got != 3 {
		t.Errorf("Expected 3 occupied cells, got %d", got)
	}

	system.ResetZone(zoneID)
	if got := system.CountOccupied(zoneID); got != 0 {
		t.Errorf("Expected 0 occupied cells after reset, got %d", got)
	}
}

// TestZoneBoundsRect 测试矩形放置区的外接矩形
func TestZoneBoundsRect(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 2, 3, 72)

	cx, cy, w, h, ok := system.ZoneBounds(zoneID)
	if !ok {
		t.Fatal("ZoneBounds failed")
	}
	if cx != 500 || cy != 300 {
		t.Errorf("Expected bounds centered at zone position, got (%f, %f)", cx, cy)
	}
	if w != 216 || h != 144 {
		t.Errorf("Expected bounds 216x144, got %fx%f", w, h)
	}
}

// TestCellWorldPosition 测试世界坐标换算和越界处理
func TestCellWorldPosition(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 400, 200, 3, 3, 72)

	x, y, ok := system.CellWorldPosition(zoneID, 1, 1)
	if !ok || x != 400 || y != 200 {
		t.Errorf("Expected center cell at zone position (400,200), got (%f, %f) ok=%v", x, y, ok)
	}

	if _, _, ok := system.CellWorldPosition(zoneID, 9, 9); ok {
		t.Error("Expected failure for out-of-range cell")
	}

	// 非网格实体
	if _, _, ok := system.CellWorldPosition(em.CreateEntity(), 0, 0); ok {
		t.Error("Expected failure for non-zone entity")
	}
}

// TestNearestCellDistance 测试返回的确实是距离最近的空格
func TestNearestCellDistance(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewGridZoneSystem(em)
	zoneID := newTestGridZone(em, 500, 300, 3, 3, 72)

	// 落点在右下角附近
	dropX, dropY := 560.0, 360.0
	col, row, found := system.FindNearestFreeCell(zoneID, dropX, dropY)
	if !found {
		t.Fatal("Expected a free cell")
	}

	bestX, bestY, _ := system.CellWorldPosition(zoneID, col, row)
	bestDist := math.Hypot(dropX-bestX, dropY-bestY)

	// 任何其他空格的距离都不应更近
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			x, y, _ := system.CellWorldPosition(zoneID, c, r)
			if dist := math.Hypot(dropX-x, dropY-y); dist < bestDist {
				t.Errorf("Cell (%d,%d) at distance %f is closer than selected (%d,%d) at %f",
					c, r, dist, col, row, bestDist)
			}
		}
	}
}
