package systems

import (
	"fmt"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/utils"
)

// GridZoneSystem 管理网格放置区的布局和占用状态
// 负责把格子坐标换算成世界坐标、查找离落点最近的空格子，
// 以及格子占用表的读写
//
// 格子的位置完全由几何参数推导（CellLocalPosition 是纯函数），
// 渲染系统画格线用的是同一套换算，保证看到的格子和落子的格子
// 严格一致
type GridZoneSystem struct {
	entityManager *ecs.EntityManager
}

// NewGridZoneSystem 创建网格放置区系统
func NewGridZoneSystem(em *ecs.EntityManager) *GridZoneSystem {
	return &GridZoneSystem{entityManager: em}
}

// CellLocalPosition 计算格子中心相对放置区原点的局部偏移
//
// 矩形布局：整个网格以放置区原点为中心，
// 原点格 (0,0) 位于 (-总宽/2 + 格宽/2, -总高/2 + 格高/2)，
// 之后按 (col, row) * (格子尺寸 + 间距) 偏移。
//
// 等距布局：菱形投影，忽略格子尺寸和间距：
//
//	isoX = (col - row) * 菱形宽/2
//	isoY = (col + row) * 菱形高/2 + col * 列Y偏移
//
// 纯函数：相同输入必然得到相同输出
func (s *GridZoneSystem) CellLocalPosition(zone *components.GridZoneComponent, col, row int) (float64, float64) {
	if zone.Isometric {
		isoX := float64(col-row) * zone.IsoTileWidth / 2
		isoY := float64(col+row)*zone.IsoTileHeight/2 + float64(col)*zone.IsoColumnYOffset
		return isoX, isoY
	}

	totalW := float64(zone.Cols)*zone.CellWidth + float64(zone.Cols-1)*zone.SpacingX
	totalH := float64(zone.Rows)*zone.CellHeight + float64(zone.Rows-1)*zone.SpacingY

	originX := -totalW/2 + zone.CellWidth/2
	originY := -totalH/2 + zone.CellHeight/2

	x := originX + float64(col)*(zone.CellWidth+zone.SpacingX)
	y := originY + float64(row)*(zone.CellHeight+zone.SpacingY)
	return x, y
}

// CellWorldPosition 计算格子中心的世界坐标（放置区位置 + 局部偏移）
//
// 返回：
//   - x, y: 格子中心世界坐标
//   - ok: 实体缺少组件或坐标越界时为 false
func (s *GridZoneSystem) CellWorldPosition(zoneID ecs.EntityID, col, row int) (float64, float64, bool) {
	zone, pos, ok := s.zoneAndPosition(zoneID)
	if !ok || !isValidCell(zone, col, row) {
		return 0, 0, false
	}

	localX, localY := s.CellLocalPosition(zone, col, row)
	return pos.X + localX, pos.Y + localY, true
}

// FindNearestFreeCell 查找离世界坐标 (worldX, worldY) 最近的空格子
//
// 按行主序扫描（row 外层，col 内层），只在空格子中取平方欧氏距离
// 最小者；距离相等时先扫到的获胜（确定性的平局规则，不是错误）。
//
// 返回：
//   - col, row: 空格子坐标
//   - ok: 全部格子已占用（或实体无效）时为 false
func (s *GridZoneSystem) FindNearestFreeCell(zoneID ecs.EntityID, worldX, worldY float64) (int, int, bool) {
	zone, pos, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return -1, -1, false
	}

	bestCol, bestRow := -1, -1
	bestDist := 0.0
	found := false

	for row := 0; row < zone.Rows; row++ {
		for col := 0; col < zone.Cols; col++ {
			if zone.Occupancy[row][col] != ecs.InvalidEntity {
				continue
			}

			localX, localY := s.CellLocalPosition(zone, col, row)
			dist := utils.SquaredDistance(worldX, worldY, pos.X+localX, pos.Y+localY)
			if !found || dist < bestDist {
				found = true
				bestDist = dist
				bestCol, bestRow = col, row
			}
		}
	}

	if !found {
		return -1, -1, false
	}
	return bestCol, bestRow, true
}

// OccupyCell 标记格子被指定物品占用
//
// 同一物品对同一格子的重复占用是幂等的空操作（不会重复计数）；
// 被其他物品占用的格子返回错误
func (s *GridZoneSystem) OccupyCell(zoneID ecs.EntityID, col, row int, itemID ecs.EntityID) error {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return fmt.Errorf("entity %d is not a grid zone", zoneID)
	}
	if !isValidCell(zone, col, row) {
		return fmt.Errorf("invalid grid cell: col=%d, row=%d (zone is %dx%d)", col, row, zone.Cols, zone.Rows)
	}
	if itemID == ecs.InvalidEntity {
		return fmt.Errorf("cannot occupy cell (%d, %d) with InvalidEntity", col, row)
	}

	current := zone.Occupancy[row][col]
	if current == itemID {
		return nil // 幂等
	}
	if current != ecs.InvalidEntity {
		return fmt.Errorf("grid cell (%d, %d) is already occupied by entity %d", col, row, current)
	}

	zone.Occupancy[row][col] = itemID
	return nil
}

// ReleaseCell 清空格子的占用状态
func (s *GridZoneSystem) ReleaseCell(zoneID ecs.EntityID, col, row int) error {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return fmt.Errorf("entity %d is not a grid zone", zoneID)
	}
	if !isValidCell(zone, col, row) {
		return fmt.Errorf("invalid grid cell: col=%d, row=%d (zone is %dx%d)", col, row, zone.Cols, zone.Rows)
	}

	zone.Occupancy[row][col] = ecs.InvalidEntity
	return nil
}

// IsOccupied 检查格子是否已被占用
// 越界或无效实体视为"已占用"，阻止放置
func (s *GridZoneSystem) IsOccupied(zoneID ecs.EntityID, col, row int) bool {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok || !isValidCell(zone, col, row) {
		return true
	}
	return zone.Occupancy[row][col] != ecs.InvalidEntity
}

// CountOccupied 统计已占用格子数（全表扫描）
func (s *GridZoneSystem) CountOccupied(zoneID ecs.EntityID) int {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return 0
	}

	count := 0
	for row := 0; row < zone.Rows; row++ {
		for col := 0; col < zone.Cols; col++ {
			if zone.Occupancy[row][col] != ecs.InvalidEntity {
				count++
			}
		}
	}
	return count
}

// IsFull 检查放置区是否已满（占用数 == 行*列）
func (s *GridZoneSystem) IsFull(zoneID ecs.EntityID) bool {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return false
	}
	return s.CountOccupied(zoneID) == zone.Rows*zone.Cols
}

// ZoneBounds 返回网格放置区的外接矩形（中心和宽高，世界坐标）
// 放置判定和渲染共用：落点在此矩形内才算"落入该放置区"
func (s *GridZoneSystem) ZoneBounds(zoneID ecs.EntityID) (cx, cy, w, h float64, ok bool) {
	zone, pos, found := s.zoneAndPosition(zoneID)
	if !found {
		return 0, 0, 0, 0, false
	}

	if !zone.Isometric {
		totalW := float64(zone.Cols)*zone.CellWidth + float64(zone.Cols-1)*zone.SpacingX
		totalH := float64(zone.Rows)*zone.CellHeight + float64(zone.Rows-1)*zone.SpacingY
		return pos.X, pos.Y, totalW, totalH, true
	}

	// 等距布局：取所有格子中心的包围盒，四周各留半个菱形
	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	first := true
	for row := 0; row < zone.Rows; row++ {
		for col := 0; col < zone.Cols; col++ {
			x, y := s.CellLocalPosition(zone, col, row)
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	w = maxX - minX + zone.IsoTileWidth
	h = maxY - minY + zone.IsoTileHeight
	cx = pos.X + (minX+maxX)/2
	cy = pos.Y + (minY+maxY)/2
	return cx, cy, w, h, true
}

// ResetZone 清空放置区的全部占用状态（重新开始关卡用）
func (s *GridZoneSystem) ResetZone(zoneID ecs.EntityID) {
	zone, _, ok := s.zoneAndPosition(zoneID)
	if !ok {
		return
	}
	for row := 0; row < zone.Rows; row++ {
		for col := 0; col < zone.Cols; col++ {
			zone.Occupancy[row][col] = ecs.InvalidEntity
		}
	}
}

// zoneAndPosition 读取网格组件和位置组件
func (s *GridZoneSystem) zoneAndPosition(zoneID ecs.EntityID) (*components.GridZoneComponent, *components.PositionComponent, bool) {
	zone, ok := ecs.GetComponent[*components.GridZoneComponent](s.entityManager, zoneID)
	if !ok {
		return nil, nil, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, zoneID)
	if !ok {
		return nil, nil, false
	}
	return zone, pos, true
}

// isValidCell 检查格子坐标是否在网格范围内
func isValidCell(zone *components.GridZoneComponent, col, row int) bool {
	return col >= 0 && col < zone.Cols && row >= 0 && row < zone.Rows
}
