package components

import (
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/types"
)

// GridZoneComponent 网格放置区
// 持有 Rows x Cols 的格子占用表，格子的局部坐标由
// GridZoneSystem.CellLocalPosition 按几何参数推导，不单独存储
//
// Occupancy[row][col] 存储占用该格子的物品实体ID，
// ecs.InvalidEntity(0) 表示空格子。占用标志与占用者引用
// 合并为同一个字段，天然保证两者一致
type GridZoneComponent struct {
	// Accept 本放置区接受的物品类型
	Accept types.ItemType
	// RequireExactMatch 为 false 时接受任意类型物品
	RequireExactMatch bool

	// Rows/Cols 网格行列数
	Rows int
	Cols int

	// 矩形布局几何参数
	CellWidth  float64 // 格子宽度（像素）
	CellHeight float64 // 格子高度（像素）
	SpacingX   float64 // 格子水平间距（像素）
	SpacingY   float64 // 格子垂直间距（像素）

	// 等距（isometric）布局参数
	// Isometric 为 true 时使用菱形投影，忽略 CellWidth/CellHeight/Spacing
	Isometric        bool
	IsoTileWidth     float64 // 菱形格宽度（像素）
	IsoTileHeight    float64 // 菱形格高度（像素）
	IsoColumnYOffset float64 // 每列额外的Y偏移（像素，营造台阶感）

	// Label 放置区标题（渲染用，如 "书架"）
	Label string

	// Occupancy 占用表 [row][col]，由 zone 工厂按 Rows/Cols 分配
	Occupancy [][]ecs.EntityID
}
