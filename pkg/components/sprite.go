package components

import "image/color"

// 渲染层级常量
// 数值越大绘制越靠后（越在上层）
const (
	// LayerBackground 背景层（桌面、箱子底座）
	LayerBackground = 0
	// LayerZone 放置区层（网格底板和格线）
	LayerZone = 10
	// LayerItem 物品层（未拖拽的物品）
	LayerItem = 20
	// LayerDragging 拖拽层（正在拖拽的物品永远在最上层）
	LayerDragging = 30
)

// SpriteComponent 描述实体的绘制外观
// 所有图形都用纯色矩形/菱形加文字标签程序化绘制，不依赖图片资源
type SpriteComponent struct {
	Width  float64    // 绘制宽度（像素）
	Height float64    // 绘制高度（像素）
	Color  color.RGBA // 填充颜色
	Label  string     // 叠加在图形左上角的文字标签（可为空）
	Layer  int        // 渲染层级（Layer* 常量）
}
