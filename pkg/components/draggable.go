package components

// DraggableComponent 标记实体可以被指针拖拽
// 保存拖拽过程的瞬时状态和回滚用的"最后稳定位置"快照
type DraggableComponent struct {
	Width  float64 // 命中区域宽度（像素，以实体中心为基准）
	Height float64 // 命中区域高度（像素）

	// Dragging 当前是否被拖拽中
	Dragging bool
	// GrabOffsetX/Y 按下点相对实体中心的偏移，拖拽时保持手感不跳变
	GrabOffsetX float64
	GrabOffsetY float64

	// HomeX/HomeY 最后稳定位置快照
	// 放置被拒绝时物品回到这里；放置成功后更新为格子锚点
	HomeX float64
	HomeY float64

	// Hovered 指针当前是否悬停在物品上（用于描边高亮）
	Hovered bool
}
