package components

// SnapMotionComponent 吸附飞行动画状态
// 放置被接受时物品飞向格子锚点，被拒绝时飞回最后稳定位置。
// 由 SnapSystem 逐帧推进，到达后组件被移除
type SnapMotionComponent struct {
	FromX float64 // 起点（世界坐标）
	FromY float64
	ToX   float64 // 终点（世界坐标）
	ToY   float64

	Elapsed  float64 // 已进行时间（秒）
	Duration float64 // 总时长（秒），必须 > 0

	// Bounce 为 true 时使用带回弹的缓动（入格的"咔哒"手感），
	// 否则使用普通缓出（回弹到原位）
	Bounce bool
}
