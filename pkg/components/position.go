package components

// PositionComponent 存储实体的世界坐标
// 本项目没有摄像机滚动，世界坐标与屏幕坐标一致，
// X/Y 代表实体的视觉中心（不是左上角）
type PositionComponent struct {
	X float64 // 世界坐标X（实体中心）
	Y float64 // 世界坐标Y（实体中心）
}
