package utils

// PointInRect 检查点是否落在以 (cx, cy) 为中心、w x h 大小的矩形内
// 命中检测统一使用中心锚点，与 PositionComponent 的语义一致
func PointInRect(px, py, cx, cy, w, h float64) bool {
	return px >= cx-w/2 && px < cx+w/2 && py >= cy-h/2 && py < cy+h/2
}

// SquaredDistance 返回两点间距离的平方
// 最近格子搜索只比较大小，省去开方
func SquaredDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}
