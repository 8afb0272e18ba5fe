package utils

import "testing"

// TestPointInRect 测试中心锚点矩形命中
func TestPointInRect(t *testing.T) {
	// 100x50 的矩形，中心在 (0,0)
	cases := []struct {
		px, py float64
		want   bool
	}{
		{0, 0, true},      // 中心
		{-49, -24, true},  // 左上角内侧
		{49, 24, true},    // 右下角内侧
		{-50, 0, true},    // 左边界（含）
		{50, 0, false},    // 右边界（不含）
		{0, 25, false},    // 下边界（不含）
		{100, 100, false}, // 远处
	}

	for _, c := range cases {
		if got := PointInRect(c.px, c.py, 0, 0, 100, 50); got != c.want {
			t.Errorf("PointInRect(%v, %v) = %v, want %v", c.px, c.py, got, c.want)
		}
	}
}

// TestSquaredDistance 测试平方距离
func TestSquaredDistance(t *testing.T) {
	if got := SquaredDistance(0, 0, 3, 4); got != 25 {
		t.Errorf("SquaredDistance(0,0,3,4) = %v, want 25", got)
	}
	if got := SquaredDistance(1, 1, 1, 1); got != 0 {
		t.Errorf("SquaredDistance of same point = %v, want 0", got)
	}
}
