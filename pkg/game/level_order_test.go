package game

import "testing"

// TestNextLevelID 测试关卡顺序推进
func TestNextLevelID(t *testing.T) {
	ids := []string{"1-3", "1-1", "1-2"}

	if got := NextLevelID(ids, "1-1"); got != "1-2" {
		t.Errorf("NextLevelID(1-1): got %q, want \"1-2\"", got)
	}
	if got := NextLevelID(ids, "1-3"); got != "" {
		t.Errorf("NextLevelID of last level: got %q, want \"\"", got)
	}
	if got := NextLevelID(ids, "9-9"); got != "" {
		t.Errorf("NextLevelID of unknown level: got %q, want \"\"", got)
	}
}

// TestFirstLevelID 测试首关选取
func TestFirstLevelID(t *testing.T) {
	if got := FirstLevelID([]string{"1-2", "1-1"}); got != "1-1" {
		t.Errorf("FirstLevelID: got %q, want \"1-1\"", got)
	}
	if got := FirstLevelID(nil); got != "" {
		t.Errorf("FirstLevelID(nil): got %q, want \"\"", got)
	}
}
