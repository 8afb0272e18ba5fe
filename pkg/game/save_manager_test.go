package game

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSaveManagerNewPlayer 新玩家无存档时使用零值进度
func TestSaveManagerNewPlayer(t *testing.T) {
	sm, err := NewSaveManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewSaveManager failed: %v", err)
	}

	if sm.GetHighestLevel() != "" {
		t.Errorf("HighestLevel for new player: got %q, want \"\"", sm.GetHighestLevel())
	}
	if sm.GetTotalScore() != 0 {
		t.Errorf("TotalScore for new player: got %d, want 0", sm.GetTotalScore())
	}
	if sm.IsLevelCompleted("1-1") {
		t.Error("No level should be completed for a new player")
	}
}

// TestSaveManagerRoundTrip 完成关卡、保存、重新加载
func TestSaveManagerRoundTrip(t *testing.T) {
	dir := t.TempDir()

	sm, err := NewSaveManager(dir)
	if err != nil {
		t.Fatalf("NewSaveManager failed: %v", err)
	}

	sm.MarkLevelCompleted("1-1", 60, "1-2")
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 用同一目录重新创建，应读回进度
	sm2, err := NewSaveManager(dir)
	if err != nil {
		t.Fatalf("Second NewSaveManager failed: %v", err)
	}

	if !sm2.IsLevelCompleted("1-1") {
		t.Error("Level 1-1 should be completed after reload")
	}
	if sm2.GetHighestLevel() != "1-2" {
		t.Errorf("HighestLevel: got %q, want \"1-2\"", sm2.GetHighestLevel())
	}
	if sm2.GetTotalScore() != 60 {
		t.Errorf("TotalScore: got %d, want 60", sm2.GetTotalScore())
	}
}

// TestSaveManagerRepeatCompletion 重复完成同一关不重复计分
func TestSaveManagerRepeatCompletion(t *testing.T) {
	sm, err := NewSaveManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewSaveManager failed: %v", err)
	}

	sm.MarkLevelCompleted("1-1", 60, "1-2")
	sm.MarkLevelCompleted("1-1", 60, "1-2")

	if sm.GetTotalScore() != 60 {
		t.Errorf("TotalScore after repeat completion: got %d, want 60", sm.GetTotalScore())
	}
	if len(sm.data.CompletedLevels) != 1 {
		t.Errorf("CompletedLevels length: got %d, want 1", len(sm.data.CompletedLevels))
	}
}

// TestSaveManagerHighestLevelMonotonic 解锁进度只前进不后退
func TestSaveManagerHighestLevelMonotonic(t *testing.T) {
	sm, err := NewSaveManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewSaveManager failed: %v", err)
	}

	sm.MarkLevelCompleted("1-2", 40, "1-3")
	// 回头重玩第一关不应把解锁进度拉回去
	sm.MarkLevelCompleted("1-1", 60, "1-2")

	if sm.GetHighestLevel() != "1-3" {
		t.Errorf("HighestLevel: got %q, want \"1-3\"", sm.GetHighestLevel())
	}
}

// TestSaveManagerCorruptFile 损坏的存档文件报错
func TestSaveManagerCorruptFile(t *testing.T) {
	dir := t.TempDir()
	sm := &SaveManager{
		saveDir:  dir,
		savePath: filepath.Join(dir, "progress.yaml"),
		data:     &SaveData{CompletedLevels: []string{}},
	}

	if err := os.WriteFile(sm.savePath, []byte("{not: [valid: yaml"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if err := sm.Load(); err == nil {
		t.Error("Load should fail on corrupt YAML")
	}
}
