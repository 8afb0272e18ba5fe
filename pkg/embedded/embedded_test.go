package embedded

import (
	"embed"
	"testing"
)

// TestLevelPath 测试关卡ID到嵌入路径的映射
func TestLevelPath(t *testing.T) {
	if got := LevelPath("1-2"); got != "data/levels/level-1-2.yaml" {
		t.Errorf("Expected data/levels/level-1-2.yaml, got %s", got)
	}
}

// TestUninitializedAccess 测试未初始化时的报错
func TestUninitializedAccess(t *testing.T) {
	if initialized {
		t.Skip("embedded package already initialized by another test")
	}

	if _, err := ReadFile("data/levels/level-1-1.yaml"); err == nil {
		t.Error("Expected error before Init")
	}
	if _, err := ListLevelIDs(); err == nil {
		t.Error("Expected error before Init")
	}
}

// TestInitializedEmptyFS 测试空资源集下的行为
func TestInitializedEmptyFS(t *testing.T) {
	Init(embed.FS{})

	if !IsInitialized() {
		t.Fatal("Expected initialized after Init")
	}

	// 非 data/ 前缀被拒绝
	if _, err := ReadFile("assets/foo.png"); err == nil {
		t.Error("Expected error for non-data path prefix")
	}

	// 不存在的文件
	if Exists("data/levels/level-0-0.yaml") {
		t.Error("Expected missing file to not exist")
	}

	// 空资源集枚举出空列表
	ids, err := ListLevelIDs()
	if err != nil {
		t.Fatalf("ListLevelIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no levels in empty FS, got %v", ids)
	}
}
