package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SaveData 存档数据结构
//
// 保存内容：
//   - 最高解锁关卡（如 "1-3" 表示 1-3 已可游玩）
//   - 已完成关卡列表
//   - 历史总得分
//
// 只保存关卡间进度，不保存关卡内的半成品摆放状态：
// 中途退出的关卡重新开始
type SaveData struct {
	HighestLevel    string   `yaml:"highestLevel"`    // 最高解锁关卡ID
	CompletedLevels []string `yaml:"completedLevels"` // 已完成关卡ID列表（升序）
	TotalScore      int      `yaml:"totalScore"`      // 所有已完成关卡的累计得分
}

// SaveManager 存档管理器
//
// 职责：
//   - 加载和保存游戏进度
//   - 管理关卡解锁状态
//
// 架构说明：
//   - 数据持久化到本地文件（YAML格式，与关卡配置保持一致）
//   - 由 GameState 持有，系统通过 GameState 访问
type SaveManager struct {
	saveDir  string    // 存档目录
	savePath string    // 存档文件路径
	data     *SaveData // 当前存档数据
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - saveDir: 存档目录路径（如 "data/saves"），不存在时自动创建
//
// 返回：
//   - *SaveManager: 新创建的存档管理器实例
//   - error: 如果目录创建失败返回错误
func NewSaveManager(saveDir string) (*SaveManager, error) {
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}

	sm := &SaveManager{
		saveDir:  saveDir,
		savePath: filepath.Join(saveDir, "progress.yaml"),
		data: &SaveData{
			CompletedLevels: []string{},
		},
	}

	// 已有存档则加载；文件不存在不是错误（新玩家）
	if err := sm.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load save data: %w", err)
	}

	return sm, nil
}

// Load 从存档文件加载进度
// 文件不存在时返回满足 os.IsNotExist 的错误，调用方可忽略
func (sm *SaveManager) Load() error {
	raw, err := os.ReadFile(sm.savePath)
	if err != nil {
		return err
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse save file %s: %w", sm.savePath, err)
	}
	if data.CompletedLevels == nil {
		data.CompletedLevels = []string{}
	}

	sm.data = &data
	return nil
}

// Save 将当前进度写入存档文件
func (sm *SaveManager) Save() error {
	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	if err := os.WriteFile(sm.savePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write save file %s: %w", sm.savePath, err)
	}
	return nil
}

// MarkLevelCompleted 记录关卡完成并累计得分
//
// 重复完成同一关卡只更新解锁进度，不重复累计得分。
// nextLevelID 为该关之后解锁的关卡ID，为空表示没有后续关卡
func (sm *SaveManager) MarkLevelCompleted(levelID string, score int, nextLevelID string) {
	if !sm.IsLevelCompleted(levelID) {
		sm.data.CompletedLevels = append(sm.data.CompletedLevels, levelID)
		sort.Strings(sm.data.CompletedLevels)
		sm.data.TotalScore += score
	}

	if nextLevelID != "" && nextLevelID > sm.data.HighestLevel {
		sm.data.HighestLevel = nextLevelID
	} else if levelID > sm.data.HighestLevel {
		sm.data.HighestLevel = levelID
	}
}

// IsLevelCompleted 检查关卡是否已完成过
func (sm *SaveManager) IsLevelCompleted(levelID string) bool {
	for _, id := range sm.data.CompletedLevels {
		if id == levelID {
			return true
		}
	}
	return false
}

// GetHighestLevel 返回最高解锁关卡ID（无存档时为空字符串）
func (sm *SaveManager) GetHighestLevel() string {
	return sm.data.HighestLevel
}

// GetTotalScore 返回历史累计得分
func (sm *SaveManager) GetTotalScore() int {
	return sm.data.TotalScore
}
