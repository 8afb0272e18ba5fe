package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/sortbox/pkg/utils"
)

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
//
// 关卡进度计数采用事件驱动：放置系统在每次接受/释放时
// 调用 OnItemPlaced / OnItemRemoved 做 O(1) 计数更新，
// 不做逐帧全量扫描
type GameState struct {
	// 当前关卡进度
	LevelID            string // 当前关卡ID
	TotalExpected      int    // 本关需要正确放置的物品总数
	PlacedCorrectly    int    // 当前已正确放置的物品数
	Score              int    // 当前得分
	PointsPerPlacement int    // 每个正确放置的得分
	Completed          bool   // 关卡完成标志（false→true 恰好一次）

	// IsPaused 暂停状态（暂停时屏蔽游戏世界交互）
	IsPaused bool

	settingsManager *SettingsManager
	saveManager     *SaveManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{}
	}
	return globalGameState
}

// ResetForLevel 为新关卡重置进度状态
// 场景初始化时调用
func (gs *GameState) ResetForLevel(levelID string, totalExpected, pointsPerPlacement int) {
	gs.LevelID = levelID
	gs.TotalExpected = totalExpected
	gs.PlacedCorrectly = 0
	gs.Score = 0
	gs.PointsPerPlacement = pointsPerPlacement
	gs.Completed = false
	gs.IsPaused = false
}

// OnItemPlaced 物品被正确放置时调用（放置系统的接受路径）
func (gs *GameState) OnItemPlaced() {
	gs.PlacedCorrectly++
}

// OnItemRemoved 已放置的物品被重新拖起时调用
// 计数不降到负数：拖起未放置物品不会调用此方法，
// 这里的钳制只是防御编程错误
func (gs *GameState) OnItemRemoved() {
	if gs.PlacedCorrectly > 0 {
		gs.PlacedCorrectly--
	}
}

// CheckCompletion 检查并触发关卡完成
//
// 幂等：已完成后再调用是空操作。
// 完成条件满足时，Completed 置位、计算得分，并且恰好返回一次 true
// （调用方据此触发完成横幅和存档，不会重复触发）
func (gs *GameState) CheckCompletion() bool {
	if gs.Completed {
		return false
	}
	if gs.TotalExpected <= 0 || gs.PlacedCorrectly < gs.TotalExpected {
		return false
	}

	gs.Completed = true
	gs.Score = gs.PlacedCorrectly * gs.PointsPerPlacement
	log.Printf("[GameState] 关卡 %s 完成！得分 %d", gs.LevelID, gs.Score)
	return true
}

// RestartLevel 重置计数器、完成标志和得分
// 物品和放置区的重置由场景委托给各系统执行
func (gs *GameState) RestartLevel() {
	gs.PlacedCorrectly = 0
	gs.Score = 0
	gs.Completed = false
	gs.IsPaused = false
	log.Printf("[GameState] 重新开始关卡 %s", gs.LevelID)
}

// TogglePause 切换暂停状态
func (gs *GameState) TogglePause() {
	gs.IsPaused = !gs.IsPaused
}

// ========== UI 查询接口 ==========

// RemainingItems 返回尚未正确放置的物品数量
func (gs *GameState) RemainingItems() int {
	remaining := gs.TotalExpected - gs.PlacedCorrectly
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CurrentScore 返回当前得分
func (gs *GameState) CurrentScore() int {
	return gs.Score
}

// IsLevelCompleted 返回关卡是否已完成
func (gs *GameState) IsLevelCompleted() bool {
	return gs.Completed
}

// ========== 管理器访问 ==========

// GetSettingsManager 返回设置管理器（延迟初始化）
// gdata 打开失败时进入降级模式（仅内存设置），不阻止游戏启动
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[GameState] Warning: storage dir not ready: %v", err)
		}

		gdataManager, err := gdata.Open(gdata.Config{AppName: "sortbox"})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable, settings will not persist: %v", err)
			gdataManager = nil
		}

		sm, err := NewSettingsManager(gdataManager)
		if err != nil {
			log.Printf("[GameState] Warning: failed to init settings manager: %v", err)
		}
		gs.settingsManager = sm
	}
	return gs.settingsManager
}

// GetSaveManager 返回存档管理器（延迟初始化，默认目录 data/saves）
func (gs *GameState) GetSaveManager() *SaveManager {
	if gs.saveManager == nil {
		sm, err := NewSaveManager("data/saves")
		if err != nil {
			log.Printf("[GameState] Warning: failed to init save manager: %v", err)
			return nil
		}
		gs.saveManager = sm
	}
	return gs.saveManager
}

// SetSaveManager 注入存档管理器（测试和自定义存档目录用）
func (gs *GameState) SetSaveManager(sm *SaveManager) {
	gs.saveManager = sm
}
