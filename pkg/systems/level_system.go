package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/game"
)

// LevelSystem 关卡进度系统
// 负责完成判定、进度存档、重新开始和关卡切换的快捷键
//
// 计数本身是事件驱动的（放置系统直接更新 GameState），
// 这里每帧调用的 CheckCompletion 只是幂等的触发检查
type LevelSystem struct {
	entityManager  *ecs.EntityManager
	gameState      *game.GameState
	sceneManager   *game.SceneManager
	spawnBoxSystem *SpawnBoxSystem
	gridZoneSystem *GridZoneSystem

	// levelIDs 全部关卡ID（计算下一关用）
	levelIDs []string

	// bannerTime 完成横幅已显示的时间（秒）
	bannerTime float64
}

// NewLevelSystem 创建关卡进度系统
func NewLevelSystem(em *ecs.EntityManager, gs *game.GameState, sm *game.SceneManager,
	sbs *SpawnBoxSystem, gzs *GridZoneSystem, levelIDs []string) *LevelSystem {
	return &LevelSystem{
		entityManager:  em,
		gameState:      gs,
		sceneManager:   sm,
		spawnBoxSystem: sbs,
		gridZoneSystem: gzs,
		levelIDs:       levelIDs,
	}
}

// BannerTime 返回完成横幅已显示的时间（渲染淡入用）
func (s *LevelSystem) BannerTime() float64 {
	return s.bannerTime
}

// Update 处理关卡级输入和完成判定
func (s *LevelSystem) Update(deltaTime float64) {
	// ESC 切换暂停（完成后不再响应）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !s.gameState.IsLevelCompleted() {
		s.gameState.TogglePause()
		if s.gameState.IsPaused {
			log.Printf("[LevelSystem] 游戏暂停 (ESC)")
		} else {
			log.Printf("[LevelSystem] 游戏恢复 (ESC)")
		}
		return
	}

	// R 重新开始本关（任何时候可用）
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.RestartLevel()
		return
	}

	if s.gameState.IsPaused {
		return
	}

	// 完成判定：恰好触发一次
	if s.gameState.CheckCompletion() {
		s.bannerTime = 0
		s.saveProgress()
	}

	if s.gameState.IsLevelCompleted() {
		s.bannerTime += deltaTime

		// N 进入下一关（如果有）
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			if next := game.NextLevelID(s.levelIDs, s.gameState.LevelID); next != "" {
				s.sceneManager.LoadLevel(next)
			}
		}
	}
}

// NextLevelAvailable 当前关卡之后是否还有关卡（渲染提示用）
func (s *LevelSystem) NextLevelAvailable() bool {
	return game.NextLevelID(s.levelIDs, s.gameState.LevelID) != ""
}

// RestartLevel 重新开始当前关卡
// 清空所有放置区占用、销毁所有物品、恢复纸箱队列、归零计数
func (s *LevelSystem) RestartLevel() {
	// 清空网格放置区
	gridIDs := s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.GridZoneComponent]())
	for _, id := range gridIDs {
		s.gridZoneSystem.ResetZone(id)
	}

	// 清空单槽放置区
	slotIDs := s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.SlotZoneComponent]())
	for _, id := range slotIDs {
		if slot, ok := ecs.GetComponent[*components.SlotZoneComponent](s.entityManager, id); ok {
			slot.Occupant = ecs.InvalidEntity
		}
	}

	// 纸箱恢复初始队列（同时销毁所有物品实体）
	boxIDs := s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.SpawnBoxComponent]())
	for _, id := range boxIDs {
		s.spawnBoxSystem.ResetToInitialState(id)
	}

	s.bannerTime = 0
	s.gameState.RestartLevel()
}

// saveProgress 关卡完成时写入存档
func (s *LevelSystem) saveProgress() {
	saveManager := s.gameState.GetSaveManager()
	if saveManager == nil {
		return
	}

	next := game.NextLevelID(s.levelIDs, s.gameState.LevelID)
	saveManager.MarkLevelCompleted(s.gameState.LevelID, s.gameState.CurrentScore(), next)
	if err := saveManager.Save(); err != nil {
		log.Printf("[LevelSystem] 存档保存失败: %v", err)
	} else {
		log.Printf("[LevelSystem] 进度已保存: 完成 %s，解锁 %q", s.gameState.LevelID, next)
	}
}
