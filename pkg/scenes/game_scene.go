package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/embedded"
	"github.com/decker502/sortbox/pkg/entities"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/systems"
)

// GameScene 分拣关卡场景
// 持有本关的实体管理器和全部系统，按固定顺序驱动它们
type GameScene struct {
	levelID       string
	levelConfig   *config.LevelConfig
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	sceneManager  *game.SceneManager

	// 各系统（Update 按声明顺序调用）
	levelSystem    *systems.LevelSystem
	spawnBoxSystem *systems.SpawnBoxSystem
	dragSystem     *systems.DragSystem
	snapSystem     *systems.SnapSystem
	renderSystem   *systems.RenderSystem

	// boxEntity 本关的纸箱实体
	boxEntity ecs.EntityID
}

// NewGameScene 创建并初始化关卡场景
// 关卡配置从嵌入资源加载，加载失败返回错误（调用方决定回退行为）
func NewGameScene(levelID string, sceneManager *game.SceneManager) (*GameScene, error) {
	data, err := embedded.ReadFile(embedded.LevelPath(levelID))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", levelID, err)
	}
	cfg, err := config.ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", levelID, err)
	}

	scene := &GameScene{
		levelID:       levelID,
		levelConfig:   cfg,
		entityManager: ecs.NewEntityManager(),
		gameState:     game.GetGameState(),
		sceneManager:  sceneManager,
	}

	if err := scene.buildEntities(); err != nil {
		return nil, err
	}
	scene.buildSystems()

	scene.gameState.ResetForLevel(levelID, cfg.TotalItems(), cfg.PointsPerPlacement)
	log.Printf("[GameScene] 关卡 %s 初始化完成: %d 个物品, %d 个放置区",
		levelID, cfg.TotalItems(), len(cfg.Zones))
	return scene, nil
}

// buildEntities 按关卡配置创建放置区和纸箱实体
// 放置区先于纸箱创建：实体ID顺序即落点检查顺序
func (s *GameScene) buildEntities() error {
	for i, zc := range s.levelConfig.Zones {
		if _, err := entities.CreateZone(s.entityManager, zc); err != nil {
			return fmt.Errorf("level %s zones[%d]: %w", s.levelID, i, err)
		}
	}
	s.boxEntity = entities.CreateSpawnBox(s.entityManager, s.levelConfig)
	return nil
}

// buildSystems 创建并接线全部系统
func (s *GameScene) buildSystems() {
	em := s.entityManager
	gs := s.gameState

	gridZoneSystem := systems.NewGridZoneSystem(em)
	placementSystem := systems.NewPlacementSystem(em, gridZoneSystem, gs)
	s.dragSystem = systems.NewDragSystem(em, gs, placementSystem, gridZoneSystem)
	s.snapSystem = systems.NewSnapSystem(em)
	s.spawnBoxSystem = systems.NewSpawnBoxSystem(em)

	levelIDs, err := embedded.ListLevelIDs()
	if err != nil {
		log.Printf("[GameScene] Warning: 无法枚举关卡列表: %v", err)
	}
	s.levelSystem = systems.NewLevelSystem(em, gs, s.sceneManager, s.spawnBoxSystem, gridZoneSystem, levelIDs)

	s.renderSystem = systems.NewRenderSystem(em, gs, gridZoneSystem, s.dragSystem, s.levelSystem, s.levelConfig.Name)
}

// Update 驱动本帧的全部系统
//
// 顺序约定：
//  1. 关卡系统（快捷键、完成判定）
//  2. 拖拽系统（输入和放置判定）
//  3. 纸箱系统（吐出下一个物品）
//  4. 吸附动画系统
//  5. 清理延迟销毁的实体
func (s *GameScene) Update(deltaTime float64) {
	s.levelSystem.Update(deltaTime)

	// 拖拽系统自带暂停处理（放弃进行中的拖拽），始终调用
	s.dragSystem.Update(deltaTime)

	if !s.gameState.IsPaused {
		s.spawnBoxSystem.Update(deltaTime)
		s.snapSystem.Update(deltaTime)
	}

	s.entityManager.FlushDestroyed()
}

// Draw 绘制本帧画面
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// SaveOnExit 游戏退出时是否需要保存
// 进度计数是事件驱动的内存状态，存档只在关卡完成时写入，
// 退出时无需额外落盘
func (s *GameScene) SaveOnExit() bool {
	return false
}

// LevelID 返回本场景的关卡ID
func (s *GameScene) LevelID() string {
	return s.levelID
}

// RemainingInBox 纸箱中尚未吐出的物品数（调试接口）
func (s *GameScene) RemainingInBox() int {
	return s.spawnBoxSystem.RemainingCount(s.boxEntity)
}

// 确认 GameScene 实现了场景接口
var _ game.Scene = (*GameScene)(nil)
