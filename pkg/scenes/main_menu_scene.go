package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/embedded"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/utils"
)

// 主菜单视觉常量
var (
	menuBackgroundColor = color.RGBA{R: 50, G: 60, B: 75, A: 255}
	menuEntryColor      = color.RGBA{R: 80, G: 95, B: 115, A: 255}
	menuLockedColor     = color.RGBA{R: 60, G: 65, B: 72, A: 255}
	menuDoneColor       = color.RGBA{R: 75, G: 120, B: 85, A: 255}
	menuHoverColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// 关卡入口按钮布局
const (
	menuEntryWidth   = 240.0
	menuEntryHeight  = 56.0
	menuEntrySpacing = 16.0
	menuFirstEntryY  = 280.0
)

// MainMenuScene 主菜单场景
// 列出全部关卡，未解锁的置灰。点击已解锁的关卡进入游戏
type MainMenuScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState

	// levelIDs 全部关卡ID（字典序）
	levelIDs []string

	// hovered 当前指针悬停的关卡序号（-1 表示没有）
	hovered int
}

// NewMainMenuScene 创建主菜单场景
func NewMainMenuScene(sceneManager *game.SceneManager) *MainMenuScene {
	levelIDs, err := embedded.ListLevelIDs()
	if err != nil {
		log.Printf("[MainMenuScene] 无法枚举关卡: %v", err)
	}

	return &MainMenuScene{
		sceneManager: sceneManager,
		gameState:    game.GetGameState(),
		levelIDs:     levelIDs,
		hovered:      -1,
	}
}

// Update 处理菜单输入
func (s *MainMenuScene) Update(deltaTime float64) {
	pointer := utils.GetPointerState()
	px, py := float64(pointer.X), float64(pointer.Y)

	s.hovered = -1
	for i := range s.levelIDs {
		cx, cy := s.entryCenter(i)
		if utils.PointInRect(px, py, cx, cy, menuEntryWidth, menuEntryHeight) {
			s.hovered = i
			break
		}
	}

	if pointer.JustReleased && s.hovered >= 0 {
		levelID := s.levelIDs[s.hovered]
		if s.isUnlocked(levelID) {
			s.sceneManager.LoadLevel(levelID)
		}
	}

	// Enter 直接进入最新解锁的关卡
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if levelID := s.latestUnlocked(); levelID != "" {
			s.sceneManager.LoadLevel(levelID)
		}
	}
}

// Draw 绘制主菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)

	centerX := config.GameWindowWidth / 2
	ebitenutil.DebugPrintAt(screen, "分拣工坊", centerX-24, 160)
	ebitenutil.DebugPrintAt(screen, "把纸箱里的物品拖到正确的位置", centerX-90, 190)

	saveManager := s.gameState.GetSaveManager()
	totalScore := 0
	if saveManager != nil {
		totalScore = saveManager.GetTotalScore()
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("累计得分: %d", totalScore), centerX-40, 220)

	for i, levelID := range s.levelIDs {
		s.drawEntry(screen, i, levelID)
	}

	ebitenutil.DebugPrintAt(screen, "点击关卡开始 | Enter 进入最新关卡", centerX-110, config.GameWindowHeight-40)
}

// drawEntry 绘制单个关卡入口按钮
func (s *MainMenuScene) drawEntry(screen *ebiten.Image, index int, levelID string) {
	cx, cy := s.entryCenter(index)
	left := float32(cx - menuEntryWidth/2)
	top := float32(cy - menuEntryHeight/2)

	unlocked := s.isUnlocked(levelID)
	completed := s.isCompleted(levelID)

	clr := menuEntryColor
	switch {
	case !unlocked:
		clr = menuLockedColor
	case completed:
		clr = menuDoneColor
	}
	vector.DrawFilledRect(screen, left, top, menuEntryWidth, menuEntryHeight, clr, true)

	if index == s.hovered && unlocked {
		vector.StrokeRect(screen, left, top, menuEntryWidth, menuEntryHeight, 2, menuHoverColor, true)
	}

	label := "关卡 " + levelID
	if !unlocked {
		label += " (未解锁)"
	} else if completed {
		label += " (已完成)"
	}
	ebitenutil.DebugPrintAt(screen, label, int(left)+16, int(cy)-6)
}

// entryCenter 计算第 index 个关卡入口按钮的中心坐标
func (s *MainMenuScene) entryCenter(index int) (float64, float64) {
	cx := float64(config.GameWindowWidth) / 2
	cy := menuFirstEntryY + float64(index)*(menuEntryHeight+menuEntrySpacing)
	return cx, cy
}

// isUnlocked 关卡是否已解锁
// 第一个关卡永远解锁，其余看存档的解锁进度
func (s *MainMenuScene) isUnlocked(levelID string) bool {
	if len(s.levelIDs) > 0 && levelID == s.levelIDs[0] {
		return true
	}
	saveManager := s.gameState.GetSaveManager()
	if saveManager == nil {
		return levelID == game.FirstLevelID(s.levelIDs)
	}
	return saveManager.GetHighestLevel() >= levelID || saveManager.IsLevelCompleted(levelID)
}

// isCompleted 关卡是否已通关
func (s *MainMenuScene) isCompleted(levelID string) bool {
	saveManager := s.gameState.GetSaveManager()
	return saveManager != nil && saveManager.IsLevelCompleted(levelID)
}

// latestUnlocked 返回最新解锁的关卡ID（全部锁定时返回第一关）
func (s *MainMenuScene) latestUnlocked() string {
	latest := ""
	for _, levelID := range s.levelIDs {
		if s.isUnlocked(levelID) {
			latest = levelID
		}
	}
	if latest == "" {
		latest = game.FirstLevelID(s.levelIDs)
	}
	return latest
}

var _ game.Scene = (*MainMenuScene)(nil)
