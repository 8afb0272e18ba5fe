package systems

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/config"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/game"
	"github.com/decker502/sortbox/pkg/utils"
)

// 渲染视觉常量
var (
	// 桌面背景色
	backgroundColor = color.RGBA{R: 222, G: 205, B: 179, A: 255}

	// 放置区底板颜色
	zonePanelColor = color.RGBA{R: 200, G: 182, B: 155, A: 255}

	// 格线颜色
	gridLineColor = color.RGBA{R: 150, G: 132, B: 105, A: 255}

	// 已占用格子的覆盖色（淡绿）
	occupiedCellColor = color.RGBA{R: 120, G: 180, B: 120, A: 60}

	// 拖拽提示：最近空格的高亮色
	hintCellColor = color.RGBA{R: 255, G: 230, B: 120, A: 120}

	// 物品悬停时的描边色
	hoverOutlineColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// 纸箱颜色
	boxFillColor   = color.RGBA{R: 168, G: 126, B: 80, A: 255}
	boxStrokeColor = color.RGBA{R: 110, G: 80, B: 50, A: 255}

	// 全屏遮罩（暂停/完成横幅）
	overlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

// 描边宽度
const (
	gridLineWidth    = float32(1.5)
	zoneBorderWidth  = float32(2.5)
	hoverStrokeWidth = float32(2.0)
)

// RenderSystem 渲染系统
// 所有图形都用纯色矩形/菱形加调试文字程序化绘制，不加载图片资源。
// 绘制顺序：背景 → 放置区（含格线和占用覆盖）→ 物品（按层级和
// 实体ID排序，ID越大越靠上）→ HUD → 暂停/完成遮罩
type RenderSystem struct {
	entityManager  *ecs.EntityManager
	gameState      *game.GameState
	gridZoneSystem *GridZoneSystem
	dragSystem     *DragSystem
	levelSystem    *LevelSystem

	// levelName 关卡显示名（HUD 用）
	levelName string
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, gs *game.GameState, gzs *GridZoneSystem,
	ds *DragSystem, ls *LevelSystem, levelName string) *RenderSystem {
	return &RenderSystem{
		entityManager:  em,
		gameState:      gs,
		gridZoneSystem: gzs,
		dragSystem:     ds,
		levelSystem:    ls,
		levelName:      levelName,
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.drawGridZones(screen)
	s.drawSlotZones(screen)
	s.drawSpawnBoxes(screen)
	s.drawDragHint(screen)
	s.drawItems(screen)
	s.drawHUD(screen)
	s.drawOverlays(screen)
}

// drawGridZones 绘制所有网格放置区：底板、格线、占用覆盖
func (s *RenderSystem) drawGridZones(screen *ebiten.Image) {
	zoneIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.GridZoneComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	for _, zoneID := range zoneIDs {
		zone, _ := ecs.GetComponent[*components.GridZoneComponent](s.entityManager, zoneID)

		// 底板用判定同款的外接矩形，保证可视边界和落点边界一致
		cx, cy, w, h, ok := s.gridZoneSystem.ZoneBounds(zoneID)
		if !ok {
			continue
		}
		left := float32(cx - w/2)
		top := float32(cy - h/2)
		vector.DrawFilledRect(screen, left, top, float32(w), float32(h), zonePanelColor, true)
		vector.StrokeRect(screen, left, top, float32(w), float32(h), zoneBorderWidth, gridLineColor, true)

		for row := 0; row < zone.Rows; row++ {
			for col := 0; col < zone.Cols; col++ {
				x, y, ok := s.gridZoneSystem.CellWorldPosition(zoneID, col, row)
				if !ok {
					continue
				}
				occupied := zone.Occupancy[row][col] != ecs.InvalidEntity
				if zone.Isometric {
					s.drawIsoCell(screen, x, y, zone.IsoTileWidth, zone.IsoTileHeight, occupied)
				} else {
					s.drawRectCell(screen, x, y, zone.CellWidth, zone.CellHeight, occupied)
				}
			}
		}

		if zone.Label != "" {
			ebitenutil.DebugPrintAt(screen, zone.Label, int(cx-w/2), int(cy-h/2)-18)
		}
	}
}

// drawRectCell 绘制矩形格子的格线和占用覆盖
func (s *RenderSystem) drawRectCell(screen *ebiten.Image, cx, cy, w, h float64, occupied bool) {
	left := float32(cx - w/2)
	top := float32(cy - h/2)
	vector.StrokeRect(screen, left, top, float32(w), float32(h), gridLineWidth, gridLineColor, true)
	if occupied {
		vector.DrawFilledRect(screen, left, top, float32(w), float32(h), occupiedCellColor, true)
	}
}

// drawIsoCell 绘制菱形格子的四条边
func (s *RenderSystem) drawIsoCell(screen *ebiten.Image, cx, cy, w, h float64, occupied bool) {
	// 菱形四个顶点：上、右、下、左
	topX, topY := float32(cx), float32(cy-h/2)
	rightX, rightY := float32(cx+w/2), float32(cy)
	bottomX, bottomY := float32(cx), float32(cy+h/2)
	leftX, leftY := float32(cx-w/2), float32(cy)

	clr := gridLineColor
	if occupied {
		clr = color.RGBA{R: 120, G: 180, B: 120, A: 255}
	}
	vector.StrokeLine(screen, topX, topY, rightX, rightY, gridLineWidth, clr, true)
	vector.StrokeLine(screen, rightX, rightY, bottomX, bottomY, gridLineWidth, clr, true)
	vector.StrokeLine(screen, bottomX, bottomY, leftX, leftY, gridLineWidth, clr, true)
	vector.StrokeLine(screen, leftX, leftY, topX, topY, gridLineWidth, clr, true)
}

// drawSlotZones 绘制单槽放置区
func (s *RenderSystem) drawSlotZones(screen *ebiten.Image) {
	zoneIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SlotZoneComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	for _, zoneID := range zoneIDs {
		slot, _ := ecs.GetComponent[*components.SlotZoneComponent](s.entityManager, zoneID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, zoneID)

		left := float32(pos.X - slot.Width/2)
		top := float32(pos.Y - slot.Height/2)
		vector.DrawFilledRect(screen, left, top, float32(slot.Width), float32(slot.Height), zonePanelColor, true)
		vector.StrokeRect(screen, left, top, float32(slot.Width), float32(slot.Height), zoneBorderWidth, gridLineColor, true)
		if slot.Occupant != ecs.InvalidEntity {
			vector.DrawFilledRect(screen, left, top, float32(slot.Width), float32(slot.Height), occupiedCellColor, true)
		}

		if slot.Label != "" {
			ebitenutil.DebugPrintAt(screen, slot.Label, int(left), int(top)-18)
		}
	}
}

// drawSpawnBoxes 绘制纸箱（箱体和箱口开缝）
func (s *RenderSystem) drawSpawnBoxes(screen *ebiten.Image) {
	boxIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SpawnBoxComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	for _, boxID := range boxIDs {
		box, _ := ecs.GetComponent[*components.SpawnBoxComponent](s.entityManager, boxID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, boxID)

		left := float32(pos.X - config.SpawnBoxWidth/2)
		top := float32(pos.Y - config.SpawnBoxHeight/2)
		vector.DrawFilledRect(screen, left, top, config.SpawnBoxWidth, config.SpawnBoxHeight, boxFillColor, true)
		vector.StrokeRect(screen, left, top, config.SpawnBoxWidth, config.SpawnBoxHeight, zoneBorderWidth, boxStrokeColor, true)

		// 箱口开缝
		vector.StrokeLine(screen, left+12, top+10, left+config.SpawnBoxWidth-12, top+10, 3, boxStrokeColor, true)

		label := fmt.Sprintf("箱内: %d", len(box.Queue))
		ebitenutil.DebugPrintAt(screen, label, int(pos.X)-28, int(pos.Y)+8)
	}
}

// drawDragHint 拖拽时高亮目标放置区里离物品最近的空格
// 受设置里的 ShowHints 开关控制
func (s *RenderSystem) drawDragHint(screen *ebiten.Image) {
	if !s.hintsEnabled() {
		return
	}

	draggedID := s.dragSystem.DraggedItem()
	if draggedID == ecs.InvalidEntity {
		return
	}
	item, ok := ecs.GetComponent[*components.ItemComponent](s.entityManager, draggedID)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, draggedID)
	if !ok {
		return
	}

	zoneIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.GridZoneComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)
	for _, zoneID := range zoneIDs {
		zone, _ := ecs.GetComponent[*components.GridZoneComponent](s.entityManager, zoneID)
		cx, cy, w, h, ok := s.gridZoneSystem.ZoneBounds(zoneID)
		if !ok {
			continue
		}
		if !utils.PointInRect(pos.X, pos.Y, cx, cy, w, h) {
			continue
		}
		if zone.RequireExactMatch && item.Type != zone.Accept {
			continue
		}

		col, row, found := s.gridZoneSystem.FindNearestFreeCell(zoneID, pos.X, pos.Y)
		if !found {
			continue
		}
		x, y, _ := s.gridZoneSystem.CellWorldPosition(zoneID, col, row)
		if zone.Isometric {
			s.drawIsoCell(screen, x, y, zone.IsoTileWidth, zone.IsoTileHeight, false)
			vector.DrawFilledRect(screen, float32(x)-6, float32(y)-6, 12, 12, hintCellColor, true)
		} else {
			vector.DrawFilledRect(screen, float32(x-zone.CellWidth/2), float32(y-zone.CellHeight/2),
				float32(zone.CellWidth), float32(zone.CellHeight), hintCellColor, true)
		}
		return // 每帧只提示一个放置区
	}
}

// drawItems 按层级绘制所有物品
// 同层内按实体ID升序（后生成的画在上面，和拾取判定一致）
func (s *RenderSystem) drawItems(screen *ebiten.Image) {
	itemIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SpriteComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	// GetEntitiesWith 已按ID升序返回，这里只需按层级稳定排序
	sort.SliceStable(itemIDs, func(i, j int) bool {
		si, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, itemIDs[i])
		sj, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, itemIDs[j])
		return si.Layer < sj.Layer
	})

	for _, id := range itemIDs {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		left := float32(pos.X - sprite.Width/2)
		top := float32(pos.Y - sprite.Height/2)
		vector.DrawFilledRect(screen, left, top, float32(sprite.Width), float32(sprite.Height), sprite.Color, true)

		if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, id); ok && drag.Hovered {
			vector.StrokeRect(screen, left, top, float32(sprite.Width), float32(sprite.Height), hoverStrokeWidth, hoverOutlineColor, true)
		}

		if sprite.Label != "" {
			ebitenutil.DebugPrintAt(screen, sprite.Label, int(left)+4, int(top)+4)
		}
	}
}

// drawHUD 绘制分数、剩余计数和底部操作提示
func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	score := fmt.Sprintf("%s  分数: %d", s.levelName, s.gameState.CurrentScore())
	ebitenutil.DebugPrintAt(screen, score, int(config.HUDScoreX), int(config.HUDScoreY))

	remaining := fmt.Sprintf("剩余物品: %d", s.gameState.RemainingItems())
	ebitenutil.DebugPrintAt(screen, remaining, int(config.HUDRemainingX), int(config.HUDRemainingY))

	if s.hintsEnabled() && !s.gameState.IsLevelCompleted() {
		ebitenutil.DebugPrintAt(screen, "拖拽分拣物品 | ESC 暂停 | R 重新开始", int(config.HUDScoreX), int(config.HUDHintY))
	}
}

// drawOverlays 绘制暂停遮罩和完成横幅
func (s *RenderSystem) drawOverlays(screen *ebiten.Image) {
	centerX := config.GameWindowWidth / 2
	centerY := config.GameWindowHeight / 2

	if s.gameState.IsPaused {
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, overlayColor, true)
		ebitenutil.DebugPrintAt(screen, "已暂停 (ESC 继续)", centerX-60, centerY)
		return
	}

	if !s.gameState.IsLevelCompleted() {
		return
	}

	// 完成横幅淡入（前 0.5 秒）
	fade := s.levelSystem.BannerTime() / 0.5
	if fade > 1 {
		fade = 1
	}
	banner := overlayColor
	banner.A = uint8(float64(banner.A) * fade)
	vector.DrawFilledRect(screen, 0, float32(centerY-80), config.GameWindowWidth, 160, banner, true)

	msg := fmt.Sprintf("关卡完成! 得分: %d", s.gameState.CurrentScore())
	ebitenutil.DebugPrintAt(screen, msg, centerX-70, centerY-20)

	if s.levelSystem.NextLevelAvailable() {
		ebitenutil.DebugPrintAt(screen, "N 下一关 | R 重新开始", centerX-70, centerY+10)
	} else {
		ebitenutil.DebugPrintAt(screen, "全部关卡完成! R 重新开始", centerX-80, centerY+10)
	}
}

// hintsEnabled 读取设置里的提示开关
func (s *RenderSystem) hintsEnabled() bool {
	sm := s.gameState.GetSettingsManager()
	if sm == nil {
		return true
	}
	return sm.GetSettings().ShowHints
}
