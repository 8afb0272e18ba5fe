// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针状态
// 统一鼠标和触摸输入：拖拽系统只关心"指针"，不关心输入来源
type PointerState struct {
	// X/Y 指针位置（逻辑屏幕坐标）
	X, Y int
	// JustPressed 本帧刚刚按下/触摸
	JustPressed bool
	// Pressed 按住中（拖拽进行的条件）
	Pressed bool
	// JustReleased 本帧刚刚松开（触发放置判定）
	JustReleased bool
	// IsTouch 本帧状态来自触摸而非鼠标
	IsTouch bool
}

// 上一帧的触摸位置
// 触摸松开的那一帧 ebiten.TouchPosition 返回 (0,0)，
// 需要用松开前最后的位置作为放置点
var lastTouchX, lastTouchY int

// GetPointerState 获取当前帧的指针状态
// 优先检测触摸输入（移动设备），否则回退到鼠标
func GetPointerState() PointerState {
	state := PointerState{}

	// 活动触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.IsTouch = true
		state.Pressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = state.X, state.Y

		justPressed := inpututil.AppendJustPressedTouchIDs(nil)
		state.JustPressed = len(justPressed) > 0
		return state
	}

	// 刚刚结束的触摸：位置用松开前的最后位置
	released := inpututil.AppendJustReleasedTouchIDs(nil)
	if len(released) > 0 {
		state.IsTouch = true
		state.JustReleased = true
		state.X, state.Y = lastTouchX, lastTouchY
		return state
	}

	// 鼠标
	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}
