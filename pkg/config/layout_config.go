package config

// 布局配置常量
// 本文件定义了游戏窗口和 HUD 元素的布局参数
// 所有坐标使用逻辑屏幕坐标（本项目无摄像机滚动，世界坐标 = 屏幕坐标）

const (
	// GameWindowWidth 游戏逻辑宽度（像素）
	// Ebitengine 会按此逻辑尺寸自动缩放到实际窗口
	GameWindowWidth = 1024

	// GameWindowHeight 游戏逻辑高度（像素）
	GameWindowHeight = 768
)

// HUD 元素位置
const (
	// HUDScoreX/Y 分数显示位置（左上角）
	HUDScoreX = 16.0
	HUDScoreY = 16.0

	// HUDRemainingX/Y 剩余物品计数显示位置
	HUDRemainingX = 16.0
	HUDRemainingY = 36.0

	// HUDHintY 底部操作提示的Y坐标
	HUDHintY = 744.0
)

// 纸箱默认参数
const (
	// DefaultSpawnBoxX/Y 纸箱默认位置（关卡配置未指定时使用）
	DefaultSpawnBoxX = 512.0
	DefaultSpawnBoxY = 648.0

	// SpawnBoxWidth/Height 纸箱绘制尺寸（像素）
	SpawnBoxWidth  = 160.0
	SpawnBoxHeight = 110.0

	// SpawnBoxMouthOffsetY 箱口锚点相对箱子中心的Y偏移（像素）
	// 负值表示物品摆在箱子上沿
	SpawnBoxMouthOffsetY = -70.0
)

// 物品默认尺寸
const (
	// DefaultItemSize 物品的默认边长（像素）
	// 比默认格子(72)略小，物品落格后四周留出格线
	DefaultItemSize = 56.0
)

// 吸附动画时长
const (
	// SnapAcceptDuration 放置成功后飞向格子锚点的时长（秒）
	SnapAcceptDuration = 0.18

	// SnapRejectDuration 放置被拒后飞回原位的时长（秒）
	SnapRejectDuration = 0.28
)
