package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/sortbox/pkg/types"
)

// 放置区类型常量（ZoneConfig.Kind 的合法取值）
const (
	// ZoneKindGrid 网格放置区（Rows x Cols 个格子）
	ZoneKindGrid = "grid"
	// ZoneKindSlot 单槽放置区（至多一个物品）
	ZoneKindSlot = "slot"
)

// LevelConfig 关卡配置数据结构
// 定义了一个分拣关卡的物品清单和放置区布局
type LevelConfig struct {
	ID          string `yaml:"id"`          // 关卡ID，如 "1-1"
	Name        string `yaml:"name"`        // 关卡名称，如 "整理书桌 1-1"
	Description string `yaml:"description"` // 关卡描述（可选）

	// PointsPerPlacement 每个正确放置的得分，默认 10
	PointsPerPlacement int `yaml:"pointsPerPlacement"`

	// Spawn 纸箱（物品容器）位置，缺省使用 DefaultSpawnBox 常量
	Spawn SpawnConfig `yaml:"spawn"`

	// Items 待分拣物品清单，按声明顺序逐个从纸箱吐出
	Items []ItemGroupConfig `yaml:"items"`

	// Zones 放置区列表
	Zones []ZoneConfig `yaml:"zones"`
}

// SpawnConfig 纸箱位置配置
type SpawnConfig struct {
	X float64 `yaml:"x"` // 纸箱中心X坐标
	Y float64 `yaml:"y"` // 纸箱中心Y坐标
}

// ItemGroupConfig 一组同类型物品
type ItemGroupConfig struct {
	Type  string `yaml:"type"`  // 物品类型："book", "toy", "tool", "gem", "key", "coin"
	Count int    `yaml:"count"` // 数量，必须 > 0
}

// ZoneConfig 单个放置区配置
// Kind 为 "grid" 时使用 Rows/Cols 和格子几何参数，
// 为 "slot" 时使用 Width/Height
type ZoneConfig struct {
	Kind  string `yaml:"kind"`  // 放置区类型："grid" 或 "slot"
	Label string `yaml:"label"` // 显示标题，如 "书架"

	Accept string `yaml:"accept"` // 接受的物品类型
	// AcceptAny 为 true 时接受任意类型（忽略 Accept 的匹配检查）
	// 零值 false 即"要求类型精确匹配"，与绝大多数放置区一致
	AcceptAny bool `yaml:"acceptAny"`

	X float64 `yaml:"x"` // 放置区中心X坐标
	Y float64 `yaml:"y"` // 放置区中心Y坐标

	// 网格参数（Kind == "grid"）
	Rows       int     `yaml:"rows"`       // 行数
	Cols       int     `yaml:"cols"`       // 列数
	CellWidth  float64 `yaml:"cellWidth"`  // 格子宽度，默认 72
	CellHeight float64 `yaml:"cellHeight"` // 格子高度，默认 72
	SpacingX   float64 `yaml:"spacingX"`   // 水平间距，默认 0
	SpacingY   float64 `yaml:"spacingY"`   // 垂直间距，默认 0

	// 等距布局参数（Kind == "grid" 且 Isometric == true）
	Isometric        bool    `yaml:"isometric"`        // 使用菱形投影
	IsoTileWidth     float64 `yaml:"isoTileWidth"`     // 菱形格宽度
	IsoTileHeight    float64 `yaml:"isoTileHeight"`    // 菱形格高度
	IsoColumnYOffset float64 `yaml:"isoColumnYOffset"` // 每列额外Y偏移

	// 单槽参数（Kind == "slot"）
	Width  float64 `yaml:"width"`  // 槽位宽度，默认 90
	Height float64 `yaml:"height"` // 槽位高度，默认 90
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseLevelConfig 从YAML字节流解析关卡配置
// 嵌入资源（embed.FS）加载路径使用此入口
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateLevelConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TotalItems 返回关卡的物品总数（完成关卡需要正确放置的数量）
func (c *LevelConfig) TotalItems() int {
	total := 0
	for _, g := range c.Items {
		total += g.Count
	}
	return total
}

// ZoneCapacity 返回单个放置区可容纳的物品数量
func (z *ZoneConfig) ZoneCapacity() int {
	if z.Kind == ZoneKindGrid {
		return z.Rows * z.Cols
	}
	return 1
}

// applyDefaults 为缺失的可选字段设置默认值
// 保证旧配置文件可正常加载（向后兼容）
func applyDefaults(cfg *LevelConfig) {
	if cfg.PointsPerPlacement == 0 {
		cfg.PointsPerPlacement = 10
	}

	if cfg.Spawn.X == 0 && cfg.Spawn.Y == 0 {
		cfg.Spawn.X = DefaultSpawnBoxX
		cfg.Spawn.Y = DefaultSpawnBoxY
	}

	for i := range cfg.Zones {
		z := &cfg.Zones[i]
		switch z.Kind {
		case ZoneKindGrid:
			if !z.Isometric {
				if z.CellWidth == 0 {
					z.CellWidth = 72
				}
				if z.CellHeight == 0 {
					z.CellHeight = 72
				}
			}
		case ZoneKindSlot:
			if z.Width == 0 {
				z.Width = 90
			}
			if z.Height == 0 {
				z.Height = 90
			}
		}
	}
}

// validateLevelConfig 校验关卡配置的完整性
// 非法配置在加载阶段立即报错，而不是等到玩家操作时才暴露
func validateLevelConfig(cfg *LevelConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("level config missing required field: id")
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("level %s has no items", cfg.ID)
	}
	if len(cfg.Zones) == 0 {
		return fmt.Errorf("level %s has no zones", cfg.ID)
	}

	// 物品清单校验
	itemCounts := make(map[types.ItemType]int)
	for i, g := range cfg.Items {
		itemType, err := types.ParseItemType(g.Type)
		if err != nil {
			return fmt.Errorf("level %s items[%d]: %w", cfg.ID, i, err)
		}
		if g.Count <= 0 {
			return fmt.Errorf("level %s items[%d] (%s): count must be positive, got %d", cfg.ID, i, g.Type, g.Count)
		}
		itemCounts[itemType] += g.Count
	}

	// 放置区校验
	totalCapacity := 0
	typeCapacity := make(map[types.ItemType]int)
	anyCapacity := 0
	for i, z := range cfg.Zones {
		switch z.Kind {
		case ZoneKindGrid:
			if z.Rows <= 0 || z.Cols <= 0 {
				return fmt.Errorf("level %s zones[%d]: grid needs positive rows/cols, got %dx%d", cfg.ID, i, z.Rows, z.Cols)
			}
			if z.Isometric {
				if z.IsoTileWidth <= 0 || z.IsoTileHeight <= 0 {
					return fmt.Errorf("level %s zones[%d]: isometric grid needs positive isoTileWidth/isoTileHeight", cfg.ID, i)
				}
			} else {
				if z.CellWidth <= 0 || z.CellHeight <= 0 {
					return fmt.Errorf("level %s zones[%d]: grid needs positive cellWidth/cellHeight", cfg.ID, i)
				}
			}
		case ZoneKindSlot:
			if z.Width <= 0 || z.Height <= 0 {
				return fmt.Errorf("level %s zones[%d]: slot needs positive width/height", cfg.ID, i)
			}
		default:
			return fmt.Errorf("level %s zones[%d]: unknown kind %q (must be %q or %q)", cfg.ID, i, z.Kind, ZoneKindGrid, ZoneKindSlot)
		}

		acceptType, err := types.ParseItemType(z.Accept)
		if err != nil && !z.AcceptAny {
			return fmt.Errorf("level %s zones[%d]: %w", cfg.ID, i, err)
		}

		capacity := z.ZoneCapacity()
		totalCapacity += capacity
		if z.AcceptAny {
			anyCapacity += capacity
		} else {
			typeCapacity[acceptType] += capacity
		}
	}

	// 容量校验：总容量和分类型容量都必须装得下全部物品，
	// 否则关卡永远无法完成
	if total := cfg.TotalItems(); totalCapacity < total {
		return fmt.Errorf("level %s: zone capacity %d < item count %d (level cannot be completed)", cfg.ID, totalCapacity, total)
	}
	for itemType, count := range itemCounts {
		if typeCapacity[itemType]+anyCapacity < count {
			return fmt.Errorf("level %s: capacity for %s items is %d (+%d any) < %d needed",
				cfg.ID, itemType, typeCapacity[itemType], anyCapacity, count)
		}
	}

	return nil
}
