// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// ItemType 定义可拖拽物品的类型
// 物品类型是封闭枚举：关卡配置中的字符串在加载时解析一次，
// 运行时所有类型匹配都使用整数比较，不再比较字符串
type ItemType int

const (
	// ItemUnknown 未知物品类型
	ItemUnknown ItemType = iota
	// ItemBook 书本（放入书架）
	ItemBook
	// ItemToy 玩具（放入玩具格）
	ItemToy
	// ItemTool 工具（挂上工具板）
	ItemTool
	// ItemGem 宝石（放入展示格）
	ItemGem
	// ItemKey 钥匙（挂上挂钩）
	ItemKey
	// ItemCoin 硬币（投入钱罐）
	ItemCoin
)

// String 返回物品类型的字符串表示
func (t ItemType) String() string {
	switch t {
	case ItemBook:
		return "book"
	case ItemToy:
		return "toy"
	case ItemTool:
		return "tool"
	case ItemGem:
		return "gem"
	case ItemKey:
		return "key"
	case ItemCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// ParseItemType 将配置文件中的物品类型字符串解析为 ItemType
// 未知字符串返回错误，保证非法配置在关卡加载阶段就被拒绝，
// 而不是在玩家拖拽时才暴露
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "book":
		return ItemBook, nil
	case "toy":
		return ItemToy, nil
	case "tool":
		return ItemTool, nil
	case "gem":
		return ItemGem, nil
	case "key":
		return ItemKey, nil
	case "coin":
		return ItemCoin, nil
	default:
		return ItemUnknown, fmt.Errorf("unknown item type: %q", s)
	}
}

// AllItemTypes 返回所有有效的物品类型（不含 ItemUnknown）
// 用于配置校验和调试工具遍历
func AllItemTypes() []ItemType {
	return []ItemType{ItemBook, ItemToy, ItemTool, ItemGem, ItemKey, ItemCoin}
}
