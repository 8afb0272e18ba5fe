package game

import "sort"

// SortLevelIDs 将关卡ID列表按游玩顺序排序（字典序，"1-1" < "1-2" < "2-1"）
// 关卡ID约定为 "章-节" 且节号不超过一位数，字典序即游玩顺序
func SortLevelIDs(ids []string) []string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return sorted
}

// NextLevelID 返回 current 之后的下一个关卡ID
// current 是最后一关或不在列表中时返回空字符串
func NextLevelID(ids []string, current string) string {
	sorted := SortLevelIDs(ids)
	for i, id := range sorted {
		if id == current && i+1 < len(sorted) {
			return sorted[i+1]
		}
	}
	return ""
}

// FirstLevelID 返回顺序最靠前的关卡ID（空列表返回空字符串）
func FirstLevelID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return SortLevelIDs(ids)[0]
}
