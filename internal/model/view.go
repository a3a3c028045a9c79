package model

// ==================== 视图状态 ====================

// SortOrder 价格排序方式
// 纯粹的会话内视图状态，不落库
type SortOrder string

const (
	SortDefault   SortOrder = ""     // 保持目录原始顺序
	SortPriceAsc  SortOrder = "asc"  // 价格从低到高
	SortPriceDesc SortOrder = "desc" // 价格从高到低
)

// ParseSortOrder 解析 query 参数里的排序值
// 非法值一律按默认顺序处理，不报错
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortOrder(s)
	default:
		return SortDefault
	}
}
