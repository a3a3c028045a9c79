package service

import (
	"sort"
	"strings"

	"storefront_dev_v1_202601/internal/model"
)

// ==================== 视图派生逻辑 ====================
// 搜索过滤与价格排序都是纯函数：不改输入、顺序可预期，方便单测

// FilterByTitle 按标题过滤
// 大小写不敏感的子串匹配，空查询原样返回，命中结果保持原始相对顺序
func FilterByTitle(products []model.Product, query string) []model.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			result = append(result, p)
		}
	}
	return result
}

// SortByPrice 按价格排序
// 默认顺序直接返回输入 (不复制也不打乱)；升降序返回排好的副本，稳定排序，原切片不动
func SortByPrice(products []model.Product, order model.SortOrder) []model.Product {
	if order == model.SortDefault {
		return products
	}

	sorted := make([]model.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == model.SortPriceAsc {
			return sorted[i].Price < sorted[j].Price
		}
		return sorted[i].Price > sorted[j].Price
	})
	return sorted
}
