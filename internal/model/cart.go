package model

import "math"

// ==================== 购物车 ====================

// CartItem 购物车条目
// 冗余一份展示字段快照 (title/price/thumbnail/rating)，渲染购物车时不用回查目录
// 约束：条目存在时 Quantity 必须 >= 1，减到 0 由引擎直接移除整条
type CartItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Rating    float64 `json:"rating"`
	Quantity  int     `json:"quantity"`
}

// Subtotal 单条小计
func (i CartItem) Subtotal() float64 {
	return Round2(i.Price * float64(i.Quantity))
}

// Cart 购物车
// 同一 ProductID 只允许出现一条，重复加购累加数量
// Items 保持插入顺序，展示稳定；持久化形态与内存形态必须可无损互转
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Find 按商品 ID 查找条目，返回下标，不存在时 -1
func (c *Cart) Find(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Size 商品总件数 (数量求和，购物车角标用)
func (c *Cart) Size() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

// IsEmpty 是否为空车
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total 合计金额
// 对条目顺序不敏感，结果固定保留两位小数
func (c *Cart) Total() float64 {
	var sum float64
	for i := range c.Items {
		sum += c.Items[i].Price * float64(c.Items[i].Quantity)
	}
	return Round2(sum)
}

// Round2 金额保留两位小数 (展示口径)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
