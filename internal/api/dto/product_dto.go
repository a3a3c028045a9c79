package dto

import "storefront_dev_v1_202601/internal/model"

// ==================== 响应 DTO ====================

// ProductResp 商品卡片响应
// 列表页只需要卡片展示字段，详情接口才返回完整记录
type ProductResp struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
	Thumbnail string  `json:"thumbnail"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
}

// ProductDetailResp 商品详情响应 (详情弹窗用，完整字段)
type ProductDetailResp struct {
	ID                 int64          `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Category           string         `json:"category"`
	Price              float64        `json:"price"`
	DiscountPercentage float64        `json:"discount_percentage"`
	Rating             float64        `json:"rating"`
	Stock              int            `json:"stock"`
	Brand              string         `json:"brand"`
	SKU                string         `json:"sku"`
	Tags               []string       `json:"tags"`
	AvailabilityStatus string         `json:"availability_status"`
	Thumbnail          string         `json:"thumbnail"`
	Images             []string       `json:"images"`
	Reviews            []model.Review `json:"reviews"`
}

// ProductListResp 商品列表响应
type ProductListResp struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    []ProductResp `json:"data"`
	Total   int           `json:"total"`
	// 回显视图状态，前端据此还原搜索框与排序下拉
	Query string `json:"query,omitempty"`
	Sort  string `json:"sort,omitempty"`
}

// ==================== 转换函数 ====================

// ToProductResp 目录商品 -> 卡片响应
func ToProductResp(p *model.Product) ProductResp {
	return ProductResp{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Rating:    p.Rating,
		Thumbnail: p.Thumbnail,
		Category:  p.Category,
		Brand:     p.Brand,
	}
}

// ToProductDetailResp 目录商品 -> 详情响应
func ToProductDetailResp(p *model.Product) ProductDetailResp {
	return ProductDetailResp{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           p.Category,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		Stock:              p.Stock,
		Brand:              p.Brand,
		SKU:                p.SKU,
		Tags:               p.Tags,
		AvailabilityStatus: p.AvailabilityStatus,
		Thumbnail:          p.Thumbnail,
		Images:             p.Images,
		Reviews:            p.Reviews,
	}
}
