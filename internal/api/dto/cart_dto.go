package dto

import "storefront_dev_v1_202601/internal/model"

// ==================== 请求 DTO ====================

// AddCartItemReq 加购请求
// 只传商品 ID，展示字段由服务端回查目录后写入快照，客户端无法伪造价格
type AddCartItemReq struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// ==================== 响应 DTO ====================

// CartItemResp 购物车条目响应
type CartItemResp struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Rating    float64 `json:"rating"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResp 购物车响应
type CartResp struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Items   []CartItemResp `json:"items"`
	Size    int            `json:"size"`
	Total   float64        `json:"total"`
}

// ToCartResp 购物车 -> 响应
func ToCartResp(c *model.Cart, message string) CartResp {
	items := make([]CartItemResp, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemResp{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Thumbnail: it.Thumbnail,
			Rating:    it.Rating,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		})
	}
	return CartResp{
		Code:    0,
		Message: message,
		Items:   items,
		Size:    c.Size(),
		Total:   c.Total(),
	}
}
