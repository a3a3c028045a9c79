package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_dev_v1_202601/internal/api/dto"
	"storefront_dev_v1_202601/internal/middleware"
	"storefront_dev_v1_202601/internal/service"
)

type CartController struct {
	cartService    *service.CartService
	catalogService *service.CatalogService
}

func NewCartController(cartService *service.CartService, catalogService *service.CatalogService) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// cartKey 当前请求对应的购物车存储 key
func (ctrl *CartController) cartKey(c *gin.Context) string {
	return middleware.CartKey(middleware.SessionID(c))
}

// ==================== 查询接口 ====================

// GetCart 获取购物车
// @Summary 获取当前会话购物车 (含合计与件数)
// @Tags Cart
// @Success 200 {object} dto.CartResp
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.cartService.GetCart(c.Request.Context(), ctrl.cartKey(c))
	c.JSON(200, dto.ToCartResp(cart, "success"))
}

// ==================== 变更接口 ====================

// AddItem 加购
// @Summary 商品加入购物车，已有条目数量 +1
// @Tags Cart
// @Param body body dto.AddCartItemReq true "加购请求"
// @Success 200 {object} dto.CartResp
// @Router /api/cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req dto.AddCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	// 展示字段以目录为准，客户端只有资格报商品 ID
	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	cart, err := ctrl.cartService.AddToCart(c.Request.Context(), ctrl.cartKey(c), product)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "加购失败: " + err.Error()})
		return
	}

	c.JSON(200, dto.ToCartResp(cart, "商品已加入购物车"))
}

// DecrementItem 减购
// @Summary 条目数量 -1，减到 0 移除；商品不在车里时静默成功
// @Tags Cart
// @Param id path int true "商品ID"
// @Success 200 {object} dto.CartResp
// @Router /api/cart/items/{id} [delete]
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	cart, err := ctrl.cartService.DecrementOrRemove(c.Request.Context(), ctrl.cartKey(c), id)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(200, dto.ToCartResp(cart, "success"))
}

// ClearCart 清空购物车
// @Summary 清空当前会话购物车
// @Tags Cart
// @Success 200 {object} dto.CartResp
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.ClearCart(c.Request.Context(), ctrl.cartKey(c)); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "清空失败: " + err.Error()})
		return
	}

	cart := ctrl.cartService.GetCart(c.Request.Context(), ctrl.cartKey(c))
	c.JSON(200, dto.ToCartResp(cart, "购物车已清空"))
}

// Checkout 结算
// @Summary 结算当前会话购物车；空车返回 400 且状态不变
// @Tags Cart
// @Success 200 {object} dto.CartResp
// @Router /api/cart/checkout [post]
func (ctrl *CartController) Checkout(c *gin.Context) {
	err := ctrl.cartService.Checkout(c.Request.Context(), ctrl.cartKey(c))
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			// 可恢复的用户操作错误：提示即可，购物车不动
			c.JSON(400, gin.H{"code": 400, "message": "购物车是空的"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "结算失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "结算成功"})
}
