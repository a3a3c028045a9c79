package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_dev_v1_202601/internal/middleware"
	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/service"
	"storefront_dev_v1_202601/pkg/theme"
)

// PageController 服务端渲染的页面
// 商品网格 / 详情弹窗 / 购物车弹窗各对应一个模板；
// 搜索词与排序方式是临时视图状态，走 query 参数，不落任何存储
type PageController struct {
	catalogService *service.CatalogService
	cartService    *service.CartService
}

func NewPageController(catalogService *service.CatalogService, cartService *service.CartService) *PageController {
	return &PageController{
		catalogService: catalogService,
		cartService:    cartService,
	}
}

// Home 商品网格主页
// GET /?q=<搜索词>&sort=<asc|desc>
func (ctrl *PageController) Home(c *gin.Context) {
	query := c.Query("q")
	order := model.ParseSortOrder(c.Query("sort"))

	products := ctrl.catalogService.ListProducts(c.Request.Context())
	products = service.FilterByTitle(products, query)
	products = service.SortByPrice(products, order)

	cart := ctrl.cartService.GetCart(c.Request.Context(), middleware.CartKey(middleware.SessionID(c)))

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Products": products,
		"Query":    query,
		"Sort":     string(order),
		"CartSize": cart.Size(),
		"Theme":    string(theme.Current()),
	})
}

// ProductModal 商品详情弹窗
// GET /product/:id
func (ctrl *PageController) ProductModal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "无效的商品ID")
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "商品不存在")
		return
	}

	c.HTML(http.StatusOK, "product_modal.html", gin.H{
		"Product": product,
		"Theme":   string(theme.Current()),
	})
}

// CartModal 购物车弹窗
// GET /cart
func (ctrl *PageController) CartModal(c *gin.Context) {
	cart := ctrl.cartService.GetCart(c.Request.Context(), middleware.CartKey(middleware.SessionID(c)))

	c.HTML(http.StatusOK, "cart_modal.html", gin.H{
		"Cart":  cart,
		"Total": cart.Total(),
		"Theme": string(theme.Current()),
	})
}

// ToggleTheme 明暗主题切换
// POST /theme/toggle
func (ctrl *PageController) ToggleTheme(c *gin.Context) {
	mode := theme.Toggle()
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"mode": string(mode)}})
}
