package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_dev_v1_202601/internal/api/dto"
	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/service"
)

type ProductController struct {
	catalogService *service.CatalogService
}

func NewProductController(catalogService *service.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取目录商品列表 (支持标题搜索与价格排序)
// @Tags Product
// @Param q query string false "标题搜索关键词"
// @Param sort query string false "价格排序: asc / desc，缺省保持目录顺序"
// @Success 200 {object} dto.ProductListResp
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	query := c.Query("q")
	order := model.ParseSortOrder(c.Query("sort"))

	products := ctrl.catalogService.ListProducts(c.Request.Context())
	products = service.FilterByTitle(products, query)
	products = service.SortByPrice(products, order)

	respList := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		respList = append(respList, dto.ToProductResp(&products[i]))
	}

	c.JSON(200, dto.ProductListResp{
		Code:    0,
		Message: "success",
		Data:    respList,
		Total:   len(respList),
		Query:   query,
		Sort:    string(order),
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品完整记录 (详情弹窗)
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductDetailResp
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	product, err := ctrl.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.ToProductDetailResp(product),
	})
}
