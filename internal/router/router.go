package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_dev_v1_202601/internal/controller"
	"storefront_dev_v1_202601/internal/middleware"
)

// Controllers 路由需要的控制器集合
type Controllers struct {
	Product *controller.ProductController
	Cart    *controller.CartController
	Page    *controller.PageController
}

// Options 路由选项
type Options struct {
	TemplateGlob     string        // 页面模板路径，空串表示纯 API 模式 (测试用)
	CheckoutCooldown time.Duration // 结算冷却时间
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 页面和接口同源部署，CORS 主要是给本地前端调试开的口子
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	// 会话中间件全局挂载，购物车 key 从这里来
	r.Use(middleware.Session())

	if opts.TemplateGlob != "" {
		r.LoadHTMLGlob(opts.TemplateGlob)
		r.Static("/static", "./static")
	}

	InitRoutes(r, ctls, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// 1. 页面路由 (服务端渲染)
	if opts.TemplateGlob != "" {
		r.GET("/", ctls.Page.Home)
		r.GET("/product/:id", ctls.Page.ProductModal)
		r.GET("/cart", ctls.Page.CartModal)
		r.POST("/theme/toggle", ctls.Page.ToggleTheme)
	}

	// 2. API 路由组
	api := r.Group("/api")
	{
		// product 组
		products := api.Group("/products")
		{
			// GET /api/products?q=&sort=
			products.GET("", ctls.Product.GetProducts)
			// GET /api/products/:id
			products.GET("/:id", ctls.Product.GetProduct)
		}

		// cart 组
		cart := api.Group("/cart")
		{
			// GET /api/cart
			cart.GET("", ctls.Cart.GetCart)
			// DELETE /api/cart
			cart.DELETE("", ctls.Cart.ClearCart)
			// POST /api/cart/items
			cart.POST("/items", ctls.Cart.AddItem)
			// DELETE /api/cart/items/:id
			cart.DELETE("/items/:id", ctls.Cart.DecrementItem)
			// POST /api/cart/checkout (连点保护)
			cart.POST("/checkout",
				middleware.CheckoutRateLimit(opts.CheckoutCooldown),
				ctls.Cart.Checkout,
			)
		}
	}
}
