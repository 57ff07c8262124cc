package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"market_dev_v1_202601/internal/controller"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	shopCtl *controller.ShopController,
	priceListCtl *controller.PriceListController,
	productCtl *controller.ProductController,
	cartCtl *controller.CartController,
	orderCtl *controller.OrderController,
	contactCtl *controller.ContactController) {

	// 1. 运维端点
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 2. API 路由组
	api := r.Group("/api")
	api.Use(middleware.Metrics())
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.POST("/refresh", authCtl.Refresh)
			auth.GET("/profile", middleware.JWTAuth(), authCtl.GetProfile)
		}

		// 以下全部需要登录
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(), middleware.AuditContext())

		// shop 店铺管理
		shops := authed.Group("/shops")
		{
			shops.GET("", shopCtl.List)
			shops.POST("", middleware.RequireRole(model.UserKindSupplier), shopCtl.Create)
			shops.GET("/mine", middleware.RequireRole(model.UserKindSupplier), shopCtl.GetMine)
			shops.GET("/:id", shopCtl.Get)
			shops.PATCH("/:id", shopCtl.Patch)
		}

		// 报价单提交（供应商）
		priceList := authed.Group("/shop/price-list")
		priceList.Use(middleware.RequireRole(model.UserKindSupplier))
		{
			priceList.POST("", middleware.ImportRateLimit(0), priceListCtl.Submit)
			priceList.GET("/history", priceListCtl.History)
		}

		// product 商品查询
		products := authed.Group("/products")
		{
			products.GET("", productCtl.List)
			products.GET("/:id", productCtl.Get)
		}

		// cart 购物车（采购方）
		cart := authed.Group("/cart")
		cart.Use(middleware.RequireRole(model.UserKindBuyer, "staff"))
		{
			cart.POST("", cartCtl.Create)
			cart.GET("", cartCtl.Get)
			cart.PATCH("", cartCtl.Patch)
			cart.POST("/items", cartCtl.AddItem)
			cart.PATCH("/items/:id", cartCtl.PatchItem)
			cart.DELETE("/items/:id", cartCtl.DeleteItem)
		}

		// order 订单
		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", middleware.RequireRole(model.UserKindBuyer, "staff"), orderCtl.Checkout)
			orders.GET("", orderCtl.List)
			orders.GET("/:id", orderCtl.Get)
		}

		// contact 联系方式
		contacts := authed.Group("/contacts")
		{
			contacts.POST("", contactCtl.Create)
			contacts.GET("", contactCtl.List)
			contacts.PUT("/:id", contactCtl.Update)
			contacts.DELETE("/:id", contactCtl.Delete)
		}
	}
}
