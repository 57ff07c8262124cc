package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品查询控制器
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List 商品列表
// @Summary 商品列表
// @Tags Product
// @Produce json
// @Security BearerAuth
// @Param shop_id query int false "店铺 ID"
// @Param category_id query int false "分类 ID"
// @Param keyword query string false "名称关键字"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.ProductListResp
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	var req dto.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.productService.List(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, resp)
}

// Get 商品详情
// @Summary 商品详情（含各店铺在售报价）
// @Tags Product
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.ProductDetailResp
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.productService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", resp)
}
