package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/service"
)

// ==================== CartController 购物车控制器 ====================

// CartController 购物车控制器
type CartController struct {
	cartService *service.CartService
}

// NewCartController 创建购物车控制器
func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// Create 创建购物车
// @Summary 创建购物车
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.CartResp
// @Failure 409 {object} map[string]interface{}
// @Router /cart [post]
func (c *CartController) Create(ctx *gin.Context) {
	resp, err := c.cartService.Create(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "购物车已创建", resp)
}

// Get 查看购物车
// @Summary 查看购物车
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResp
// @Failure 404 {object} map[string]interface{}
// @Router /cart [get]
func (c *CartController) Get(ctx *gin.Context) {
	resp, err := c.cartService.Get(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", resp)
}

// Patch 修改购物车（设置联系方式）
// @Summary 修改购物车
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PatchCartRequest true "修改内容"
// @Success 200 {object} dto.CartResp
// @Router /cart [patch]
func (c *CartController) Patch(ctx *gin.Context) {
	var req dto.PatchCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.cartService.Patch(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "购物车已更新", resp)
}

// AddItem 添加行项目
// @Summary 添加行项目
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddItemRequest true "报价与数量"
// @Success 201 {object} dto.CartResp
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /cart/items [post]
func (c *CartController) AddItem(ctx *gin.Context) {
	var req dto.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.cartService.AddItem(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "已加入购物车", resp)
}

// PatchItem 修改行项目数量
// @Summary 修改行项目数量
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "行项目 ID"
// @Param request body dto.PatchItemRequest true "数量"
// @Success 200 {object} dto.CartResp
// @Router /cart/items/{id} [patch]
func (c *CartController) PatchItem(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.PatchItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.cartService.PatchItem(ctx.Request.Context(), middleware.GetUserID(ctx), itemID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "行项目已更新", resp)
}

// DeleteItem 删除行项目
// @Summary 删除行项目
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "行项目 ID"
// @Success 200 {object} dto.CartResp
// @Router /cart/items/{id} [delete]
func (c *CartController) DeleteItem(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.cartService.DeleteItem(ctx.Request.Context(), middleware.GetUserID(ctx), itemID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "行项目已删除", resp)
}
