package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/service"
)

// ==================== ShopController 店铺控制器 ====================

// ShopController 店铺控制器
type ShopController struct {
	shopService *service.ShopService
}

// NewShopController 创建店铺控制器
func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// Create 开店
// @Summary 供应商开店
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateShopRequest true "店铺信息"
// @Success 201 {object} dto.ShopResp
// @Failure 409 {object} map[string]interface{}
// @Router /shops [post]
func (c *ShopController) Create(ctx *gin.Context) {
	var req dto.CreateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.shopService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "店铺已创建", resp)
}

// List 店铺列表
// @Summary 店铺列表
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.ShopListResp
// @Router /shops [get]
func (c *ShopController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.shopService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, resp)
}

// Get 店铺详情
// @Summary 店铺详情
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {object} dto.ShopResp
// @Failure 404 {object} map[string]interface{}
// @Router /shops/{id} [get]
func (c *ShopController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.shopService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", resp)
}

// GetMine 当前供应商的店铺
// @Summary 当前供应商的店铺
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShopResp
// @Failure 404 {object} map[string]interface{}
// @Router /shops/mine [get]
func (c *ShopController) GetMine(ctx *gin.Context) {
	resp, err := c.shopService.GetMine(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", resp)
}

// Patch 修改店铺
// @Summary 修改店铺（含上下架）
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Param request body dto.PatchShopRequest true "修改内容"
// @Success 200 {object} dto.ShopResp
// @Failure 403 {object} map[string]interface{}
// @Router /shops/{id} [patch]
func (c *ShopController) Patch(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.PatchShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	isStaff := middleware.GetUserRole(ctx) == "staff"
	resp, err := c.shopService.Patch(ctx.Request.Context(), id, middleware.GetUserID(ctx), isStaff, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "店铺已更新", resp)
}
