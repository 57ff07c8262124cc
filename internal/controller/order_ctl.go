package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 订单控制器
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout 购物车结算
// @Summary 购物车结算
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.OrderDetailResp
// @Failure 400 {object} map[string]interface{}
// @Router /orders/checkout [post]
func (c *OrderController) Checkout(ctx *gin.Context) {
	resp, err := c.orderService.Checkout(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "下单成功", resp)
}

// List 订单列表
// @Summary 订单列表（按角色裁剪可见范围）
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.OrderListResp
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.orderService.List(ctx.Request.Context(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, resp)
}

// Get 订单详情
// @Summary 订单详情
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Success 200 {object} dto.OrderDetailResp
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	resp, err := c.orderService.Get(ctx.Request.Context(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", resp)
}
