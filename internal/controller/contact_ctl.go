package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/service"
)

// ==================== ContactController 联系方式控制器 ====================

// ContactController 联系方式控制器
type ContactController struct {
	contactService *service.ContactService
}

// NewContactController 创建联系方式控制器
func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Create 创建联系方式
// @Summary 创建联系方式
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContactRequest true "联系方式"
// @Success 201 {object} model.Contact
// @Router /contacts [post]
func (c *ContactController) Create(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	contact, err := c.contactService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "联系方式已创建", contact)
}

// List 当前用户的联系方式
// @Summary 当前用户的联系方式
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contact
// @Router /contacts [get]
func (c *ContactController) List(ctx *gin.Context) {
	contacts, err := c.contactService.List(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", contacts)
}

// Update 修改联系方式
// @Summary 修改联系方式
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系方式 ID"
// @Param request body dto.ContactRequest true "联系方式"
// @Success 200 {object} model.Contact
// @Router /contacts/{id} [put]
func (c *ContactController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	contact, err := c.contactService.Update(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "联系方式已更新", contact)
}

// Delete 删除联系方式
// @Summary 删除联系方式
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系方式 ID"
// @Success 200 {object} map[string]interface{}
// @Router /contacts/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, err)
		return
	}

	if err := c.contactService.Delete(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "联系方式已删除", nil)
}
