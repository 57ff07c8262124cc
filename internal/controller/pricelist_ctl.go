package controller

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/service"
)

// ==================== PriceListController 报价单控制器 ====================

// PriceListController 报价单提交入口
// 同一个路由接受三种形态：multipart 文件、YAML/JSON 原文、{"url": ...} 引用
type PriceListController struct {
	priceListService *service.PriceListService
	reconcileService *service.ReconcileService
	shopService      *service.ShopService
}

// NewPriceListController 创建报价单控制器
func NewPriceListController(
	priceListService *service.PriceListService,
	reconcileService *service.ReconcileService,
	shopService *service.ShopService,
) *PriceListController {
	return &PriceListController{
		priceListService: priceListService,
		reconcileService: reconcileService,
		shopService:      shopService,
	}
}

// Submit 提交报价单
// @Summary 提交报价单（文件 / 原文 / URL）
// @Tags PriceList
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PriceListResp
// @Failure 400 {object} map[string]interface{}
// @Router /shop/price-list [post]
func (c *PriceListController) Submit(ctx *gin.Context) {
	shop, err := c.shopService.RequireOwnShop(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	data, source, sourceURL, err := c.readPayload(ctx, shop.URL)
	if err != nil {
		c.reconcileService.Record(ctx.Request.Context(), shop.ID, source, sourceURL, nil, 0, err)
		middleware.RecordImportRun(model.ImportStatusFailed, 0)
		respondError(ctx, err)
		return
	}

	doc, err := c.priceListService.Parse(data)
	if err != nil {
		c.reconcileService.Record(ctx.Request.Context(), shop.ID, source, sourceURL, nil, 0, err)
		middleware.RecordImportRun(model.ImportStatusFailed, 0)
		respondError(ctx, err)
		return
	}

	updated, err := c.reconcileService.Apply(ctx.Request.Context(), shop.ID, doc)
	if err != nil {
		c.reconcileService.Record(ctx.Request.Context(), shop.ID, source, sourceURL, doc, 0, err)
		middleware.RecordImportRun(model.ImportStatusFailed, 0)
		respondError(ctx, err)
		return
	}

	c.reconcileService.Record(ctx.Request.Context(), shop.ID, source, sourceURL, doc, updated, nil)
	middleware.RecordImportRun(model.ImportStatusOK, updated)

	ctx.JSON(200, dto.PriceListResp{
		Code:    0,
		Message: "报价单已导入",
		Updated: updated,
	})
}

// History 导入历史
// @Summary 本店铺的导入历史
// @Tags PriceList
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数"
// @Success 200 {object} map[string]interface{}
// @Router /shop/price-list/history [get]
func (c *PriceListController) History(ctx *gin.Context) {
	shop, err := c.shopService.RequireOwnShop(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	logs, err := c.reconcileService.History(ctx.Request.Context(), shop.ID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "success", logs)
}

// readPayload 取出报价单字节流，并识别来源
func (c *PriceListController) readPayload(ctx *gin.Context, shopURL string) (data []byte, source, sourceURL string, err error) {
	contentType := ctx.ContentType()

	// 形态一：multipart 文件上传
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			return nil, model.ImportSourceFile, "", apperr.Parse(err)
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, model.ImportSourceFile, "", apperr.Parse(err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, model.ImportSourceFile, "", apperr.Parse(err)
		}
		return data, model.ImportSourceFile, "", nil
	}

	// 形态二：JSON 里给出 URL 引用
	if contentType == "application/json" {
		var req dto.PriceListURLRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, model.ImportSourceURL, "", apperr.Parse(err)
		}
		data, err := c.priceListService.FetchURL(ctx.Request.Context(), req.URL, shopURL)
		if err != nil {
			return nil, model.ImportSourceURL, req.URL, err
		}
		return data, model.ImportSourceURL, req.URL, nil
	}

	// 形态三：YAML 原文直接作为请求体
	data, err = ctx.GetRawData()
	if err != nil {
		return nil, model.ImportSourceFile, "", apperr.Parse(err)
	}
	return data, model.ImportSourceFile, "", nil
}
