package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market_dev_v1_202601/internal/apperr"
)

// ==================== 统一响应 ====================

// respondOK 成功响应
func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondCreated 创建成功响应
func respondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondBadRequest 参数绑定失败
func respondBadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

// respondError 业务错误响应
// *apperr.Error 按类别映射状态码并下发 kind/fields，其余错误一律 500
func respondError(ctx *gin.Context, err error) {
	if e, ok := apperr.From(err); ok {
		status := e.HTTPStatus()
		body := gin.H{
			"code":    status,
			"kind":    e.Kind,
			"message": e.Message,
		}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		ctx.JSON(status, body)
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"code":    500,
		"message": "服务器内部错误",
	})
}
