package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ==================== 错误类型 ====================

// Kind 机器可读的错误类别，直接下发给客户端
type Kind string

const (
	KindParse        Kind = "parse_error"          // 文档格式错误（YAML/JSON 解析失败）
	KindValidation   Kind = "validation_error"     // 字段校验失败（批量收集）
	KindURL          Kind = "url_validation_error" // 价格表来源 URL 不属于当前店铺
	KindUnavailable  Kind = "resource_unavailable" // 拉取价格表失败（网络/非 2xx）
	KindStock        Kind = "stock_error"          // 库存不足
	KindDuplicate    Kind = "duplicate_item"       // 唯一约束冲突（购物车重复商品、重复购物车）
	KindPrecondition Kind = "precondition_failed"  // 前置条件不满足（结算缺少联系方式）
	KindPermission   Kind = "permission_denied"    // 角色/归属校验失败
	KindNotFound     Kind = "not_found"            // 资源不存在
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 带类别的业务错误
// 所有下发给客户端的错误都必须是这个类型，controller 统一映射 HTTP 状态码
type Error struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus 类别对应的 HTTP 状态码
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ==================== 构造函数 ====================

// Parse 文档解析错误
func Parse(err error) *Error {
	return &Error{
		Kind:    KindParse,
		Message: "价格表解析失败，请检查文件格式",
		cause:   err,
	}
}

// Validation 批量字段校验错误
// fields 包含整个文档的全部违规项，不允许只报告第一个
func Validation(fields []FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("价格表校验失败，共 %d 处错误", len(fields)),
		Fields:  fields,
	}
}

// URLValidation 来源 URL 校验错误
func URLValidation() *Error {
	return &Error{
		Kind:    KindURL,
		Message: "价格表必须从本店铺注册的 URL 拉取",
	}
}

// Unavailable 资源不可用
func Unavailable(err error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: "无法拉取价格表，请确认资源可访问",
		cause:   err,
	}
}

// Stock 库存不足
func Stock(available, requested int) *Error {
	return &Error{
		Kind:    KindStock,
		Message: fmt.Sprintf("库存不足：可用 %d，请求 %d", available, requested),
	}
}

// Duplicate 唯一约束冲突
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

// Precondition 前置条件不满足
func Precondition(msg string) *Error {
	return &Error{Kind: KindPrecondition, Message: msg}
}

// Permission 权限不足
func Permission(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

// NotFound 资源不存在
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + "不存在"}
}

// ==================== 辅助函数 ====================

// From 尝试把任意 error 转为 *Error
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf 取出错误类别，非业务错误返回空串
func KindOf(err error) Kind {
	if e, ok := From(err); ok {
		return e.Kind
	}
	return ""
}

// JoinFields 把字段错误拼成一行，写日志和 ImportLog 用
func JoinFields(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}
