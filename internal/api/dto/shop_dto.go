package dto

// ==================== 店铺 ====================

// CreateShopRequest 创建店铺请求（供应商）
type CreateShopRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

// PatchShopRequest 修改店铺请求（店铺管理员）
type PatchShopRequest struct {
	Name   *string `json:"name"`
	URL    *string `json:"url"`
	Active *bool   `json:"active"`
}

// ShopResp 店铺响应
type ShopResp struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// ShopListResp 店铺列表响应
type ShopListResp struct {
	Code     int        `json:"code"`
	Message  string     `json:"message"`
	Data     []ShopResp `json:"data"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
