package dto

// ==================== 商品查询 ====================

// ListProductsRequest 商品列表请求
type ListProductsRequest struct {
	ShopID     int64  `form:"shop_id"`
	CategoryID int64  `form:"category_id"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// ProductResp 商品（列表项）
type ProductResp struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductListResp 商品列表响应
type ProductListResp struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Data     []ProductResp `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ==================== 商品详情 ====================

// ProductDetailResp 商品详情（含各店铺报价）
type ProductDetailResp struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Details  []ListingVO `json:"details"`
}

// ListingVO 报价视图对象
type ListingVO struct {
	ID         int64         `json:"id"`
	ShopID     int64         `json:"shop_id"`
	SupplierID int64         `json:"supplier_id"`
	Price      int           `json:"price"`
	PriceRRP   int           `json:"price_rrp"`
	Qty        int           `json:"qty"`
	Parameters []ParameterVO `json:"parameters"`
}

// ParameterVO 属性视图对象
type ParameterVO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
