package dto

import "time"

// ==================== 订单查询 ====================

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

// OrderListItem 订单列表项
type OrderListItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderListResp 订单列表响应
type OrderListResp struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Data     []OrderListItem `json:"data"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ==================== 订单详情 ====================

// OrderItemVO 订单行项目视图对象
type OrderItemVO struct {
	ID              int64  `json:"id"`
	ProductDetailID int64  `json:"product_detail_id"`
	ProductName     string `json:"product_name"`
	Price           int    `json:"price"`
	Qty             int    `json:"qty"`
}

// OrderDetailResp 订单详情响应
type OrderDetailResp struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	ContactID *int64        `json:"contact_id"`
	Items     []OrderItemVO `json:"items"`
	Total     int           `json:"total"` // 按当前报价合计
}
