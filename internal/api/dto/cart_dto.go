package dto

// ==================== 购物车 ====================

// PatchCartRequest 修改购物车（设置联系方式）
type PatchCartRequest struct {
	ContactID *int64 `json:"contact_id"`
}

// AddItemRequest 添加行项目
type AddItemRequest struct {
	ProductDetailID int64 `json:"product_detail_id" binding:"required"`
	Qty             int   `json:"qty" binding:"required,gt=0"`
}

// PatchItemRequest 修改行项目数量
type PatchItemRequest struct {
	Qty int `json:"qty" binding:"required,gt=0"`
}

// CartItemVO 行项目视图对象
type CartItemVO struct {
	ID              int64  `json:"id"`
	ProductDetailID int64  `json:"product_detail_id"`
	ProductName     string `json:"product_name"`
	Price           int    `json:"price"`
	Qty             int    `json:"qty"`
}

// CartResp 购物车响应
type CartResp struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	ContactID *int64       `json:"contact_id"`
	Items     []CartItemVO `json:"items"`
}

// ==================== 联系方式 ====================

// ContactRequest 创建/修改联系方式
type ContactRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}
