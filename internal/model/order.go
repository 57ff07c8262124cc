package model

// ==================== 订单状态常量 ====================

const (
	OrderStatusNew        = "new"        // 已接收
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已送达
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// Order 订单，结算时由购物车原子转换而来
type Order struct {
	BaseModel
	UserID    int64    `gorm:"index;not null" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"-"`
	Status    string   `gorm:"size:50;index;default:new" json:"status"`
	ContactID *int64   `json:"contact_id"`
	Contact   *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行项目，结算时从 CartItem 快照而来
// ShopID 冗余存储，供应商按店铺过滤订单时不用再 join 报价表
type OrderItem struct {
	BaseModel
	OrderID         int64 `gorm:"index;not null" json:"order_id"`
	ProductDetailID int64 `gorm:"index;not null" json:"product_detail_id"`
	ShopID          int64 `gorm:"index;not null" json:"shop_id"`
	Qty             int   `gorm:"not null" json:"qty"`

	ProductDetail *ProductDetail `gorm:"foreignKey:ProductDetailID" json:"product_detail,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }
