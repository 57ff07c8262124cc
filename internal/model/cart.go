package model

// Cart 购物车，每个采购方只有一个
type Cart struct {
	BaseModel
	UserID    int64    `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"-"`
	ContactID *int64   `json:"contact_id"` // 结算前必须设置
	Contact   *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

func (Cart) TableName() string { return "carts" }

// CartItem 购物车行项目
// 唯一约束：同一报价在同一购物车里只能出现一行
type CartItem struct {
	BaseModel
	CartID          int64 `gorm:"not null;uniqueIndex:idx_cart_item,priority:1" json:"cart_id"`
	ProductDetailID int64 `gorm:"not null;uniqueIndex:idx_cart_item,priority:2" json:"product_detail_id"`
	Qty             int   `gorm:"not null" json:"qty"`

	ProductDetail *ProductDetail `gorm:"foreignKey:ProductDetailID" json:"product_detail,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }
