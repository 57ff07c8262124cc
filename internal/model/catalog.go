package model

// ==================== 目录实体 ====================
// Category / Product / Parameter 是全局共享资源，只通过对账流程显式回收，
// 从不随店铺级联删除。

type Category struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	// 在该分类下有在售商品的店铺
	Shops    []Shop    `gorm:"many2many:shop_categories" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string { return "categories" }

// Product 商品本体，跨店铺共享，身份是 (分类, 名称)
type Product struct {
	BaseModel
	Name       string    `gorm:"size:100;not null;uniqueIndex:idx_product_identity,priority:2" json:"name"`
	CategoryID int64     `gorm:"not null;uniqueIndex:idx_product_identity,priority:1" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// 各店铺报价（listing）
	Details []ProductDetail `gorm:"foreignKey:ProductID" json:"details,omitempty"`
}

func (Product) TableName() string { return "products" }

// ProductDetail 店铺报价（listing）
// 唯一约束：同一店铺同一商品下，供应商 SKU 只能对应一条报价；
// supplier_id 跨店铺冲突是正常现象，不参与全局唯一
type ProductDetail struct {
	BaseModel
	ProductID  int64 `gorm:"not null;uniqueIndex:idx_detail_identity,priority:3" json:"product_id"`
	ShopID     int64 `gorm:"not null;index;uniqueIndex:idx_detail_identity,priority:2" json:"shop_id"`
	SupplierID int64 `gorm:"not null;uniqueIndex:idx_detail_identity,priority:1" json:"supplier_id"`

	Price    int `gorm:"not null" json:"price"`
	PriceRRP int `gorm:"not null" json:"price_rrp"` // 建议零售价
	Qty      int `gorm:"not null" json:"qty"`
	// 刷新价格表时缺席的报价置为 false 而不是删除，
	// 购物车/订单里还引用着它
	Available bool `gorm:"default:false;index" json:"available"`

	Product    *Product           `gorm:"foreignKey:ProductID" json:"-"`
	Shop       *Shop              `gorm:"foreignKey:ShopID" json:"-"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductDetailID" json:"parameters,omitempty"`
}

func (ProductDetail) TableName() string { return "product_details" }

// Parameter 全局属性词表（如 "屏幕尺寸"）
type Parameter struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

func (Parameter) TableName() string { return "parameters" }

// ProductParameter 报价上的属性值
type ProductParameter struct {
	BaseModel
	ParameterID     int64  `gorm:"not null;index" json:"parameter_id"`
	ProductDetailID int64  `gorm:"not null;index" json:"product_detail_id"`
	Value           string `gorm:"size:100;not null" json:"value"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID" json:"parameter,omitempty"`
}

func (ProductParameter) TableName() string { return "product_parameters" }
