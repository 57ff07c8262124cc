package model

type Shop struct {
	BaseModel
	AuditMixin
	Name string `gorm:"size:100;not null" json:"name"`
	// 店铺对外 URL，价格表只允许从它的前缀下拉取
	URL    string `gorm:"uniqueIndex;size:100;not null" json:"url"`
	Active bool   `gorm:"default:false" json:"active"`

	// 店铺管理员（供应商账号，一对一）
	ManagerID int64 `gorm:"uniqueIndex;not null" json:"manager_id"`
	Manager   *User `gorm:"foreignKey:ManagerID" json:"-"`

	// 该店铺在售的分类（多对多）
	Categories []Category `gorm:"many2many:shop_categories" json:"-"`
}

func (Shop) TableName() string { return "shops" }
