package model

// Contact 收货/联系信息，挂在购物车或订单上
type Contact struct {
	BaseModel
	UserID  int64  `gorm:"index;not null" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"-"`
	Phone   string `gorm:"size:50" json:"phone"`
	Address string `gorm:"size:500" json:"address"`
}

func (Contact) TableName() string { return "contacts" }
