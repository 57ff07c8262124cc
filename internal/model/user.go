package model

// 用户角色常量
const (
	UserKindBuyer    = "buyer"    // 采购方
	UserKindSupplier = "supplier" // 供应商
)

type User struct {
	BaseModel
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"` // bcrypt hash
	FullName string `gorm:"size:100" json:"full_name"`
	Company  string `gorm:"size:100" json:"company"`
	Position string `gorm:"size:100" json:"position"`
	Kind     string `gorm:"size:10;not null" json:"kind"` // buyer / supplier
	IsStaff  bool   `gorm:"default:false" json:"is_staff"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// 供应商拥有的店铺（一对一）
	Shop *Shop `gorm:"foreignKey:ManagerID" json:"shop,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) IsSupplier() bool { return u.Kind == UserKindSupplier }

func (u *User) IsBuyer() bool { return u.Kind == UserKindBuyer }

// Role 鉴权用角色：staff 优先于 kind
func (u *User) Role() string {
	if u.IsStaff {
		return "staff"
	}
	return u.Kind
}
