package model

import (
	"time"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditMixin 审计字段，由 middleware 的 GORM 回调自动填充
type AuditMixin struct {
	CreatedBy int64 `gorm:"index" json:"created_by"` // 创建人 UserID
	UpdatedBy int64 `gorm:"index" json:"updated_by"` // 最后修改人 UserID
}
