package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// 导入记录状态常量
const (
	ImportStatusOK     = "ok"
	ImportStatusFailed = "failed"
)

// 导入来源常量
const (
	ImportSourceFile = "file"
	ImportSourceURL  = "url"
)

// ImportLog 价格表导入记录
// 每次提交（成功或失败）都落一条，供排查供应商上传问题
type ImportLog struct {
	BaseModel
	AuditMixin
	ShopID       int64          `gorm:"index;not null" json:"shop_id"`
	Source       string         `gorm:"size:10;not null" json:"source"` // file / url
	SourceURL    string         `gorm:"size:255" json:"source_url"`
	Status       string         `gorm:"size:10;index;not null" json:"status"` // ok / failed
	UpdatedCount int            `gorm:"default:0" json:"updated_count"`
	Errors       pq.StringArray `gorm:"type:text[]" json:"errors"`
	Summary      datatypes.JSON `gorm:"type:jsonb" json:"summary"` // {categories, listings, parameters}
}

func (ImportLog) TableName() string { return "import_logs" }
