package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/model"
)

// ImportLogRepository 价格表导入记录仓储接口
type ImportLogRepository interface {
	Create(ctx context.Context, log *model.ImportLog) error
	ListByShop(ctx context.Context, shopID int64, limit int) ([]model.ImportLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type importLogRepo struct {
	db *gorm.DB
}

// NewImportLogRepository 创建导入记录仓储
func NewImportLogRepository(db *gorm.DB) ImportLogRepository {
	return &importLogRepo{db: db}
}

func (r *importLogRepo) Create(ctx context.Context, log *model.ImportLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *importLogRepo) ListByShop(ctx context.Context, shopID int64, limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.ImportLog
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// DeleteOlderThan 清理过期导入记录，cron 任务定期调用
func (r *importLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.ImportLog{})
	return result.RowsAffected, result.Error
}
