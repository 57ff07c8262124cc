package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"market_dev_v1_202601/internal/repository"
)

// ==================== ImportLogCleanupTask 导入日志清理任务 ====================

// ImportLogCleanupTask 定期清理过期的导入日志
// 导入日志只用于排查最近的报价单问题，没必要永久保留
type ImportLogCleanupTask struct {
	logRepo   repository.ImportLogRepository
	logger    *zap.Logger
	cron      *cron.Cron
	retention time.Duration
}

// DefaultImportLogRetention 默认保留期
const DefaultImportLogRetention = 90 * 24 * time.Hour

// NewImportLogCleanupTask 创建清理任务
func NewImportLogCleanupTask(logRepo repository.ImportLogRepository, logger *zap.Logger, retention time.Duration) *ImportLogCleanupTask {
	if retention <= 0 {
		retention = DefaultImportLogRetention
	}
	return &ImportLogCleanupTask{
		logRepo:   logRepo,
		logger:    logger,
		cron:      cron.New(cron.WithSeconds()), // 支持秒级控制
		retention: retention,
	}
}

// Start 启动定时任务，每天凌晨 3 点执行
func (t *ImportLogCleanupTask) Start() {
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		t.logger.Fatal("无法启动导入日志清理任务", zap.Error(err))
	}

	t.cron.Start()
	t.logger.Info("导入日志清理任务已启动", zap.Duration("retention", t.retention))
}

// Stop 停止定时任务
func (t *ImportLogCleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("导入日志清理任务已停止")
}

// cleanupJob 清理逻辑
func (t *ImportLogCleanupTask) cleanupJob(ctx context.Context) {
	cutoff := time.Now().Add(-t.retention)
	deleted, err := t.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		t.logger.Error("导入日志清理失败", zap.Error(err))
		return
	}
	if deleted > 0 {
		t.logger.Info("导入日志清理完成",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
}
