package task

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"market_dev_v1_202601/internal/service"
)

// ==================== NotifyTask 下单通知任务 ====================

// notifyJob 单条通知
type notifyJob struct {
	orderID int64
	email   string
}

// NotifyTask 下单邮件通知任务
// 结算流程只负责投递，发送在后台协程里慢慢做；
// 队列满或发送失败都只记日志，绝不反灌回结算流程
type NotifyTask struct {
	email  service.EmailService
	logger *zap.Logger

	jobs chan notifyJob
	wg   sync.WaitGroup
	once sync.Once
}

// DefaultNotifyQueueSize 默认通知队列容量
const DefaultNotifyQueueSize = 256

// NewNotifyTask 创建下单通知任务
func NewNotifyTask(email service.EmailService, logger *zap.Logger, queueSize int) *NotifyTask {
	if queueSize <= 0 {
		queueSize = DefaultNotifyQueueSize
	}
	return &NotifyTask{
		email:  email,
		logger: logger,
		jobs:   make(chan notifyJob, queueSize),
	}
}

// Start 启动后台发送协程
func (t *NotifyTask) Start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for job := range t.jobs {
			t.send(job)
		}
	}()
	t.logger.Info("下单通知任务已启动", zap.Int("queue_size", cap(t.jobs)))
}

// Stop 关闭队列并等待剩余通知发完
func (t *NotifyTask) Stop() {
	t.once.Do(func() {
		close(t.jobs)
	})
	t.wg.Wait()
	t.logger.Info("下单通知任务已停止")
}

// NotifyOrderCreated 投递一条下单通知
func (t *NotifyTask) NotifyOrderCreated(orderID int64, email string) {
	select {
	case t.jobs <- notifyJob{orderID: orderID, email: email}:
	default:
		t.logger.Warn("通知队列已满，丢弃下单通知",
			zap.Int64("order_id", orderID),
			zap.String("email", email))
	}
}

// send 发送单条通知
func (t *NotifyTask) send(job notifyJob) {
	subject := "订单已接收"
	body := fmt.Sprintf("您的订单 #%d 已接收，我们会尽快处理。", job.orderID)

	if err := t.email.Send(job.email, subject, body); err != nil {
		t.logger.Error("下单通知发送失败",
			zap.Int64("order_id", job.orderID),
			zap.String("email", job.email),
			zap.Error(err))
		return
	}
	t.logger.Info("下单通知已发送",
		zap.Int64("order_id", job.orderID),
		zap.String("email", job.email))
}
