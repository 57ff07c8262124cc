package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== ImportRateLimiter 导入限流器 ====================

// ImportRateLimiter 报价单导入限流器
// 防止供应商频繁重复提交报价单压垮对账流程
type ImportRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &ImportRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *ImportRateLimiter {
	return globalLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时更新最后执行时间
func (r *ImportRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *ImportRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ImportKey 生成店铺级导入 Key
func ImportKey(shopID int64) string {
	return fmt.Sprintf("shop:%d:import", shopID)
}

// DefaultImportInterval 默认导入冷却间隔
const DefaultImportInterval = time.Minute

// ==================== Gin 中间件 ====================

// ImportRateLimit 报价单导入限流中间件
// 按提交者维度限流（同一供应商只有一个店铺）
//
// 参数:
//   - interval: 冷却间隔，0 表示使用默认值
func ImportRateLimit(interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = DefaultImportInterval
	}

	return func(c *gin.Context) {
		key := ImportKey(GetUserID(c))

		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": fmt.Sprintf("导入冷却中，请 %d 秒后重试", retryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
