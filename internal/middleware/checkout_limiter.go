package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== CheckoutLimiter 结算限流器 ====================

// CheckoutLimiter 结算冷却限流器
// 结算按钮被连点时只放过第一次，后面的请求在冷却期内直接拒绝
type CheckoutLimiter struct {
	locks sync.Map // session key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &CheckoutLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *CheckoutLimiter {
	return globalLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时顺带记录本次时间
func (r *CheckoutLimiter) Check(key string, interval time.Duration) CheckResult {
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

// Reset 重置指定 key 的限流 (测试用)
func (r *CheckoutLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== 中间件 ====================

// CheckoutRateLimit 结算限流中间件
// 按会话维度冷却，interval 为 0 时不限流 (测试场景直接关掉)
func CheckoutRateLimit(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		key := "checkout:" + SessionID(c)
		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "操作太频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
