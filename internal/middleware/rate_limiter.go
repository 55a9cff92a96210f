package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ==================== ClientRateLimiter 客户端限流器 ====================

// ClientRateLimiter 按客户端令牌桶限流
// 防止单个调用方频繁触发生成导致模型配额耗尽
type ClientRateLimiter struct {
	limit   rate.Limit
	burst   int
	clients sync.Map // key -> *clientEntry
	now     func() time.Time
}

// clientEntry 单个客户端的令牌桶
type clientEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewClientRateLimiter 每分钟 perMinute 次，允许突发 burst 次
// perMinute <= 0 时返回 nil，表示不限流
func NewClientRateLimiter(perMinute, burst int) *ClientRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &ClientRateLimiter{
		limit: rate.Limit(float64(perMinute) / 60.0),
		burst: burst,
		now:   time.Now,
	}
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 需等待的时间
}

// Check 消耗一个令牌
func (r *ClientRateLimiter) Check(key string) CheckResult {
	actual, _ := r.clients.LoadOrStore(key, &clientEntry{limiter: rate.NewLimiter(r.limit, r.burst)})
	entry := actual.(*clientEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	entry.lastSeen = now

	res := entry.limiter.ReserveN(now, 1)
	if !res.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Minute}
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// Sweep 清理长时间未访问的客户端，返回清理数量
func (r *ClientRateLimiter) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	removed := 0
	r.clients.Range(func(key, value any) bool {
		entry := value.(*clientEntry)
		entry.mu.Lock()
		stale := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			r.clients.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// ==================== Gin 中间件 ====================

// RateLimit 按客户端 IP 限流
// limiter 为 nil 时直接放行
func RateLimit(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		result := limiter.Check(c.ClientIP())
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": fmt.Sprintf("Rate limit exceeded, retry after %d seconds", seconds),
			})
			return
		}

		c.Next()
	}
}
