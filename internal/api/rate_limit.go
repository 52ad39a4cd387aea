package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sugar258596/experiment-server-sub001/internal/config"
	"golang.org/x/time/rate"
)

// clientBucket 单个客户端的令牌桶
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware 按客户端 IP 限流
// 每个 IP 独立一个令牌桶,额度来自 Rate 配置;
// 长时间不活跃的桶定期回收,避免 map 无限增长
func RateLimitMiddleware(cfg config.RateConfig) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*clientBucket)
	)

	const idleTTL = 3 * time.Minute
	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, b := range buckets {
				if time.Since(b.lastSeen) > idleTTL {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
			buckets[ip] = b
		}
		b.lastSeen = time.Now()
		allowed := b.limiter.Allow()
		mu.Unlock()

		if !allowed {
			Error(c, http.StatusTooManyRequests, "too many requests", "请求过于频繁,请稍后重试")
			c.Abort()
			return
		}
		c.Next()
	}
}
