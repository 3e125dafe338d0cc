package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP in fixed windows. It guards the
// login route against password guessing. A nil client disables it.
func RateLimit(rdb *redis.Client, scope string, limit int64, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rdb == nil || ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		slot := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("crm:rate_limit:%s:%s:%d", scope, ip, slot)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, window+time.Second)
		}

		if count > limit {
			if log != nil {
				log.Warn("rate limited", zap.String("scope", scope), zap.String("ip", ip))
			}
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "too many attempts, try again later",
			})
			return
		}

		c.Next()
	}
}
