package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-gin-event-rsvp/config"
	"go-gin-event-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// fixed window: the first hit of a window sets its expiry
var rateLimitScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return { current, redis.call('PTTL', KEYS[1]) }
`)

// RateLimit caps requests per caller (user id, else client IP) in a Redis
// fixed window. It fails open when Redis is unavailable.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	log := logger.WithComponent("http")

	return func(c *gin.Context) {
		caller := UserID(c)
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}
		window := time.Now().UnixMilli() / cfg.Window.Milliseconds()
		key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, caller, window)

		res, err := rateLimitScript.Run(c.Request.Context(), rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			log.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count, ttl := res[0], res[1]
		remaining := int64(cfg.Requests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Requests) {
			retry := (time.Duration(ttl)*time.Millisecond + time.Second - 1) / time.Second
			c.Header("Retry-After", strconv.FormatInt(int64(retry), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  http.StatusTooManyRequests,
				"message": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
