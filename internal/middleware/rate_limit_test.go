package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-event-rsvp/config"
	"go-gin-event-rsvp/internal/middleware"
	"go-gin-event-rsvp/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(nil, config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		t.Skipf("test redis is not available: %v", err)
	}
	defer cleanup()

	cfg := config.RateLimitConfig{
		Enabled:  true,
		Requests: 2,
		Window:   time.Minute,
		Prefix:   fmt.Sprintf("test:ratelimit:%d", time.Now().UnixNano()),
	}
	defer func() {
		keys, _ := rdb.Keys(context.Background(), cfg.Prefix+":*").Result()
		if len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
	}()

	r := gin.New()
	r.Use(middleware.RateLimit(rdb, cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
