package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sevamart/sevamart-backend/internal/container"
	"github.com/sevamart/sevamart-backend/internal/interface/middleware"
)

// limiter builds a redis-backed rate limiter, or a no-op when rate
// limiting is disabled in config. Requests from private or loopback
// addresses bypass the limit so health probes are never throttled.
func limiter(max int, window time.Duration, keyFn middleware.KeyFunc) gin.HandlerFunc {
	if cfg := container.GetConfig(); cfg != nil && !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(container.GetRedis(), max, window, keyFn, middleware.AllowPrivateIP())
}
