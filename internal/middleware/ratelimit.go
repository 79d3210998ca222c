package middleware

import (
	"net/http"
	"time"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit caps each client IP to max requests per window. Redis outages
// fail open: throttling is protection, not a correctness requirement.
func RateLimit(rdb *redis.Client, window time.Duration, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := service.AllowRequest(c.Request.Context(), rdb, c.ClientIP(), window, max)
		if err != nil {
			zap.L().Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
