package middleware

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"user_details/internal/auth"
	"user_details/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:embed rate_limiter.lua
var luaScript string

var tokenBucket = redis.NewScript(luaScript)

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	Capacity   int     // Maximum number of tokens (max requests)
	RefillRate float64 // Tokens refilled per second
}

// DefaultRateLimiterConfig returns default rate limiter settings
// 10 requests per second with burst capacity of 20
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   20,
		RefillRate: 10.0,
	}
}

// CustomRateLimiter builds a config, falling back to the defaults for non-positive values.
func CustomRateLimiter(capacity int, refillRate float64) *RateLimiterConfig {
	cfg := DefaultRateLimiterConfig()
	if capacity > 0 {
		cfg.Capacity = capacity
	}
	if refillRate > 0 {
		cfg.RefillRate = refillRate
	}
	return cfg
}

// RateLimiterMiddleware implements a token bucket per caller using Redis + Lua.
// Authenticated callers are limited by user ID, anonymous ones by client IP.
// metrics may be nil.
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := RateLimiterKey(c)

		result, err := tokenBucket.Run(c.Request.Context(), redisClient, []string{key},
			config.Capacity,
			config.RefillRate,
			time.Now().Unix(),
		).Int64()

		if err != nil {
			logrus.WithError(err).Error("Failed to execute rate limiter Lua script")
			// Fail open: allow request if Redis fails
			c.Next()
			return
		}

		if result == 0 {
			if metrics != nil {
				metrics.RateLimitedTotal.WithLabelValues(routeLabel(c)).Inc()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Maximum %d requests per second allowed", int(config.RefillRate)),
				"retry_after": fmt.Sprintf("%.1f seconds", 1.0/config.RefillRate),
			})
			return
		}

		c.Next()
	}
}

// RateLimiterKey builds the bucket key for the caller of c
func RateLimiterKey(c *gin.Context) string {
	if userID, err := auth.GetUserIDFromContext(c); err == nil {
		return UserRateLimiterKey(userID)
	}
	return fmt.Sprintf("rate_limiter:ip:%s", c.ClientIP())
}

// UserRateLimiterKey builds the bucket key for an authenticated user
func UserRateLimiterKey(userID int64) string {
	return fmt.Sprintf("rate_limiter:user:%d", userID)
}
