package handler

import (
	"net/http"

	"user_details/internal/config"
	"user_details/internal/middleware"
	"user_details/internal/observability"
	"user_details/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupHandler builds the router around an already wired user service.
// redisClient and metrics may be nil.
func SetupHandler(cfg *config.Config, userService user.UserServiceInterface, redisClient *redis.Client, metrics *observability.Metrics) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	if metrics != nil {
		r.Use(middleware.PrometheusMiddleware(metrics))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userController := user.NewUserController(userService)

	setupRoutes(r, cfg, userController, redisClient, metrics)

	return r
}

// setupRoutes mounts the API behind the optional auth and rate limiting middleware
func setupRoutes(r *gin.Engine, cfg *config.Config, userCtrl *user.UserController, redisClient *redis.Client, metrics *observability.Metrics) {
	api := r.Group("")

	if cfg.AuthEnabled() {
		api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	}
	if redisClient != nil {
		limits := middleware.CustomRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
		api.Use(middleware.RateLimiterMiddleware(redisClient, limits, metrics))
	}

	userCtrl.SetupRoutes(api)
}
