package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user_details/internal/cache"
	"user_details/internal/config"
	"user_details/internal/db"
	"user_details/internal/handler"
	"user_details/internal/observability"
	"user_details/internal/user"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.WithError(err).Warn("Invalid LOG_LEVEL, using info")
	}

	ctx := context.Background()

	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	var repo user.UserRepositoryInterface
	switch cfg.UserSource {
	case config.SourcePostgres:
		database, err := db.Init(ctx, &cfg.DB)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to database")
		}
		defer func() {
			if err := database.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close database connection")
			}
		}()
		repo = user.NewPostgresUserRepository(database)
	case config.SourceHTTP:
		repo = user.NewHTTPUserRepository(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	default:
		logrus.Fatalf("Unknown USER_SOURCE %q (want %q or %q)", cfg.UserSource, config.SourceHTTP, config.SourcePostgres)
	}
	logrus.WithField("source", cfg.UserSource).Info("User data source configured")

	var rdb *redis.Client
	if cfg.RateLimitEnabled() {
		var err error
		rdb, err = cache.SetupRedis(ctx, &cfg.Redis)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to redis")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close redis connection")
			}
		}()
		logrus.Info("Rate limiting enabled")
	}

	if cfg.AuthEnabled() {
		logrus.Info("JWT authentication enabled")
	}

	userService := user.NewUserService(repo, cfg.Upstream.Timeout, observability.GlobalMetrics)
	r := handler.SetupHandler(cfg, userService, rdb, observability.GlobalMetrics)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting %s on %s", cfg.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
}
