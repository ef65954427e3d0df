package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"user_details/internal/config"

	"github.com/go-redis/redis/v8"
)

// SetupRedis connects to the redis instance backing the rate limiter.
func SetupRedis(ctx context.Context, redisCfg *config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", redisCfg.Host, redisCfg.Port)

	dbNum, err := strconv.Atoi(redisCfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("invalid redis DB number %q: %w", redisCfg.RedisDB, err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: redisCfg.RedisPassword,
		DB:       dbNum,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}
