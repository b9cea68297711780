package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/learnvocab/internal/accounts"
	"github.com/yourusername/learnvocab/internal/config"
)

// setupUserStore は USER_STORE に応じたアカウントストアを作成します。
// 戻り値の close は終了時に接続を閉じます。
func setupUserStore(ctx context.Context, cfg *config.Config) (accounts.Store, func(), error) {
	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := accounts.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return accounts.NewPostgresStore(pool), pool.Close, nil

	case config.StoreRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return accounts.NewRedisStore(redisClient), func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("failed to close redis client: %v", err)
			}
		}, nil

	default:
		log.Printf("using in-memory user store; accounts are lost on restart")
		return accounts.NewMemoryStore(), func() {}, nil
	}
}
