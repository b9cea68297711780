package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	accountKeyPrefix = "account:"
)

// RedisStore はアカウントを Redis に JSON で保存します。
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore は RedisStore を作成します。
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb: rdb,
	}
}

// Create は SETNX でアカウントを保存します。キーが既にあれば ErrUsernameTaken を返します。
func (s *RedisStore) Create(ctx context.Context, account *Account) error {
	if account == nil {
		return fmt.Errorf("account is nil")
	}
	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account %q: %w", account.Username, err)
	}
	created, err := s.rdb.SetNX(ctx, accountKey(account.Username), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store account %q: %w", account.Username, err)
	}
	if !created {
		return ErrUsernameTaken
	}
	return nil
}

// GetByUsername はユーザー名でアカウントを取得します。
func (s *RedisStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	data, err := s.rdb.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	var account Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to decode account %q: %w", username, err)
	}
	return &account, nil
}

func accountKey(username string) string {
	return accountKeyPrefix + username
}
