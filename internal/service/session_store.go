package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const revokedKeyPrefix = "session:revoked:"

// SessionStore 记录已退出登录的令牌 jti，过期时间与令牌一致
type SessionStore struct {
	Redis *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{Redis: rdb}
}

func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.Redis == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		// 已过期的令牌无需记录
		return nil
	}
	if err := s.Redis.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "revoke session")
	}
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.Redis == nil || jti == "" {
		return false, nil
	}
	n, err := s.Redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, errors.Wrap(err, "check revoked session")
	}
	return n > 0, nil
}
