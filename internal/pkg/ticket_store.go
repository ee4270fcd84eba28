package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"madrese/auth-service/packages/database"

	"github.com/redis/go-redis/v9"
)

const (
	// Registration ticket Redis key 前缀
	TicketPrefix = "auth:registration:"
)

var ErrTicketNotFound = errors.New("registration ticket not found")

// TicketStore binds a verified phone to an opaque ticket between the verify
// and complete-profile steps.
type TicketStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewTicketStore(redisClient *database.RedisClient, ttl time.Duration) *TicketStore {
	return &TicketStore{redis: redisClient, ttl: ttl}
}

func (s *TicketStore) TTL() time.Duration {
	return s.ttl
}

// Save 保存已验证的手机号，返回 ticket
func (s *TicketStore) Save(ctx context.Context, phone string) (string, error) {
	ticket, err := GenerateRandomToken()
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, TicketPrefix+ticket, phone, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save ticket: %w", err)
	}
	return ticket, nil
}

// Get 根据 ticket 获取手机号
func (s *TicketStore) Get(ctx context.Context, ticket string) (string, error) {
	if ticket == "" {
		return "", ErrTicketNotFound
	}

	phone, err := s.redis.Get(ctx, TicketPrefix+ticket).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTicketNotFound
		}
		return "", fmt.Errorf("get ticket: %w", err)
	}
	return phone, nil
}

// Delete 删除 ticket（使用后删除，防止重复使用）
func (s *TicketStore) Delete(ctx context.Context, ticket string) error {
	return s.redis.Del(ctx, TicketPrefix+ticket).Err()
}
