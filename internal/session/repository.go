package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"madrese/auth-service/packages/database"

	"github.com/redis/go-redis/v9"
)

const (
	// Session Redis key 前缀
	SessionPrefix = "session:"
	// session id -> token，用于校验访问令牌对应的会话是否仍然有效
	SessionIDPrefix = "session_id:"
	// 用户的 session 集合 key 前缀（用于查看用户的所有活跃 session）
	UserSessionsPrefix = "user_sessions:"
)

var ErrNoSession = errors.New("no session")

// Session is a server-side proof of authentication bound to one user.
type Session struct {
	Token      string
	ID         string
	UserID     int
	NationalID string
	Role       string
	CreatedAt  time.Time
}

// Repository 会话数据访问层
type Repository struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewRepository(redisClient *database.RedisClient, ttl time.Duration) *Repository {
	return &Repository{redis: redisClient, ttl: ttl}
}

func userSessionsKey(userID int) string {
	return UserSessionsPrefix + strconv.Itoa(userID)
}

// Create 创建会话并存储到 Redis
func (r *Repository) Create(ctx context.Context, s *Session) error {
	key := SessionPrefix + s.Token
	userKey := userSessionsKey(s.UserID)

	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":          s.ID,
			"user_id":     s.UserID,
			"national_id": s.NationalID,
			"role":        s.Role,
			"created_at":  s.CreatedAt.UnixMilli(),
		})
		pipe.Expire(ctx, key, r.ttl)
		pipe.Set(ctx, SessionIDPrefix+s.ID, s.Token, r.ttl)
		pipe.SAdd(ctx, userKey, s.Token)
		pipe.Expire(ctx, userKey, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("存储会话失败: %w", err)
	}
	return nil
}

// Get 获取会话信息
func (r *Repository) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	data, err := r.redis.HGetAll(ctx, SessionPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("获取会话失败: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSession
	}

	userID, err := strconv.Atoi(data["user_id"])
	if err != nil {
		return nil, fmt.Errorf("用户 ID 格式错误: %w", err)
	}
	createdMs, _ := strconv.ParseInt(data["created_at"], 10, 64)

	return &Session{
		Token:      token,
		ID:         data["id"],
		UserID:     userID,
		NationalID: data["national_id"],
		Role:       data["role"],
		CreatedAt:  time.UnixMilli(createdMs),
	}, nil
}

// GetByID resolves the session an access token was issued for.
func (r *Repository) GetByID(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}

	token, err := r.redis.Get(ctx, SessionIDPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("获取会话失败: %w", err)
	}
	return r.Get(ctx, token)
}

// Delete 删除会话（用户登出）。会话不存在时也返回成功
func (r *Repository) Delete(ctx context.Context, token string) error {
	key := SessionPrefix + token

	// 先获取用户 ID，以便从用户的 session 集合中删除
	data, err := r.redis.HMGet(ctx, key, "user_id", "id").Result()
	if err != nil {
		return fmt.Errorf("获取会话失败: %w", err)
	}

	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if userID, ok := data[0].(string); ok {
			id, _ := strconv.Atoi(userID)
			pipe.SRem(ctx, userSessionsKey(id), token)
		}
		if sid, ok := data[1].(string); ok {
			pipe.Del(ctx, SessionIDPrefix+sid)
		}
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}

// CountActiveSessionsByUserID 获取用户的所有活跃 session 数量
func (r *Repository) CountActiveSessionsByUserID(ctx context.Context, userID int) (int, error) {
	count, err := r.redis.SCard(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("获取活跃会话数失败: %w", err)
	}
	return int(count), nil
}
