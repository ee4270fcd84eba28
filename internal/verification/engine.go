// Package verification issues and checks the one-shot SMS codes that prove a
// user controls a phone number.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/validate"
	"madrese/auth-service/packages/database"
	"madrese/auth-service/packages/sms"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// 验证码长度
	CodeLength = 6
	// Redis Key 前缀
	ChallengePrefix = "auth:challenge:"

	DefaultCodeTTL   = 5 * time.Minute
	DefaultRetention = 15 * time.Minute
	DefaultTicketTTL = 30 * time.Minute
)

// Config 验证码配置
type Config struct {
	AppName     string        `koanf:"app_name"`
	CodeTTL     time.Duration `koanf:"code_ttl"`
	Retention   time.Duration `koanf:"retention"`    // 过期后保留多久，用于区分 Expired 和 NoChallenge
	MaxAttempts int           `koanf:"max_attempts"` // 0 表示不限制
	TicketTTL   time.Duration `koanf:"ticket_ttl"`
}

func (c *Config) setDefaults() {
	if c.CodeTTL <= 0 {
		c.CodeTTL = DefaultCodeTTL
	}
	if c.Retention < 0 {
		c.Retention = 0
	}
	if c.Retention == 0 {
		c.Retention = DefaultRetention
	}
	if c.MaxAttempts < 0 {
		c.MaxAttempts = 0
	}
	if c.TicketTTL <= 0 {
		c.TicketTTL = DefaultTicketTTL
	}
}

type ChallengeID string

// Engine keeps at most one live challenge per phone. Issuing overwrites the
// previous one, so concurrent reissues converge on the last write.
type Engine struct {
	redis    *database.RedisClient
	sender   sms.Sender
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
	generate func() (string, error)
}

func NewEngine(redisClient *database.RedisClient, sender sms.Sender, cfg Config, log *slog.Logger) *Engine {
	cfg.setDefaults()
	return &Engine{
		redis:    redisClient,
		sender:   sender,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		generate: generateCode,
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// generateCode 生成随机验证码
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

func challengeKey(phone string) string {
	return ChallengePrefix + phone
}

// IssueChallenge stores a fresh code for phone and sends it by SMS. The code
// itself never leaves the engine except through the sender.
func (e *Engine) IssueChallenge(ctx context.Context, phone string) (ChallengeID, error) {
	if err := validate.Phone(phone); err != nil {
		return "", err
	}

	code, err := e.generate()
	if err != nil {
		return "", err
	}

	id := ChallengeID(uuid.NewString())
	now := e.now()
	expiresAt := now.Add(e.cfg.CodeTTL)
	key := challengeKey(phone)

	_, err = e.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":         string(id),
			"code":       code,
			"created_at": now.UnixMilli(),
			"expires_at": expiresAt.UnixMilli(),
			"attempts":   0,
			"consumed":   0,
		})
		pipe.PExpire(ctx, key, e.cfg.CodeTTL+e.cfg.Retention)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("store challenge: %w", err)
	}

	body, err := sms.RenderVerificationCode(e.cfg.AppName, code, int(e.cfg.CodeTTL/time.Minute))
	if err != nil {
		e.withdraw(ctx, phone, id)
		return "", err
	}

	if err := e.sender.Send(ctx, &sms.Message{To: phone, Body: body}); err != nil {
		e.withdraw(ctx, phone, id)
		e.log.WarnContext(ctx, "verification sms failed", "phone", sms.MaskPhone(phone), "error", err)
		return "", fmt.Errorf("send code: %w: %w", autherr.ErrTransportFailure, err)
	}

	e.log.InfoContext(ctx, "verification challenge issued", "phone", sms.MaskPhone(phone), "challenge_id", id)
	return id, nil
}

// withdraw removes the challenge only if it is still the one we issued.
func (e *Engine) withdraw(ctx context.Context, phone string, id ChallengeID) {
	if err := withdrawScript.Run(ctx, e.redis, []string{challengeKey(phone)}, string(id)).Err(); err != nil {
		e.log.ErrorContext(ctx, "withdraw challenge failed", "phone", sms.MaskPhone(phone), "error", err)
	}
}

// Verify consumes the live challenge for phone when code matches exactly. A
// wrong code leaves the challenge live.
func (e *Engine) Verify(ctx context.Context, phone, code string) error {
	if err := validate.Phone(phone); err != nil {
		return err
	}
	if err := validate.Code(code); err != nil {
		return err
	}

	res, err := verifyScript.Run(ctx, e.redis, []string{challengeKey(phone)},
		code,
		strconv.FormatInt(e.now().UnixMilli(), 10),
		strconv.Itoa(e.cfg.MaxAttempts),
	).Int()
	if err != nil {
		return fmt.Errorf("verify challenge: %w", err)
	}

	switch res {
	case verifyOK:
		e.log.InfoContext(ctx, "phone verified", "phone", sms.MaskPhone(phone))
		return nil
	case verifyNoChallenge:
		return autherr.ErrNoChallenge
	case verifyExpired:
		return autherr.ErrExpired
	case verifyTooManyAttempts:
		return autherr.ErrTooManyAttempts
	default:
		return autherr.ErrInvalidCode
	}
}
