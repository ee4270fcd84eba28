// Package session establishes, resolves and destroys user sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/identity"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/validate"

	"github.com/google/uuid"
)

// Config 会话配置
type Config struct {
	TTL          time.Duration `koanf:"ttl"`
	CookieName   string        `koanf:"cookie_name"`
	CookieDomain string        `koanf:"cookie_domain"`
	CookieSecure bool          `koanf:"cookie_secure"`
}

const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultCookieName = "session_token"
)

func (c *Config) SetDefaults() {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
}

// Manager is injected wherever the current user matters; there is no
// process-wide session state.
type Manager struct {
	repo   *Repository
	users  identity.Store
	tokens *pkg.TokenIssuer
	log    *slog.Logger
	now    func() time.Time
}

func NewManager(repo *Repository, users identity.Store, tokens *pkg.TokenIssuer, log *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		users:  users,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Login never tells an unknown national ID apart from a wrong password.
func (m *Manager) Login(ctx context.Context, nationalID, password string) (*Session, *user.User, error) {
	if err := validate.Login(nationalID, password); err != nil {
		return nil, nil, err
	}

	u, err := m.users.FindByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, nil, autherr.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if u.Disabled || !m.users.VerifyPassword(u, password) {
		m.log.InfoContext(ctx, "login rejected", "user_id", u.ID)
		return nil, nil, autherr.ErrInvalidCredentials
	}

	s, err := m.establish(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return s, u, nil
}

// EstablishFromCompletedRegistration opens the first session of a new user.
func (m *Manager) EstablishFromCompletedRegistration(ctx context.Context, u *user.User) (*Session, error) {
	return m.establish(ctx, u)
}

func (m *Manager) establish(ctx context.Context, u *user.User) (*Session, error) {
	token, err := pkg.GenerateRandomToken()
	if err != nil {
		return nil, err
	}

	s := &Session{
		Token:      token,
		ID:         uuid.NewString(),
		UserID:     u.ID,
		NationalID: u.NationalID,
		Role:       string(u.Role),
		CreatedAt:  m.now(),
	}
	if err := m.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	m.log.InfoContext(ctx, "session established", "user_id", u.ID, "role", u.Role, "session_id", s.ID)
	return s, nil
}

// Current resolves token without side effects.
func (m *Manager) Current(ctx context.Context, token string) (*Session, error) {
	return m.repo.Get(ctx, token)
}

// CurrentByID resolves the session behind an access token.
func (m *Manager) CurrentByID(ctx context.Context, sessionID string) (*Session, error) {
	return m.repo.GetByID(ctx, sessionID)
}

// User loads the account a session is bound to. A disabled or missing account
// reads as no session.
func (m *Manager) User(ctx context.Context, s *Session) (*user.User, error) {
	u, err := m.users.FindByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if u.Disabled {
		return nil, ErrNoSession
	}
	return u, nil
}

// Logout is idempotent: an unknown or empty token is not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, token); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "session destroyed")
	return nil
}

// Rotate replaces token with a fresh session for the same user.
func (m *Manager) Rotate(ctx context.Context, token string) (*Session, *user.User, error) {
	old, err := m.repo.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	u, err := m.User(ctx, old)
	if err != nil {
		return nil, nil, err
	}

	// 撤销旧的 session
	if err := m.repo.Delete(ctx, token); err != nil {
		return nil, nil, err
	}

	s, err := m.establish(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return s, u, nil
}

// IssueAccessToken signs a short-lived JWT for downstream services.
func (m *Manager) IssueAccessToken(s *Session) (string, error) {
	token, err := m.tokens.GenerateAccessToken(pkg.AccessTokenSubject{
		UserID:     s.UserID,
		NationalID: s.NationalID,
		Role:       s.Role,
		SessionID:  s.ID,
	})
	if err != nil {
		return "", fmt.Errorf("生成访问令牌失败: %w", err)
	}
	return token, nil
}

// ParseAccessToken validates a bearer token and returns the live session it
// was issued for.
func (m *Manager) ParseAccessToken(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.repo.GetByID(ctx, claims.SessionID)
}
