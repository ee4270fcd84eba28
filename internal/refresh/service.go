package refresh

import (
	"context"
	"errors"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/session"
)

type Service struct {
	sessions *session.Manager
}

func NewService(sessions *session.Manager) *Service {
	return &Service{sessions: sessions}
}

// Result 内部返回结果（包含新的会话令牌）
type Result struct {
	AccessToken     string
	NewSessionToken string
}

// Refresh rotates the session token and signs a new access token for it.
func (s *Service) Refresh(ctx context.Context, token string) (*Result, error) {
	sess, _, err := s.sessions.Rotate(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, autherr.ErrNotAuthenticated
		}
		return nil, err
	}

	accessToken, err := s.sessions.IssueAccessToken(sess)
	if err != nil {
		return nil, err
	}

	return &Result{
		AccessToken:     accessToken,
		NewSessionToken: sess.Token,
	}, nil
}
