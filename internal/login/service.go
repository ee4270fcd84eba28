package login

import (
	"context"
	"time"

	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/session"
)

// Result 登录结果（内部使用，包含会话令牌）
type Result struct {
	SessionToken string
	Response     dto.AuthResponse
}

type Service struct {
	sessions *session.Manager
	now      func() time.Time
}

func NewService(sessions *session.Manager) *Service {
	return &Service{sessions: sessions, now: time.Now}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	sess, u, err := s.sessions.Login(ctx, req.NationalID, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.sessions.IssueAccessToken(sess)
	if err != nil {
		return nil, err
	}

	view := dto.NewUser(u, s.now())
	return &Result{
		SessionToken: sess.Token,
		Response: dto.AuthResponse{
			User:        view,
			RedirectURL: view.Dashboard,
			AccessToken: accessToken,
		},
	}, nil
}
