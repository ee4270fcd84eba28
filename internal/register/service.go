package register

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/identity"
	"madrese/auth-service/internal/menu"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/session"
	"madrese/auth-service/internal/validate"
	"madrese/auth-service/packages/email"
)

// Mailer sends the optional welcome e-mail.
type Mailer interface {
	SendWelcome(to string, data email.WelcomeData) error
}

// Result 完善资料结果（内部使用，包含会话令牌）
type Result struct {
	SessionToken string
	Response     dto.AuthResponse
}

type Service struct {
	users    identity.Store
	tickets  *pkg.TicketStore
	sessions *session.Manager
	mailer   Mailer
	appName  string
	baseURL  string
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithMailer enables welcome e-mails for users who give an address.
func WithMailer(m Mailer, appName, baseURL string) Option {
	return func(s *Service) {
		s.mailer = m
		s.appName = appName
		s.baseURL = baseURL
	}
}

func NewService(users identity.Store, tickets *pkg.TicketStore, sessions *session.Manager, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tickets:  tickets,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompleteProfile creates the account for the phone bound to ticket and opens
// its first session. The ticket survives a failed attempt so the user can
// correct the form and resubmit.
func (s *Service) CompleteProfile(ctx context.Context, ticket string, req CompleteProfileRequest) (*Result, error) {
	phone, err := s.tickets.Get(ctx, ticket)
	if err != nil {
		if errors.Is(err, pkg.ErrTicketNotFound) {
			return nil, autherr.ErrRegistrationExpired
		}
		return nil, err
	}

	profile := req.Profile(phone)
	if err := validate.Profile(profile); err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	// 使用后删除，防止重复注册
	if err := s.tickets.Delete(ctx, ticket); err != nil {
		s.log.WarnContext(ctx, "delete registration ticket failed", "error", err)
	}

	sess, err := s.sessions.EstablishFromCompletedRegistration(ctx, u)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.sessions.IssueAccessToken(sess)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	s.sendWelcome(ctx, u)

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

// sendWelcome never fails the registration.
func (s *Service) sendWelcome(ctx context.Context, u *user.User) {
	if s.mailer == nil || u.Email == nil {
		return
	}

	err := s.mailer.SendWelcome(*u.Email, email.WelcomeData{
		AppName:   s.appName,
		FullName:  u.FullName(),
		TrialDays: int(user.TrialPeriod / (24 * time.Hour)),
		ActionURL: s.baseURL + menu.DashboardRoute(string(u.Role)),
	})
	if err != nil {
		s.log.WarnContext(ctx, "welcome email failed", "user_id", u.ID, "error", err)
	}
}
