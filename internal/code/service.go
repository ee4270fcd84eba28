package code

import (
	"context"
	"log/slog"

	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/verification"
	"madrese/auth-service/packages/sms"
)

// Service drives the phone-verification part of registration. It does not
// reject phones that already belong to an account, so the endpoint cannot
// be used to probe for registered numbers; complete-profile reports the
// duplicate instead.
type Service struct {
	engine  *verification.Engine
	tickets *pkg.TicketStore
	log     *slog.Logger
}

func NewService(engine *verification.Engine, tickets *pkg.TicketStore, log *slog.Logger) *Service {
	return &Service{engine: engine, tickets: tickets, log: log}
}

// TODO: 需要一个中间件, 限制同一 IP 或同一手机号发送验证码的频率, 防止滥用
func (s *Service) SendVerification(ctx context.Context, phone string) error {
	_, err := s.engine.IssueChallenge(ctx, phone)
	return err
}

// VerifyPhone consumes the challenge and returns a registration ticket bound
// to the verified phone.
func (s *Service) VerifyPhone(ctx context.Context, phone, code string) (string, error) {
	if err := s.engine.Verify(ctx, phone, code); err != nil {
		return "", err
	}

	ticket, err := s.tickets.Save(ctx, phone)
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "registration ticket issued", "phone", sms.MaskPhone(phone))
	return ticket, nil
}
