package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/session"
	authsdk "madrese/auth-service/packages/auth-sdk"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName          = "madrese.auth.v1.SessionService"
	ResolveSessionMethod = "/" + ServiceName + "/ResolveSession"
	GetMenuMethod        = "/" + ServiceName + "/GetMenu"
)

type ResolveSessionRequest struct {
	SessionToken string `json:"sessionToken,omitempty"`
}

type ResolveSessionResponse struct {
	User      dto.User `json:"user"`
	Dashboard string   `json:"dashboard"`
}

type GetMenuRequest struct {
	Role string `json:"role"`
}

// SessionServiceServer is implemented by SessionService.
type SessionServiceServer interface {
	ResolveSession(context.Context, *ResolveSessionRequest) (*ResolveSessionResponse, error)
	GetMenu(context.Context, *GetMenuRequest) (*dto.MenuResponse, error)
}

// SessionResolver is the part of the session manager the service needs.
type SessionResolver interface {
	Current(ctx context.Context, token string) (*session.Session, error)
	ParseAccessToken(ctx context.Context, token string) (*session.Session, error)
	User(ctx context.Context, s *session.Session) (*user.User, error)
}

// SessionService lets dashboards and other services resolve a portal session
// without going through the REST API.
type SessionService struct {
	sessions SessionResolver
	now      func() time.Time
}

func NewSessionService(sessions SessionResolver) *SessionService {
	return &SessionService{sessions: sessions, now: time.Now}
}

// ResolveSession accepts the opaque session token or an access JWT, either in
// the request or in the authorization / x-session-token metadata.
func (s *SessionService) ResolveSession(ctx context.Context, req *ResolveSessionRequest) (*ResolveSessionResponse, error) {
	token := req.SessionToken
	if token == "" {
		var err error
		if token, err = authsdk.ExtractTokenFromContext(ctx); err != nil {
			return nil, status.Error(codes.InvalidArgument, "session token is required")
		}
	}

	var (
		sess *session.Session
		err  error
	)
	if isJWT(token) {
		sess, err = s.sessions.ParseAccessToken(ctx, token)
	} else {
		sess, err = s.sessions.Current(ctx, token)
	}
	if err == nil {
		var u *user.User
		if u, err = s.sessions.User(ctx, sess); err == nil {
			view := dto.NewUser(u, s.now())
			return &ResolveSessionResponse{User: view, Dashboard: view.Dashboard}, nil
		}
	}

	if errors.Is(err, session.ErrNoSession) {
		return nil, status.Error(codes.Unauthenticated, "session not found")
	}
	return nil, status.Error(codes.Internal, "failed to resolve session")
}

// GetMenu never fails: unknown roles get the baseline menu.
func (s *SessionService) GetMenu(_ context.Context, req *GetMenuRequest) (*dto.MenuResponse, error) {
	m := dto.NewMenu(req.Role)
	return &m, nil
}

func isJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

func resolveSessionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResolveSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SessionServiceServer).ResolveSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ResolveSessionMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SessionServiceServer).ResolveSession(ctx, req.(*ResolveSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getMenuHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMenuRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SessionServiceServer).GetMenu(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetMenuMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SessionServiceServer).GetMenu(ctx, req.(*GetMenuRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SessionServiceDesc is registered by hand; messages travel through jsonCodec.
var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveSession", Handler: resolveSessionHandler},
		{MethodName: "GetMenu", Handler: getMenuHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "madrese/auth/v1/session.json",
}

func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}
