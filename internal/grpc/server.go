package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Server wraps the gRPC server
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	log        *slog.Logger
}

// NewServer listens on addr (for example ":9090").
func NewServer(addr string, svc SessionServiceServer, log *slog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return NewServerWithListener(listener, svc, log), nil
}

// NewServerWithListener serves on an existing listener; tests pass a bufconn.
func NewServerWithListener(listener net.Listener, svc SessionServiceServer, log *slog.Logger) *Server {
	s := &Server{listener: listener, log: log}
	s.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logInterceptor))
	RegisterSessionServiceServer(s.grpcServer, svc)
	return s
}

func (s *Server) logInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.InfoContext(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"latency", time.Since(start),
	)
	return resp, err
}

// Start starts the gRPC server (blocking)
func (s *Server) Start() error {
	s.log.Info("starting grpc server", "addr", s.Addr())
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

// Addr returns the server address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}
