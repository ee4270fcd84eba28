package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"madrese/auth-service/config"
	"madrese/auth-service/internal/database"
	authgrpc "madrese/auth-service/internal/grpc"
	"madrese/auth-service/internal/identity"
	"madrese/auth-service/internal/logging"
	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/register"
	"madrese/auth-service/internal/route"
	"madrese/auth-service/internal/session"
	"madrese/auth-service/internal/verification"
	"madrese/auth-service/packages/email"
	"madrese/auth-service/packages/sms"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	config.MustLoad(*configPath)
	conf := config.Conf

	logger, closeLog, err := logging.New(conf.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer closeLog()

	if err := run(conf, logger); err != nil {
		logger.Error("auth service stopped", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := database.Open(ctx, conf.Database, conf.Redis, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	sender, closeSender, err := newSMSSender(conf, logger)
	if err != nil {
		return err
	}
	defer closeSender()

	tokens, err := pkg.NewTokenIssuer(conf.JWT)
	if err != nil {
		return err
	}

	conf.Session.SetDefaults()
	if conf.Verification.AppName == "" {
		conf.Verification.AppName = conf.App.Name
	}

	users := identity.NewRepository(stores.Postgres)
	sessions := session.NewManager(session.NewRepository(stores.Redis, conf.Session.TTL), users, tokens, logger)
	engine := verification.NewEngine(stores.Redis, sender, conf.Verification, logger)

	var registerOpts []register.Option
	if conf.Smtp.Enabled() {
		registerOpts = append(registerOpts, register.WithMailer(email.NewClient(&conf.Smtp), conf.App.Name, conf.App.BaseURL))
	}

	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := route.SetupRouter(route.Deps{
		Log:          logger,
		Users:        users,
		Sessions:     sessions,
		Engine:       engine,
		Tickets:      pkg.NewTicketStore(stores.Redis, engine.Config().TicketTTL),
		Session:      conf.Session,
		Register:     registerOpts,
		AllowOrigins: conf.CORS.AllowOrigins,
		Health: []route.HealthCheck{
			{Name: "postgres", Check: stores.PingPostgres},
			{Name: "redis", Check: stores.PingRedis},
		},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var grpcServer *authgrpc.Server
	if conf.GRPC.Port > 0 {
		grpcServer, err = authgrpc.NewServer(fmt.Sprintf(":%d", conf.GRPC.Port), authgrpc.NewSessionService(sessions), logger)
		if err != nil {
			return err
		}
		go func() {
			if err := grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Stop()
	}
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("http shutdown", "error", shutdownErr)
	}
	return err
}

// newSMSSender picks the transport named by sms.driver.
func newSMSSender(conf *config.AppConfig, logger *slog.Logger) (sms.Sender, func(), error) {
	if conf.SMS.Driver != "rabbitmq" {
		return sms.NewLogSender(conf.SMS.Sender, logger), func() {}, nil
	}

	conn, ch, err := sms.Dial(conf.RabbitMQ.URL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	sender, err := sms.NewQueueSender(ch, conf.SMS.Queue, conf.SMS.Sender)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.Info("sms via rabbitmq", "queue", conf.SMS.Queue)
	return sender, closeFn, nil
}
