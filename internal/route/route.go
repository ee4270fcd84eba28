package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"madrese/auth-service/internal/code"
	"madrese/auth-service/internal/identity"
	"madrese/auth-service/internal/login"
	"madrese/auth-service/internal/logout"
	"madrese/auth-service/internal/me"
	"madrese/auth-service/internal/middleware"
	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/refresh"
	"madrese/auth-service/internal/register"
	"madrese/auth-service/internal/session"
	"madrese/auth-service/internal/verification"
)

// HealthCheck is one dependency probed by /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps 路由依赖
type Deps struct {
	Log          *slog.Logger
	Users        identity.Store
	Sessions     *session.Manager
	Engine       *verification.Engine
	Tickets      *pkg.TicketStore
	Session      session.Config
	Register     []register.Option
	AllowOrigins []string
	Health       []HealthCheck
}

func initRoute(r *gin.Engine, d Deps) {
	cookies := middleware.NewCookies(d.Session, d.Tickets.TTL())
	auth := middleware.SessionAuth(d.Sessions, cookies)

	r.GET("/healthz", healthz(d.Health))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		login.RegisterRoutes(authGroup, login.NewHandler(login.NewService(d.Sessions), cookies))
		code.RegisterRoutes(authGroup, code.NewHandler(code.NewService(d.Engine, d.Tickets, d.Log), cookies))
		register.RegisterRoutes(authGroup, register.NewHandler(
			register.NewService(d.Users, d.Tickets, d.Sessions, d.Log, d.Register...), cookies))
		logout.RegisterRoutes(authGroup, logout.NewHandler(d.Sessions, cookies, d.Log))
		me.RegisterRoutes(authGroup, me.NewHandler(), auth)
		refresh.RegisterRoutes(authGroup, refresh.NewHandler(refresh.NewService(d.Sessions), cookies))
	}
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	allowedOrigins := d.AllowOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	// 设置跨域请求；会话依赖 Cookie，所以需要 AllowCredentials
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	initRoute(r, d)

	return r
}

func healthz(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[hc.Name] = err.Error()
				continue
			}
			results[hc.Name] = "ok"
		}

		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
	}
}
