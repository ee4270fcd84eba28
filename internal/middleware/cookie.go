package middleware

import (
	"net/http"
	"time"

	"madrese/auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

// RegistrationTicketCookie carries the verified phone ticket to complete-profile.
const RegistrationTicketCookie = "registration_ticket"

// Cookies writes the httpOnly cookies the auth endpoints hand out.
type Cookies struct {
	cfg       session.Config
	ticketTTL time.Duration
}

func NewCookies(cfg session.Config, ticketTTL time.Duration) *Cookies {
	cfg.SetDefaults()
	return &Cookies{cfg: cfg, ticketTTL: ticketTTL}
}

func (k *Cookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", k.cfg.CookieDomain, k.cfg.CookieSecure, true)
}

func (k *Cookies) SessionName() string {
	return k.cfg.CookieName
}

func (k *Cookies) SetSession(c *gin.Context, token string) {
	k.set(c, k.cfg.CookieName, token, int(k.cfg.TTL/time.Second))
}

func (k *Cookies) ClearSession(c *gin.Context) {
	k.set(c, k.cfg.CookieName, "", -1)
}

func (k *Cookies) SetTicket(c *gin.Context, ticket string) {
	k.set(c, RegistrationTicketCookie, ticket, int(k.ticketTTL/time.Second))
}

func (k *Cookies) ClearTicket(c *gin.Context) {
	k.set(c, RegistrationTicketCookie, "", -1)
}

// Ticket 从 Cookie 中读取注册 ticket，不存在时返回空字符串
func (k *Cookies) Ticket(c *gin.Context) string {
	ticket, _ := c.Cookie(RegistrationTicketCookie)
	return ticket
}

// SessionToken 从 Cookie 中读取会话令牌
func (k *Cookies) SessionToken(c *gin.Context) string {
	token, _ := c.Cookie(k.cfg.CookieName)
	return token
}
