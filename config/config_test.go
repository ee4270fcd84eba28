package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: test
server:
  port: 8081
jwt:
  secret: from-file
  expire_time: 15m
session:
  ttl: 24h
  cookie_name: session_token
verification:
  code_ttl: 2m
  max_attempts: 5
sms:
  driver: log
cors:
  allow_origins: ["http://a.test", "http://b.test"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	_, conf, err := load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8081, conf.Server.Port)
	assert.Equal(t, "from-file", conf.JWT.Secret)
	assert.Equal(t, 15*time.Minute, conf.JWT.ExpireTime)
	assert.Equal(t, 24*time.Hour, conf.Session.TTL)
	assert.Equal(t, 2*time.Minute, conf.Verification.CodeTTL)
	assert.Equal(t, 5, conf.Verification.MaxAttempts)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, conf.CORS.AllowOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MADRESE_JWT_SECRET", "from-env")
	t.Setenv("MADRESE_SESSION_COOKIE__NAME", "sid")
	t.Setenv("MADRESE_SERVER_PORT", "9000")

	_, conf, err := load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.JWT.Secret)
	assert.Equal(t, "sid", conf.Session.CookieName)
	assert.Equal(t, 9000, conf.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = load(writeConfig(t, "server:\n  port: 1\n"))
	assert.ErrorContains(t, err, "jwt.secret")

	_, _, err = load(writeConfig(t, "jwt:\n  secret: x\nsms:\n  driver: rabbitmq\n"))
	assert.ErrorContains(t, err, "rabbitmq.url")

	_, _, err = load(writeConfig(t, "jwt:\n  secret: x\nsms:\n  driver: pigeon\n"))
	assert.ErrorContains(t, err, "pigeon")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "smtp.host", envKey("MADRESE_SMTP_HOST"))
	assert.Equal(t, "verification.max_attempts", envKey("MADRESE_VERIFICATION_MAX__ATTEMPTS"))
}
