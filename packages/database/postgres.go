package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresConfig describes the identity store's database.
type PostgresConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         bool
	LogLevel        string // silent, error, warn, info
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func (c PostgresConfig) withDefaults() PostgresConfig {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Hour
	}
	return c
}

// DSN 构建连接字符串
func (c PostgresConfig) DSN() string {
	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, sslmode)
}

// InitPostgres opens a pooled gorm connection. Driver errors are translated
// so unique-index violations surface as gorm.ErrDuplicatedKey.
func InitPostgres(cfg PostgresConfig, log *slog.Logger) (*gorm.DB, error) {
	cfg = cfg.withDefaults()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(cfg.LogLevel, log))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("postgres connected", "host", cfg.Host, "database", cfg.Database)
	return db, nil
}

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// GormConfig is shared by the service and the test helpers. SQL logs go to
// log; a nil log or an unknown level discards them.
func GormConfig(level string, log *slog.Logger) *gorm.Config {
	cfg := &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	}

	lvl, ok := gormLevels[level]
	if log == nil || !ok || lvl == logger.Silent {
		return cfg
	}

	cfg.Logger = logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
	return cfg
}
