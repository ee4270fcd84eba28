package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"madrese/auth-service/config"
	"madrese/auth-service/internal/model"
	"madrese/auth-service/packages/database"

	"gorm.io/gorm"
)

const serviceName = "auth-service"

// Stores holds the connections the service runs on.
type Stores struct {
	Postgres *gorm.DB
	Redis    *database.RedisClient
}

// Open connects PostgreSQL and Redis and migrates the tables.
func Open(ctx context.Context, databaseConf config.DatabaseConfig, redisConf config.RedisConfig, log *slog.Logger) (*Stores, error) {
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "silent"
	}

	db, err := database.InitPostgres(
		database.PostgresConfig{
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
		log,
	)
	if err != nil {
		return nil, err
	}

	if err := model.InitTable(db); err != nil {
		return nil, err
	}

	// 初始化 Redis
	redisClient, err := database.InitRedis(ctx,
		&database.RedisConfig{
			ServiceName: serviceName,
			Host:        redisConf.Host,
			Port:        redisConf.Port,
			Password:    redisConf.Password,
			DB:          redisConf.DB,
			PoolSize:    redisConf.PoolSize,
		},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &Stores{Postgres: db, Redis: redisClient}, nil
}

func (s *Stores) PingPostgres(ctx context.Context) error {
	sqlDB, err := s.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Stores) PingRedis(ctx context.Context) error {
	return s.Redis.Ping(ctx).Err()
}

func (s *Stores) Close() error {
	var errs []error
	if sqlDB, err := s.Postgres.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	errs = append(errs, s.Redis.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close stores: %w", err)
	}
	return nil
}
