package infra

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fdweb/internal/config"
	dbm "fdweb/internal/models/db_models"
)

// InitPostgresql opens the pool, checks it and migrates the slot table.
func InitPostgresql(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, eris.Wrap(err, "postgres: open")
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, eris.Wrap(err, "postgres: pool")
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	if err := connectionPool.WithContext(ctx).AutoMigrate(&dbm.KVSlot{}); err != nil {
		_ = sqlDB.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}

	logger.Info("postgres connected", zap.Int("max_open_conns", cfg.MaxOpenConns))
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("error closing database connection", zap.Error(err))
	} else {
		logger.Info("postgres connection closed")
	}
}
