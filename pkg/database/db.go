package database

import (
	"Arena/config"
	"Arena/pkg/log"
	"errors"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) (*gorm.DB, func(), error) {
	if conf.Database == nil || conf.Database.Dsn == "" {
		return nil, nil, errors.New("database dsn not configured")
	}

	level := logger.Warn
	if conf.Database.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(conf.Database.Dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil, nil, err
	}
	log.L.Info("connect database success")

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}
