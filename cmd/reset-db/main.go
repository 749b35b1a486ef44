package main

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"organizations-backend/shared/config"
	"organizations-backend/shared/database"
	zaplog "organizations-backend/shared/logger"
)

func main() {
	cfg := config.LoadConfig()

	log := zaplog.New(zaplog.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	defer log.Sync()

	// InitDatabase would migrate first
	db, err := gorm.Open(postgres.Open(database.DSN(cfg)), database.GormConfig(logger.Silent))
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer database.CloseDatabase(db)

	log.Info("dropping all tables", zap.String("database", cfg.DBName))
	if err := database.DropTables(db, log); err != nil {
		log.Fatal("database reset failed", zap.Error(err))
	}

	log.Info("database reset completed, run cmd/seed to recreate tables and seed data")
}
