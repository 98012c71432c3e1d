package main

import (
	"go.uber.org/zap"

	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/config"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/logger"
	"github.com/nicksmd/fu-marketplace-api/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(cfg.Database, nil)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migration complete", zap.String("database", cfg.Database.DBName))
}
