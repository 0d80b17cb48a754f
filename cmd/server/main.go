package main

import (
	"log"

	"go.uber.org/zap"

	"paperdesk/internal/config"
	"paperdesk/internal/server"
	"paperdesk/pkg/database"
	"paperdesk/pkg/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load error", zap.Error(err))
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	if err := server.SeedAdmin(db, cfg, logger); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	var files storage.FileStorage
	switch cfg.StorageBackend {
	case "s3":
		files, err = storage.NewS3Storage(cfg)
	default:
		files, err = storage.NewLocalStorage(cfg.UploadDir)
	}
	if err != nil {
		logger.Fatal("failed to initialize file storage", zap.Error(err))
	}

	srv := server.New(cfg, db, files, logger)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}
