package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"glambook-backend/config"
	"glambook-backend/controllers"
	"glambook-backend/logger"
	"glambook-backend/repository"
	"glambook-backend/routes"
	"glambook-backend/services"
	"glambook-backend/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	zlog := logger.Get()

	db, err := config.ConnectDB(cfg.DB.URL)
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}

	var store storage.Store
	if db != nil {
		pgStore, err := storage.NewPostgresStore(db, zlog)
		if err != nil {
			zlog.Fatal("failed to prepare storage", zap.Error(err))
		}
		store = pgStore
	} else {
		zlog.Warn("DB_URL not set, using in-memory storage")
		store = storage.NewMemoryStore()
	}

	dir := repository.NewTenantDirectory(store)
	registry := repository.NewRegistry(store, cfg.Staff.CacheTTL)
	notify := services.NewNotifyService(cfg.Twilio)
	controllers.Init(dir, registry, cfg, notify)

	sync := services.NewSyncService(db, dir)
	if err := sync.Migrate(); err != nil {
		zlog.Warn("backup tables unavailable", zap.Error(err))
	}
	services.NewMaintenanceService(dir, sync).StartScheduler()

	r := routes.SetupRouter(dir, registry)
	zlog.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
