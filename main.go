package main

import (
	"log"

	"github.com/MikhailShapshay/test-task-loyalty-service/config"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.Account{},
		&models.Transaction{},
		&models.PointsRule{},
		&models.NotificationRecord{},
		&models.AdminUser{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := services.EnsureAdminUser(cfg); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	if err := services.SeedDefaultRules(); err != nil {
		log.Fatalf("failed to seed points rules: %v", err)
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
