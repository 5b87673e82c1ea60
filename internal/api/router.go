package api

import (
	"github.com/MikhailShapshay/test-task-loyalty-service/config"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/account"
	adminRule "github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/admin/rule"
	adminTransaction "github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/admin/transaction"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/auth"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/loyalty"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/middleware"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Redis only backs caching and token revocation; the service stays up
	// without it.
	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Warn("Redis is not available, continuing without cache", zap.Error(err))
		database.RedisClient = nil
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		account.RegisterRoutes(v1)
		loyalty.RegisterRoutes(v1)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminRule.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
		}
	}

	return router, nil
}
