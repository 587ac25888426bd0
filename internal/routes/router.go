package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admin-dashboard/internal/config"
	"admin-dashboard/internal/delivery/http/handler"
	"admin-dashboard/internal/infrastructure/database/postgres"
	"admin-dashboard/internal/logger"
	"admin-dashboard/internal/mail"
	"admin-dashboard/internal/middleware"
	"admin-dashboard/internal/notify"
	auditUsecase "admin-dashboard/internal/usecase/audit"
	authUsecase "admin-dashboard/internal/usecase/auth"
	dashboardUsecase "admin-dashboard/internal/usecase/dashboard"
	notificationUsecase "admin-dashboard/internal/usecase/notification"
	userUsecase "admin-dashboard/internal/usecase/user"
)

// Services bundles the wired use cases so main can start background jobs.
type Services struct {
	Auth *authUsecase.Service
}

func SetupRoutes(cfg *config.Config, db *postgres.DB) (*gin.Engine, *Services) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	passwordResetRepo := postgres.NewPasswordResetRepository(db)
	auditLogRepo := postgres.NewAuditLogRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	mailer := mail.NewMailer(cfg)
	hub := notify.NewHub()

	auditService := auditUsecase.NewService(auditLogRepo)
	authService := authUsecase.NewService(userRepo, refreshTokenRepo, passwordResetRepo, auditService, mailer, cfg)
	userService := userUsecase.NewService(userRepo, auditService)
	dashboardService := dashboardUsecase.NewService(userRepo)
	notificationService := notificationUsecase.NewService(notificationRepo, hub)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	notificationHandler := handler.NewNotificationHandler(notificationService, hub)
	auditHandler := handler.NewAuditHandler(auditService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		// Logout works with or without an identity; the audit entry is
		// written only when one is present.
		v1.POST("/auth/logout", middleware.OptionalAuthMiddleware(cfg), authHandler.Logout)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/auth/logout-all", authHandler.LogoutAll)

			dashboardHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterRoutes(admin)
				auditHandler.RegisterRoutes(admin)
				notificationHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")

	return router, &Services{Auth: authService}
}
