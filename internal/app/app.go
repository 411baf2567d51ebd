package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vfxhub_backend/database"
	"vfxhub_backend/internal/auth"
	"vfxhub_backend/internal/cache"
	"vfxhub_backend/internal/config"
	"vfxhub_backend/internal/email"
	"vfxhub_backend/internal/handlers"
	"vfxhub_backend/internal/logger"
	"vfxhub_backend/internal/middleware"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/routes"
	"vfxhub_backend/internal/services"
	"vfxhub_backend/internal/validator"
	"vfxhub_backend/ws"
)

func Run() {
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. Tests call it with an
// in-memory database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTLMinutes)
	unreadCache := cache.NewUnreadCacheFromAddr(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if unreadCache.Enabled() {
		logger.Info("Redis unread cache enabled", "addr", cfg.Redis.Addr)
	} else {
		logger.Info("Redis unread cache disabled")
	}

	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	serviceContainer := initializeServices(cfg, gormDB, unreadCache, wsManager, jwtManager)

	v := validator.New()
	appHandlers := handlers.NewAppHandlers(v, serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, jwtManager)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	unreadCache *cache.UnreadCache,
	publisher services.EventPublisher,
	jwtManager *auth.JWTManager,
) *services.ServiceContainer {
	emailProvider := email.NewProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	proposalRepo := repositories.NewProposalRepository(gormDB)

	authService := services.NewAuthService(gormDB, userRepo, refreshTokenRepo, profileRepo, jwtManager, emailProvider)
	profileService := services.NewProfileService(profileRepo)
	notificationService := services.NewNotificationService(notificationRepo, unreadCache, publisher)
	messageService := services.NewMessageService(gormDB, messageRepo, profileRepo, userRepo, unreadCache, publisher)
	jobService := services.NewJobService(jobRepo)
	proposalService := services.NewProposalService(proposalRepo, jobRepo, profileRepo, userRepo, notificationService, emailProvider)

	return &services.ServiceContainer{
		AuthService:         authService,
		ProfileService:      profileService,
		NotificationService: notificationService,
		MessageService:      messageService,
		JobService:          jobService,
		ProposalService:     proposalService,
		EmailProvider:       emailProvider,
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	ginRouter.Use(rateLimiter.Middleware())

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return ginRouter
}
