package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinical-assistant/config"
	deliveryHttp "clinical-assistant/internal/delivery/http"
	"clinical-assistant/internal/delivery/http/handler"
	"clinical-assistant/internal/delivery/http/middleware"
	"clinical-assistant/internal/infrastructure/cache"
	"clinical-assistant/internal/infrastructure/database"
	"clinical-assistant/internal/infrastructure/document"
	"clinical-assistant/internal/infrastructure/messaging"
	"clinical-assistant/internal/repository"
	"clinical-assistant/internal/service"
	"clinical-assistant/internal/usecase"
	"clinical-assistant/pkg/jwt"
	"clinical-assistant/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	KafkaWriter  *kafka.Writer
	SessionStore service.SessionStore
	Server       *http.Server
}

// Dependencies are the collaborators shared by the HTTP layer
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	Log          *logrus.Logger
	SessionStore service.SessionStore
	Publisher    service.BookingEventPublisher
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.Log)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := openDatabase(cfg.DB)
	if err != nil {
		return nil, err
	}
	app.DB = db

	log := logrus.StandardLogger()

	// Initialize session store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.SessionStore = service.NewRedisSessionStore(redisClient, log)
	default:
		app.SessionStore = service.NewMemorySessionStore(log)
	}
	logrus.Infof("Using %s session store", cfg.Session.Store)

	// Initialize booking events
	publisher := service.NewNoopBookingEventPublisher()
	if writer := messaging.NewKafkaWriter(cfg.Kafka, log); writer != nil {
		app.KafkaWriter = writer
		publisher = service.NewKafkaBookingEventPublisher(writer, log)
		logrus.Infof("Publishing booking events to topic %s", cfg.Kafka.BookingTopic)
	}

	app.Server = &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.App.Port),
		Handler: NewHandler(Dependencies{
			Config:       cfg,
			DB:           db,
			Log:          log,
			SessionStore: app.SessionStore,
			Publisher:    publisher,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// Migrate brings the schema up to date and exits without serving
func Migrate() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg.Log)

	db, err := openDatabase(cfg.DB)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
	return nil
}

func openDatabase(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.Info("Database schema is up to date")
	return db, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewHandler wires repositories, usecases and handlers into the HTTP router
func NewHandler(deps Dependencies) http.Handler {
	cfg := deps.Config

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	loginHistoryRepo := repository.NewLoginHistoryRepository()
	consultationRepo := repository.NewConsultationRepository()

	// Initialize services
	auditService := service.NewLoginAuditService(deps.DB, deps.Log, loginHistoryRepo)
	translator := service.NewPassthroughTranslator()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(deps.DB, deps.Log, userRepo, auditService, deps.SessionStore, jwtService)
	consultationUsecase := usecase.NewConsultationUsecase(deps.DB, deps.Log, consultationRepo, deps.Publisher, document.NewConsultationReportRenderer())
	analyticsUsecase := usecase.NewAnalyticsUsecase(deps.DB, deps.Log, consultationRepo, auditService)
	reportUsecase := usecase.NewReportAnalyzerUsecase(deps.Log, document.NewPDFTextExtractor(), translator)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator, deps.Log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUsecase)
	reportHandler := handler.NewReportHandler(reportUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, deps.SessionStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(deps.Log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.Limit)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		consultationHandler,
		analyticsHandler,
		reportHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		rateLimitMiddleware,
	)
	return router.Setup()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close releases the database, Redis, Kafka and session store resources
func (app *App) Close() {
	if store, ok := app.SessionStore.(*service.MemorySessionStore); ok {
		store.Stop()
	}

	if app.KafkaWriter != nil {
		if err := app.KafkaWriter.Close(); err != nil {
			logrus.Warnf("Failed to close Kafka writer: %+v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
