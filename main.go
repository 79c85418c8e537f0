package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"estate-service/internal/background"
	"estate-service/internal/clients"
	"estate-service/internal/config"
	"estate-service/internal/handlers"
	"estate-service/internal/metrics"
	"estate-service/internal/middleware"
	"estate-service/internal/models"
	natsClient "estate-service/internal/nats"
	"estate-service/internal/redis"
	"estate-service/internal/repository"
	"estate-service/internal/services"
)

func main() {
	// .env is only present in development
	_ = godotenv.Load()

	cfg := config.New()
	logger := newLogger(cfg)

	db, err := initDatabase(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	if err := autoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	// Redis is optional: without it the dashboard summary is rebuilt per
	// request.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to Redis, dashboard caching disabled")
			redisClient = nil
		} else {
			logger.Info("Connected to Redis")
		}
	}

	// NATS is optional: without it domain events are simply not published.
	var nc *natsClient.Client
	if cfg.NATS.Enabled {
		nc, err = natsClient.NewClient(&natsClient.Config{URL: cfg.NATS.URL})
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to NATS, event publishing disabled")
			nc = nil
		} else {
			logger.Info("Connected to NATS")
			defer nc.Close()
		}
	}

	m := metrics.New()
	metricsStop := make(chan struct{})
	go m.WatchDBPool(db, 10*time.Second, metricsStop)

	// Repositories
	propertyRepo := repository.NewPropertyRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	brokerRepo := repository.NewBrokerRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	activityRecorder := services.NewActivityRecorder(activityRepo, logger)
	propertySvc := services.NewPropertyService(propertyRepo, activityRecorder, nc, logger)
	ownerSvc := services.NewOwnerService(ownerRepo, activityRecorder, logger)
	brokerSvc := services.NewBrokerService(brokerRepo, activityRecorder, logger)
	tenantSvc := services.NewTenantService(tenantRepo, activityRecorder, logger)
	agreementSvc := services.NewAgreementService(agreementRepo, propertyRepo, activityRecorder, nc, logger)
	agreementSvc.SetMetrics(m.AgreementsCreated, m.SweepsRun)
	paymentSvc := services.NewPaymentService(paymentRepo, agreementRepo, activityRecorder, nc, logger)
	paymentSvc.SetMetrics(m.PaymentsRecorded)
	requirementSvc := services.NewRequirementService(requirementRepo, activityRecorder, logger)
	dashboardSvc := services.NewDashboardService(
		propertyRepo, ownerRepo, tenantRepo, agreementRepo, paymentRepo,
		requirementRepo, activityRepo, redisClient, cfg.Dashboard, logger,
	)

	contactsClient := clients.NewContactsClient(
		cfg.Contacts.BaseURL,
		time.Duration(cfg.Contacts.TimeoutSeconds)*time.Second,
		logger,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, nc)
	propertyHandler := handlers.NewPropertyHandler(propertySvc, dashboardSvc)
	ownerHandler := handlers.NewOwnerHandler(ownerSvc, dashboardSvc)
	brokerHandler := handlers.NewBrokerHandler(brokerSvc)
	tenantHandler := handlers.NewTenantHandler(tenantSvc, dashboardSvc)
	agreementHandler := handlers.NewAgreementHandler(agreementSvc, dashboardSvc)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc, dashboardSvc)
	requirementHandler := handlers.NewRequirementHandler(requirementSvc, dashboardSvc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)
	contactsHandler := handlers.NewContactsHandler(contactsClient)

	router := setupRouter(
		logger, m,
		healthHandler, propertyHandler, ownerHandler, brokerHandler,
		tenantHandler, agreementHandler, paymentHandler, requirementHandler,
		dashboardHandler, contactsHandler,
	)

	bgRunner := background.NewRunner(agreementSvc, cfg.Sweep, logger)
	if err := bgRunner.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start background runner")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("Starting estate-service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	bgRunner.Stop()
	close(metricsStop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("Server forced to shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("Error closing Redis connection")
		}
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.App.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func setupRouter(
	logger *logrus.Logger,
	m *metrics.Metrics,
	healthHandler *handlers.HealthHandler,
	propertyHandler *handlers.PropertyHandler,
	ownerHandler *handlers.OwnerHandler,
	brokerHandler *handlers.BrokerHandler,
	tenantHandler *handlers.TenantHandler,
	agreementHandler *handlers.AgreementHandler,
	paymentHandler *handlers.PaymentHandler,
	requirementHandler *handlers.RequirementHandler,
	dashboardHandler *handlers.DashboardHandler,
	contactsHandler *handlers.ContactsHandler,
) *gin.Engine {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}

	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(m.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		properties := v1.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.GetByID)
			properties.PUT("/:id", propertyHandler.Update)
		}

		owners := v1.Group("/owners")
		{
			owners.GET("", ownerHandler.List)
			owners.POST("", ownerHandler.Create)
			owners.GET("/:id", ownerHandler.GetByID)
			owners.PUT("/:id", ownerHandler.Update)
		}

		brokers := v1.Group("/brokers")
		{
			brokers.GET("", brokerHandler.List)
			brokers.POST("", brokerHandler.Create)
			brokers.GET("/:id", brokerHandler.GetByID)
			brokers.PUT("/:id", brokerHandler.Update)
		}

		tenants := v1.Group("/tenants")
		{
			tenants.GET("", tenantHandler.List)
			tenants.POST("", tenantHandler.Create)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", tenantHandler.Update)
		}

		agreements := v1.Group("/rent-agreements")
		{
			agreements.GET("", agreementHandler.List)
			agreements.POST("", agreementHandler.Create)
			agreements.GET("/:id", agreementHandler.GetByID)
			agreements.PUT("/:id", agreementHandler.Update)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Create)
			payments.GET("/export", paymentHandler.Export)
			payments.GET("/:id", paymentHandler.GetByID)
		}

		requirements := v1.Group("/requirements")
		{
			requirements.GET("", requirementHandler.List)
			requirements.POST("", requirementHandler.Create)
			requirements.GET("/:id", requirementHandler.GetByID)
			requirements.PUT("/:id", requirementHandler.Update)
		}

		v1.GET("/dashboard/summary", dashboardHandler.Summary)
		v1.GET("/contacts/pick", contactsHandler.Pick)
	}

	return router
}

func initDatabase(cfg config.DatabaseConfig, logger *logrus.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Property{},
		&models.Owner{},
		&models.Broker{},
		&models.Tenant{},
		&models.PropertyOwner{},
		&models.PropertyBroker{},
		&models.RentAgreement{},
		&models.Payment{},
		&models.Requirement{},
		&models.ActivityLog{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
