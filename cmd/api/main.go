package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brushline/contractor-api/docs"
	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/database"
	"github.com/brushline/contractor-api/internal/http/handler"
	"github.com/brushline/contractor-api/internal/http/middleware"
	"github.com/brushline/contractor-api/internal/http/router"
	"github.com/brushline/contractor-api/internal/jobs"
	"github.com/brushline/contractor-api/internal/logger"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/brushline/contractor-api/internal/storage"
	"go.uber.org/zap"
)

// @title Brushline Contractor API
// @version 1.0
// @description Back office API for a painting contractor: clients, projects, quotes, work orders, invoicing and payments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@brushline.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token issued at login

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description Session cookie set at login

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "contractor-api-staging.brushline.io"
	case "production":
		docs.SwaggerInfo.Host = "api.brushline.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	serviceOrderRepo := repository.NewServiceOrderRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	subcontractorRepo := repository.NewSubcontractorRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Initialize services
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	userService := service.NewUserService(userRepo, sessionRepo, tokenIssuer, &cfg.Auth, &cfg.Session, log)
	clientService := service.NewClientService(clientRepo, activityRepo, log)
	projectService := service.NewProjectService(projectRepo, clientRepo, activityRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, projectRepo, activityRepo, log)
	serviceOrderService := service.NewServiceOrderService(serviceOrderRepo, projectRepo, activityRepo, log)
	staffService := service.NewStaffService(staffRepo, log)
	subcontractorService := service.NewSubcontractorService(subcontractorRepo, log)
	supplierService := service.NewSupplierService(supplierRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, projectRepo, clientRepo, numberSequenceRepo, activityRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, staffRepo, subcontractorRepo, supplierRepo, activityRepo, log)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, numberSequenceRepo, activityRepo, log)
	activityService := service.NewActivityService(activityRepo, log)
	reportService := service.NewReportService(invoiceRepo, paymentRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, tokenIssuer, sessionRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, &cfg.Session, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	projectHandler := handler.NewProjectHandler(projectService, fileStorage, cfg.Storage.MaxUploadSizeMB, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	serviceOrderHandler := handler.NewServiceOrderHandler(serviceOrderService, fileStorage, cfg.Storage.MaxUploadSizeMB, log)
	staffHandler := handler.NewStaffHandler(staffService, log)
	subcontractorHandler := handler.NewSubcontractorHandler(subcontractorService, log)
	supplierHandler := handler.NewSupplierHandler(supplierService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService, log)
	activityHandler := handler.NewActivityHandler(activityService, log)
	reportHandler := handler.NewReportHandler(reportService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		clientHandler,
		projectHandler,
		quoteHandler,
		serviceOrderHandler,
		staffHandler,
		subcontractorHandler,
		supplierHandler,
		invoiceHandler,
		paymentHandler,
		purchaseOrderHandler,
		activityHandler,
		reportHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		overdueJob := jobs.NewInvoiceOverdueJob(invoiceRepo, log, time.Minute)
		if err := scheduler.AddJob(jobs.InvoiceOverdueJobName, cfg.Jobs.InvoiceOverdueSchedule, overdueJob.Run); err != nil {
			log.Error("Failed to register overdue invoice job", zap.Error(err))
		}

		cleanupJob := jobs.NewSessionCleanupJob(sessionRepo, log, time.Minute)
		if err := scheduler.AddJob(jobs.SessionCleanupJobName, cfg.Jobs.SessionCleanupSchedule, cleanupJob.Run); err != nil {
			log.Error("Failed to register session cleanup job", zap.Error(err))
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
