package router

import (
	"encoding/json"
	"net/http"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/database"
	"github.com/brushline/contractor-api/internal/http/handler"
	"github.com/brushline/contractor-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/brushline/contractor-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	authMiddleware       *auth.Middleware
	rateLimiter          *middleware.RateLimiter
	authHandler          *handler.AuthHandler
	clientHandler        *handler.ClientHandler
	projectHandler       *handler.ProjectHandler
	quoteHandler         *handler.QuoteHandler
	serviceOrderHandler  *handler.ServiceOrderHandler
	staffHandler         *handler.StaffHandler
	subcontractorHandler *handler.SubcontractorHandler
	supplierHandler      *handler.SupplierHandler
	invoiceHandler       *handler.InvoiceHandler
	paymentHandler       *handler.PaymentHandler
	purchaseOrderHandler *handler.PurchaseOrderHandler
	activityHandler      *handler.ActivityHandler
	reportHandler        *handler.ReportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	projectHandler *handler.ProjectHandler,
	quoteHandler *handler.QuoteHandler,
	serviceOrderHandler *handler.ServiceOrderHandler,
	staffHandler *handler.StaffHandler,
	subcontractorHandler *handler.SubcontractorHandler,
	supplierHandler *handler.SupplierHandler,
	invoiceHandler *handler.InvoiceHandler,
	paymentHandler *handler.PaymentHandler,
	purchaseOrderHandler *handler.PurchaseOrderHandler,
	activityHandler *handler.ActivityHandler,
	reportHandler *handler.ReportHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		authHandler:          authHandler,
		clientHandler:        clientHandler,
		projectHandler:       projectHandler,
		quoteHandler:         quoteHandler,
		serviceOrderHandler:  serviceOrderHandler,
		staffHandler:         staffHandler,
		subcontractorHandler: subcontractorHandler,
		supplierHandler:      supplierHandler,
		invoiceHandler:       invoiceHandler,
		paymentHandler:       paymentHandler,
		purchaseOrderHandler: purchaseOrderHandler,
		activityHandler:      activityHandler,
		reportHandler:        reportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/register", rt.authHandler.Register)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Post("/auth/logout", rt.authHandler.Logout)
			r.Get("/auth/me", rt.authHandler.Me)

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.Post("/", rt.clientHandler.Create)
				r.Get("/{id}", rt.clientHandler.GetByID)
				r.Put("/{id}", rt.clientHandler.Update)
				r.Delete("/{id}", rt.clientHandler.Delete)
			})

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Post("/", rt.projectHandler.Create)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.Put("/{id}", rt.projectHandler.Update)
				r.Delete("/{id}", rt.projectHandler.Delete)
				r.Post("/{id}/images", rt.projectHandler.UploadImages)
				r.Post("/{id}/documents", rt.projectHandler.UploadDocuments)
				r.Get("/{id}/activities", rt.activityHandler.ListByProject)
			})

			// Quotes
			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.List)
				r.Post("/", rt.quoteHandler.Create)
				r.Get("/{id}", rt.quoteHandler.GetByID)
				r.Put("/{id}", rt.quoteHandler.Update)
				r.Delete("/{id}", rt.quoteHandler.Delete)

				// Lifecycle endpoints
				r.Post("/{id}/send", rt.quoteHandler.Send)
				r.Post("/{id}/approve", rt.quoteHandler.Approve)
				r.Post("/{id}/reject", rt.quoteHandler.Reject)
			})

			// Service orders
			r.Route("/service-orders", func(r chi.Router) {
				r.Get("/", rt.serviceOrderHandler.List)
				r.Post("/", rt.serviceOrderHandler.Create)
				r.Get("/{id}", rt.serviceOrderHandler.GetByID)
				r.Put("/{id}", rt.serviceOrderHandler.Update)
				r.Delete("/{id}", rt.serviceOrderHandler.Delete)
				r.Post("/{id}/complete", rt.serviceOrderHandler.Complete)
				r.Post("/{id}/before-images", rt.serviceOrderHandler.UploadBeforeImages)
				r.Post("/{id}/after-images", rt.serviceOrderHandler.UploadAfterImages)
			})

			// Staff
			r.Route("/staff", func(r chi.Router) {
				r.Get("/", rt.staffHandler.List)
				r.Post("/", rt.staffHandler.Create)
				r.Get("/{id}", rt.staffHandler.GetByID)
				r.Put("/{id}", rt.staffHandler.Update)
				r.Delete("/{id}", rt.staffHandler.Delete)
			})

			// Subcontractors
			r.Route("/subcontractors", func(r chi.Router) {
				r.Get("/", rt.subcontractorHandler.List)
				r.Post("/", rt.subcontractorHandler.Create)
				r.Get("/{id}", rt.subcontractorHandler.GetByID)
				r.Put("/{id}", rt.subcontractorHandler.Update)
				r.Delete("/{id}", rt.subcontractorHandler.Delete)
			})

			// Suppliers
			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", rt.supplierHandler.List)
				r.Post("/", rt.supplierHandler.Create)
				r.Get("/{id}", rt.supplierHandler.GetByID)
				r.Put("/{id}", rt.supplierHandler.Update)
				r.Delete("/{id}", rt.supplierHandler.Delete)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.Put("/{id}", rt.invoiceHandler.Update)
				r.Delete("/{id}", rt.invoiceHandler.Delete)
				r.Post("/{id}/mark-paid", rt.invoiceHandler.MarkPaid)
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", rt.paymentHandler.List)
				r.Post("/", rt.paymentHandler.Create)
				r.Get("/{id}", rt.paymentHandler.GetByID)
				r.Put("/{id}", rt.paymentHandler.Update)
				r.Delete("/{id}", rt.paymentHandler.Delete)
			})

			// Purchase orders
			r.Route("/purchase-orders", func(r chi.Router) {
				r.Get("/", rt.purchaseOrderHandler.List)
				r.Post("/", rt.purchaseOrderHandler.Create)
				r.Get("/{id}", rt.purchaseOrderHandler.GetByID)
				r.Put("/{id}", rt.purchaseOrderHandler.Update)
				r.Delete("/{id}", rt.purchaseOrderHandler.Delete)
			})

			// Activities
			r.Get("/activities", rt.activityHandler.List)

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/payments-summary", rt.reportHandler.PaymentsSummary)
				r.Get("/invoices-summary", rt.reportHandler.InvoicesSummary)
				r.Get("/financial-summary", rt.reportHandler.FinancialSummary)
			})
		})
	})

	return r
}
