package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuatrovientos/retail-api/internal/config"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/handler"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session *handler.SessionHandler
	Product *handler.ProductHandler
	Stock   *handler.StockHandler
	Sale    *handler.SaleHandler
	Cash    *handler.CashHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *slog.Logger
	Store           middleware.SessionSource
	StateRepo       domainRepo.StateRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil
	Gatherer prometheus.Gatherer
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", healthHandler(deps))

	if deps.Cfg.Metrics.Enabled {
		gatherer := deps.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewClientRateLimiter(
				middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
			)
		}
		v1.Use(rateLimiter.Middleware())
		v1.Use(middleware.SessionMiddleware(deps.Store))

		registerSessionRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerMovementRoutes(v1, h)
		registerSaleRoutes(v1, h, deps)
		registerCashRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

// healthHandler reports liveness plus whether the state storage answers
func healthHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, storage := http.StatusOK, "ok"
		if deps.StateRepo != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.StateRepo.Ping(ctx); err != nil {
				deps.Logger.Warn("health check: storage unavailable", "error", err)
				status, storage = http.StatusServiceUnavailable, "unavailable"
			}
		}
		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"service": deps.Cfg.App.Name,
			"storage": storage,
		})
	}
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	session := v1.Group("/session")
	{
		session.POST("", h.Session.Login)
		session.GET("", middleware.RequireSession(), h.Session.Current)
		session.DELETE("", h.Session.Logout)
	}

	v1.GET("/users", h.Session.ListUsers)
	v1.GET("/brands", h.Session.ListBrands)
	v1.GET("/dashboard", middleware.RequireSession(), h.Report.Dashboard)
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)

		write := middleware.RequireRole(enum.RoleAdmin, enum.RoleStock)
		products.POST("", write, h.Product.Create)
		products.PUT("/:id", write, h.Product.Update)
	}
}

func registerMovementRoutes(v1 *gin.RouterGroup, h *Handlers) {
	movements := v1.Group("/movements")
	movements.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleStock))
	{
		movements.GET("", h.Stock.List)
		movements.POST("", h.Stock.Create)
		movements.POST("/batch", h.Stock.CreateBatch)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	sales.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleCashier))
	{
		sales.GET("", h.Sale.List)
		// Sale creation uses idempotency middleware to prevent duplicates
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: deps.Logger,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/receipt", h.Printer.PrintReceipt)
	}
}

func registerCashRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cash := v1.Group("/cash")
	cash.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleCashier))
	{
		cash.GET("/today", h.Cash.Today)
		cash.POST("/close", h.Cash.Close)
		cash.GET("/closes", h.Cash.List)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	reports.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/performance", h.Report.Performance)
		reports.GET("/top-sellers", h.Report.TopSellers)
		reports.GET("/categories", h.Report.ByCategory)
		reports.GET("/brands", h.Report.ByBrand)
		reports.GET("/export", h.Report.Export)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	printer.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleCashier))
	{
		printer.GET("/status", h.Printer.GetStatus)
	}
}
