package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beaverpumice/scalehouse-api/internal/config"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/handler"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Ticket   *handler.TicketHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Carrier  *handler.CarrierHandler
	Settings *handler.SettingsHandler
	Export   *handler.ExportHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerTicketRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerCatalogRoutes(v1, h)
		registerExportRoutes(v1, h)
	}

	return router
}

func registerTicketRoutes(v1 *gin.RouterGroup, h *Handlers) {
	tickets := v1.Group("/tickets")
	{
		tickets.GET("", h.Ticket.List)
		tickets.GET("/pending-export", h.Ticket.ListPending)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.POST("", h.Ticket.Create)
		tickets.PUT("/:id", h.Ticket.Update)
		tickets.DELETE("/:id", h.Ticket.Delete)
		tickets.POST("/mark-exported", h.Ticket.MarkExported)
		tickets.POST("/:id/email", h.Ticket.Email)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
	}

	carriers := v1.Group("/carriers")
	{
		carriers.GET("", h.Carrier.ListCarriers)
		carriers.POST("", h.Carrier.CreateCarrier)
		carriers.PUT("/:id", h.Carrier.UpdateCarrier)
	}

	trucks := v1.Group("/trucks")
	{
		trucks.GET("", h.Carrier.ListTrucks)
		trucks.POST("", h.Carrier.CreateTruck)
		trucks.PUT("/:id", h.Carrier.UpdateTruck)
	}

	settings := v1.Group("/settings")
	{
		settings.GET("/invoice-counter", h.Settings.GetInvoiceCounter)
		settings.PUT("/invoice-counter", h.Settings.SetInvoiceCounter)
	}
}

func registerExportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	export := v1.Group("/export")
	{
		export.POST("/iif", h.Export.Generate)
		export.POST("/run", h.Export.Run)
	}
}
