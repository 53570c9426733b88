package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/beaverpumice/scalehouse-api/internal/application/service"
	"github.com/beaverpumice/scalehouse-api/internal/config"
	"github.com/beaverpumice/scalehouse-api/internal/infrastructure/airtable"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/handler"
	"github.com/beaverpumice/scalehouse-api/internal/presentation/http/routes"
	"github.com/beaverpumice/scalehouse-api/internal/scheduler"
	"github.com/beaverpumice/scalehouse-api/pkg/email"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the tabular store
	client := airtable.NewClient(airtable.Config{
		BaseURL: cfg.Airtable.BaseURL,
		Token:   cfg.Airtable.Token,
		BaseID:  cfg.Airtable.BaseID,
		Timeout: cfg.Airtable.Timeout,
	})

	// Initialize repositories
	ticketRepo := airtable.NewTicketRepository(client)
	customerRepo := airtable.NewCustomerRepository(client)
	productRepo := airtable.NewProductRepository(client)
	carrierRepo := airtable.NewCarrierRepository(client)
	truckRepo := airtable.NewTruckRepository(client)
	settingsRepo := airtable.NewSettingsRepository(client)

	// Initialize email service
	emailService := email.NewService(email.Config{
		Host:               cfg.Email.Host,
		Port:               cfg.Email.Port,
		Username:           cfg.Email.Username,
		Password:           cfg.Email.Password,
		From:               cfg.Email.From,
		FromName:           cfg.Email.FromName,
		Recipients:         cfg.Email.Recipients,
		OperatorRecipients: cfg.Email.OperatorRecipients,
	})

	// Initialize services
	ticketService := service.NewTicketService(ticketRepo, productRepo, customerRepo, emailService)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	carrierService := service.NewCarrierService(carrierRepo, truckRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	exportService := service.NewExportService(
		ticketRepo, customerRepo, productRepo, settingsRepo,
		emailService, cfg.Export.FilePrefix,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Ticket:   handler.NewTicketHandler(ticketService),
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Carrier:  handler.NewCarrierHandler(carrierService),
		Settings: handler.NewSettingsHandler(settingsService),
		Export:   handler.NewExportHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	// Start the nightly export job
	sched, err := scheduler.New(cfg.Export, exportService)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
