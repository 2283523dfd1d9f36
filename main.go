package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"backyard-leads/pkg/api"
	"backyard-leads/pkg/clients/leadsapi"
	"backyard-leads/pkg/clients/payment"
	"backyard-leads/pkg/config"
	"backyard-leads/pkg/middleware"
	"backyard-leads/pkg/services"
	"backyard-leads/pkg/store"
	"backyard-leads/pkg/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration and logging
	cfg := config.LoadConfig()
	logger := utils.NewLogger(cfg)

	// Initialize API clients
	leadsClient := leadsapi.NewClient(cfg.APIBaseURL, logger)
	authorizer := payment.NewTestModeAuthorizer(cfg.StripePublishableKey, logger)

	// Initialize the transient order store and services
	orders := store.NewOrderStore(cfg.SessionTTL)
	checkoutService := services.NewCheckoutService(leadsClient, authorizer, orders, logger)

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.LoadHTMLGlob("web/templates/*.html")

	// Initialize handlers
	handlers := api.NewHandlers(cfg, leadsClient, checkoutService, orders, logger)

	// Register routes
	router.GET("/", handlers.SearchPage)
	router.POST("/search", handlers.HandleSearch)
	router.GET("/results", handlers.ResultsPage)
	router.GET("/checkout", handlers.CheckoutPage)
	router.POST("/checkout", handlers.HandleCheckout)
	router.GET("/success", handlers.SuccessPage)
	router.GET("/download/json", handlers.DownloadJSON)
	router.GET("/download/csv", handlers.DownloadCSV)
	router.GET("/health", handlers.HealthCheck)

	logger.Info("server starting", "port", cfg.Port, "api_base_url", cfg.APIBaseURL)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
