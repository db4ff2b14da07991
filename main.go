package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aurelia-jewels/jewelry-api/config"
	"github.com/aurelia-jewels/jewelry-api/models"
	"github.com/aurelia-jewels/jewelry-api/payment"
	"github.com/aurelia-jewels/jewelry-api/routes"
	"github.com/aurelia-jewels/jewelry-api/services"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Init Redis (guest carts, checkout sessions)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := config.ConnectRedis(ctx, cfg.Redis)
	cancel()
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()

	// Payment gateway client
	provider, err := payment.NewClient(cfg.Payment)
	if err != nil {
		log.Fatalf("Payment client setup failed: %v", err)
	}

	// Wire services
	catalog := services.NewCatalogService(db)
	carts := services.NewCartService(db, catalog)
	guest := services.NewGuestCartService(rdb, catalog, services.DefaultGuestCartTTL)
	sessions := services.NewRedisSessionStore(rdb)
	checkout := services.NewCheckoutService(catalog, provider, sessions, cfg.Payment.Currency)
	stock := services.NewStockService(db)
	orders := services.NewOrderService(db)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Config:   cfg,
		Catalog:  catalog,
		Carts:    carts,
		Guest:    guest,
		Checkout: checkout,
		Stock:    stock,
		Orders:   orders,
		Sessions: sessions,
	})

	// Start server
	log.Printf("Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
