package main

import (
	"fmt"
	"log"

	"github.com/nutriguide/backend/config"
	httpDelivery "github.com/nutriguide/backend/internal/delivery/http"
	"github.com/nutriguide/backend/internal/infrastructure/store"
	"github.com/nutriguide/backend/internal/logger"
	"github.com/nutriguide/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	appLog.Info("Starting NutriGuide Backend v1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"storeDriver", cfg.Store.Driver,
	)

	// Initialize infrastructure dependencies
	db, err := store.Open(cfg.Store, appLog)
	if err != nil {
		appLog.Fatal("Failed to open store", "error", err)
	}
	if err := db.AutoMigrate(); err != nil {
		appLog.Fatal("Failed to migrate store schema", "error", err)
	}

	// Initialize usecase layer
	recommender := usecase.NewRecommender(db, appLog, usecase.RecommenderConfig{
		TopN:                  cfg.Recommend.TopN,
		ProductsPerIngredient: cfg.Recommend.ProductsPerIngredient,
		ProductCandidates:     cfg.Recommend.ProductCandidates,
	})
	intake := usecase.NewIntakeService(db, appLog)
	admin := usecase.NewAdminService(db, appLog)

	appLog.Info("Recommendation engine configured",
		"topN", cfg.Recommend.TopN,
		"productsPerIngredient", cfg.Recommend.ProductsPerIngredient,
		"productCandidates", cfg.Recommend.ProductCandidates,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(intake, recommender, admin)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, appLog, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	appLog.Info("Server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		appLog.Fatal("Failed to start server", "error", err)
	}
}
