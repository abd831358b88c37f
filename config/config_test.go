package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("NUTRIGUIDE_SERVER_PORT")
		os.Unsetenv("NUTRIGUIDE_SERVER_ENVIRONMENT")
		os.Unsetenv("NUTRIGUIDE_STORE_DRIVER")
		os.Unsetenv("NUTRIGUIDE_STORE_DSN")
		os.Unsetenv("NUTRIGUIDE_RECOMMEND_TOP_N")
		os.Unsetenv("NUTRIGUIDE_RECOMMEND_PRODUCTS_PER_INGREDIENT")
		os.Unsetenv("NUTRIGUIDE_RECOMMEND_PRODUCT_CANDIDATES")
		os.Unsetenv("NUTRIGUIDE_RATELIMIT_PER_IP")
		os.Unsetenv("NUTRIGUIDE_RATELIMIT_BURST")
		os.Unsetenv("NUTRIGUIDE_LOG_MODE")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Store.Driver != "sqlite" {
			t.Errorf("Store.Driver = %s, want sqlite", cfg.Store.Driver)
		}
		if cfg.Recommend.TopN != 3 {
			t.Errorf("Recommend.TopN = %d, want 3", cfg.Recommend.TopN)
		}
		if cfg.Recommend.ProductsPerIngredient != 2 {
			t.Errorf("Recommend.ProductsPerIngredient = %d, want 2", cfg.Recommend.ProductsPerIngredient)
		}
		if cfg.Recommend.ProductCandidates != 10 {
			t.Errorf("Recommend.ProductCandidates = %d, want 10", cfg.Recommend.ProductCandidates)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIGUIDE_SERVER_PORT", "9090")
		os.Setenv("NUTRIGUIDE_SERVER_ENVIRONMENT", "production")
		os.Setenv("NUTRIGUIDE_STORE_DRIVER", "postgres")
		os.Setenv("NUTRIGUIDE_STORE_DSN", "postgres://localhost:5432/nutriguide")
		os.Setenv("NUTRIGUIDE_RECOMMEND_TOP_N", "5")
		os.Setenv("NUTRIGUIDE_RECOMMEND_PRODUCTS_PER_INGREDIENT", "4")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Store.Driver != "postgres" {
			t.Errorf("Store.Driver = %s, want postgres", cfg.Store.Driver)
		}
		if cfg.Store.DSN != "postgres://localhost:5432/nutriguide" {
			t.Errorf("Store.DSN = %s, want postgres://localhost:5432/nutriguide", cfg.Store.DSN)
		}
		if cfg.Recommend.TopN != 5 {
			t.Errorf("Recommend.TopN = %d, want 5", cfg.Recommend.TopN)
		}
		if cfg.Recommend.ProductsPerIngredient != 4 {
			t.Errorf("Recommend.ProductsPerIngredient = %d, want 4", cfg.Recommend.ProductsPerIngredient)
		}
	})

	t.Run("rejects unknown store driver", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIGUIDE_STORE_DRIVER", "oracle")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want driver validation error")
		}
	})

	t.Run("rejects non-positive top_n", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIGUIDE_RECOMMEND_TOP_N", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want top_n validation error")
		}
	})
}
