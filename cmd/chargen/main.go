package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chargen/internal/catalog"
	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/repositories/drafts"
	"github.com/KirkDiggler/chargen/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rules, err := loadCatalog(cfg.Rules.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}

	providerConfig := &services.ProviderConfig{
		Catalog: rules,
		Budget:  cfg.Budget,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory drafts")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory drafts")
				_ = redisClient.Close()
				redisClient = nil
			} else {
				log.Println("Successfully connected to Redis")
				providerConfig.DraftRepository = drafts.NewRedisRepository(&drafts.RedisRepoConfig{
					Client: redisClient,
					TTL:    cfg.Redis.DraftTTL,
				})
			}
		}
	} else {
		log.Println("No REDIS_URL found, drafts are kept in memory")
	}

	provider := services.NewProvider(providerConfig)

	fmt.Println("Character generation. Type help for commands.")
	if err := newShell(provider, os.Stdout).run(context.Background(), os.Stdin); err != nil {
		log.Printf("Input error: %v", err)
	}

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}

func loadCatalog(path string) (*catalog.Static, error) {
	if path == "" {
		return catalog.Default()
	}
	log.Printf("Loading rules from %s", path)
	return catalog.LoadFile(path)
}
