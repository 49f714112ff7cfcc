package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/rentora/pricing-service/internal/config"     // Internal config loader
	"github.com/rentora/pricing-service/internal/database"   // MySQL pool constructor
	"github.com/rentora/pricing-service/internal/handler"    // HTTP handlers
	"github.com/rentora/pricing-service/internal/middleware" // Redis cache + rate limiter
	"github.com/rentora/pricing-service/internal/pricing"    // Quote calculation core
	"github.com/rentora/pricing-service/internal/queue"      // Quote event consumer
	"github.com/rentora/pricing-service/internal/repository" // Data access layer
	"github.com/rentora/pricing-service/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	propertyRepo := repository.NewPropertyRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	rateRepo := repository.NewRateRepo(db)

	source := repository.NewQuoteSource(propertyRepo, roomRepo, rateRepo)
	calc := pricing.NewCalculator(source, source)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiter disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, &handler.PublicHandler{PropertyRepo: propertyRepo, RoomRepo: roomRepo})
	router.RegisterQuotes(e, handler.NewQuoteHandler(calc), limitMW, cacheMW)
	router.RegisterRates(e, handler.NewRateHandler(propertyRepo, roomRepo, rateRepo))

	// Consume quote.calculated events in the background; the consumer runs
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartQuoteConsumer(); err != nil {
			log.Printf("quote consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
