package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/digital-notice-board/internal/config"
	"github.com/iliyamo/digital-notice-board/internal/database"
	"github.com/iliyamo/digital-notice-board/internal/handler"
	"github.com/iliyamo/digital-notice-board/internal/middleware"
	"github.com/iliyamo/digital-notice-board/internal/queue"
	"github.com/iliyamo/digital-notice-board/internal/repository"
	"github.com/iliyamo/digital-notice-board/internal/router"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	notices := repository.NewNoticeRepo(db)
	categories := repository.NewCategoryRepo(db)

	// Redis is optional: a nil client turns the cache and rate limiter
	// into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(notices, categories), rateMW, cacheMW)
	router.RegisterAdmin(e, handler.NewAdminHandler(notices, users, categories), cfg.JWTSecret)

	// Drain notice.published in the background; the consumer has its
	// own reconnect loop and never takes the API down.
	go func() {
		if err := queue.StartNoticeConsumer(); err != nil {
			log.Printf("notice consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
