// Package main is the entry point for the bank cards API server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"time"

	"bankcards/internal/cardnumber"
	"bankcards/internal/config"
	applog "bankcards/internal/logger"
	"bankcards/internal/observability"
	"bankcards/internal/repositories"
	"bankcards/internal/repositories/cache"
	"bankcards/internal/routes"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	log, cleanup := applog.New(config.GetEnv("LOG_LEVEL", "info"), config.IsProduction())
	defer cleanup()

	db, err := repositories.Connect()
	if err != nil {
		log.Fatal("database initialization failed", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	log.Info("connected to database")

	// The cache is best effort. The service runs without it.
	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	var cacheService *cache.Service
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		cacheService = cache.NewService(redisClient,
			time.Duration(config.GetIntEnv("REDIS_USER_TTL_MIN", 10))*time.Minute)
		defer cacheService.Close()
	}
	cancel()

	codec, err := cardnumber.NewCodec([]byte(config.MustGetEnv("CARD_ENCRYPTION_KEY")))
	if err != nil {
		log.Fatal("invalid card encryption key", zap.Error(err))
	}

	observability.Serve(config.GetEnv("METRICS_ADDR", ":9100"))

	app := fiber.New(fiber.Config{
		AppName:      "bankcards-api",
		ErrorHandler: utils.FiberErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(observability.HTTPMetrics())
	app.Use("/api/v1/auth", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, db, cacheService, codec, log)

	addr := ":" + config.GetEnv("PORT", "8080")
	log.Info("starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
