package handlers

import (
	"bankcards/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Service
}

func NewHealthHandler(db *gorm.DB, cacheService *cache.Service) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheService}
}

// Check reports liveness of the service and its backing stores.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok", "database": "up", "cache": "up"}
	code := fiber.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["status"] = "degraded"
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.HealthCheck(c.Context()) != nil {
		status["status"] = "degraded"
		status["cache"] = "down"
		if code == fiber.StatusOK {
			code = fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(status)
}
