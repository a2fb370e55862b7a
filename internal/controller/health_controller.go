package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/pkg/database"
)

var startedAt = time.Now()

// HealthCheck reports process uptime and database connectivity.
func HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "up"

	sqlDB, err := database.GetDB().DB()
	if err != nil {
		status = "degraded"
		dbStatus = "down"
	} else if err := sqlDB.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(startedAt).Seconds()),
	})
}
