package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/pkg/logger"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck คืน error ถ้า dependency ใช้งานไม่ได้
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health ตอบ 503 ถ้ามี check ใดไม่ผ่าน
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.WarnContext(ctx, "Health check failed", "check", name, "error", err)
			results[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "Tasklist API",
		"checks":  results,
	})
}
