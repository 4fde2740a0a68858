package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/models"
	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
)

func SetupAdminRoutes(api fiber.Router, h *handlers.Handlers) {
	admin := api.Group("/admin",
		middleware.Protected(h.JWTSecret, h.TokenBlacklist),
		middleware.RequireRole(models.RoleAdmin),
	)
	admin.Post("/sweep-expiring", h.AdminHandler.SweepExpiring)
}
