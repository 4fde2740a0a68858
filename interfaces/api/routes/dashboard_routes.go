package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
)

func SetupDashboardRoutes(api fiber.Router, h *handlers.Handlers) {
	api.Get("/dashboard", middleware.Protected(h.JWTSecret, h.TokenBlacklist), h.DashboardHandler.GetDashboard)
}
