package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(h.JWTSecret, h.TokenBlacklist))
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Patch("/:id/status", h.TaskHandler.ChangeTaskStatus)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
