package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
)

func SetupCollectionRoutes(api fiber.Router, h *handlers.Handlers) {
	collections := api.Group("/collections")
	collections.Use(middleware.Protected(h.JWTSecret, h.TokenBlacklist))
	collections.Get("/", h.CollectionHandler.ListCollections)
	collections.Post("/", h.CollectionHandler.CreateCollection)
	collections.Delete("/:id", h.CollectionHandler.DeleteCollection) // ลบ tasks ข้างในด้วย
}
