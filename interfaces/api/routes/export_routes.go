package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
	"tasklist-api/pkg/config"
)

func SetupExportRoutes(api fiber.Router, h *handlers.Handlers) {
	exports := api.Group("/exports")
	exports.Use(middleware.Protected(h.JWTSecret, h.TokenBlacklist))
	exports.Post("/", h.ExportHandler.CreateExport)
}

// SetupFileRoutes เสิร์ฟไฟล์ export เมื่อใช้ local storage (S3 ให้ bucket เสิร์ฟเอง)
func SetupFileRoutes(app *fiber.App, storage config.StorageConfig) {
	if storage.Type != "local" {
		return
	}
	app.Static("/files", storage.BasePath, fiber.Static{
		Browse: false,
	})
}
