package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, storage config.StorageConfig) {
	// Setup health and root routes
	SetupHealthRoutes(app, h)

	// Export snapshots ของ local storage
	SetupFileRoutes(app, storage)

	// API version group
	api := app.Group("/api/v1")

	// Setup all route groups
	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h)
	SetupDashboardRoutes(api, h)
	SetupCollectionRoutes(api, h)
	SetupTaskRoutes(api, h)
	SetupExportRoutes(api, h)
	SetupAdminRoutes(api, h)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, h)
}
