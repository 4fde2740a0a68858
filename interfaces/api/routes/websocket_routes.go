package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
	websocketHandler "tasklist-api/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, h *handlers.Handlers) {
	wsHandler := websocketHandler.NewWebSocketHandler()

	// ต้อง login: browser ส่ง header ไม่ได้ จึงรับ ?token= ด้วย
	app.Use("/ws", wsHandler.WebSocketUpgrade, middleware.ProtectedWebSocket(h.JWTSecret, h.TokenBlacklist))
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
