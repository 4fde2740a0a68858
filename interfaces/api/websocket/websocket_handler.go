package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	websocketManager "tasklist-api/infrastructure/websocket"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type WebSocketHandler struct{}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	user, ok := c.Locals("user").(*utils.UserContext)
	if !ok || user == nil || user.ID == "" {
		logger.Warn("WebSocket connection without user context")
		c.Close()
		return
	}

	logger.Info("WebSocket: user connected", "user_id", user.ID)
	websocketManager.Manager.RegisterClient(c, user.ID)

	defer func() {
		websocketManager.Manager.UnregisterClient(c)
	}()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read error", "user_id", user.ID, "error", err)
			break
		}

		websocketManager.Manager.HandleMessage(c, message)
	}
}
