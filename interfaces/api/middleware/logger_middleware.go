package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/pkg/logger"
)

// quietPaths ถูก poll บ่อย log เฉพาะตอนไม่ 2xx
var quietPaths = map[string]bool{
	"/health": true,
}

// LoggerMiddleware log หนึ่งบรรทัดต่อ request หลังตอบเสร็จ
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if quietPaths[c.Path()] && status < 300 {
			return err
		}

		// route เป็น pattern (/api/v1/tasks/:id) ใช้ group log ได้ ส่วน path คือค่าจริง
		// user_id มาจาก UserContext ที่ Protected ใส่ไว้
		args := []any{
			"method", c.Method(),
			"route", c.Route().Path,
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		}

		switch {
		case status >= 500:
			logger.ErrorContext(c.UserContext(), "Request failed", args...)
		case status >= 400:
			logger.WarnContext(c.UserContext(), "Request rejected", args...)
		default:
			logger.InfoContext(c.UserContext(), "Request completed", args...)
		}

		return err
	}
}
