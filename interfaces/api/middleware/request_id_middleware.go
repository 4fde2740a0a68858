package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasklist-api/pkg/logger"
)

const (
	RequestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
	requestIDLocal     = "request_id"
)

// RequestIDMiddleware ใช้ X-Request-ID ของ client ถ้าปลอดภัยพอจะใส่ใน log ไม่งั้นสร้าง uuid ใหม่
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDHeader, requestID)
		c.Locals(requestIDLocal, requestID)
		c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}

// validRequestID รับเฉพาะ [A-Za-z0-9._-] กัน header injection ลง log
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

func GetRequestIDFromContext(c *fiber.Ctx) string {
	requestID, _ := c.Locals(requestIDLocal).(string)
	return requestID
}
