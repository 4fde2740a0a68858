package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

// ErrorHandler แปลง error ที่ handler ไม่ได้ตอบเอง (fiber.Error, panic จาก recover) ให้อยู่ใน envelope
// รายละเอียดของ 5xx เขียนลง log เท่านั้น
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			if status < fiber.StatusInternalServerError {
				message = fe.Message
			}
		}

		if status >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Unhandled error",
				"path", c.Path(),
				"method", c.Method(),
				"request_id", GetRequestIDFromContext(c),
				"error", err,
			)
		}

		return utils.ErrorResponse(c, status, utils.ErrorCodeFor(status), message, nil)
	}
}
