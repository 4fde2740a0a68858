package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Response envelope ของทุก endpoint
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
)

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          ErrCodeBadRequest,
	fiber.StatusUnauthorized:        ErrCodeUnauthorized,
	fiber.StatusForbidden:           ErrCodeForbidden,
	fiber.StatusNotFound:            ErrCodeNotFound,
	fiber.StatusConflict:            ErrCodeConflict,
	fiber.StatusInternalServerError: ErrCodeInternalError,
}

// ErrorCodeFor คืน error code ของ HTTP status (4xx อื่นๆ เป็น BAD_REQUEST, 5xx เป็น INTERNAL_ERROR)
func ErrorCodeFor(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	if status < fiber.StatusInternalServerError {
		return ErrCodeBadRequest
	}
	return ErrCodeInternalError
}

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

func CreatedResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string, details any) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// statusResponse ตอบ error ตาม status โดยใช้ fallback เมื่อ message ว่าง
func statusResponse(c *fiber.Ctx, status int, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return ErrorResponse(c, status, ErrorCodeFor(status), message, nil)
}

// ValidationErrorResponse ตอบ 400 พร้อม details เป็น field -> message
func ValidationErrorResponse(c *fiber.Ctx, details map[string]string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeValidation, "Validation failed", details)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return statusResponse(c, fiber.StatusUnauthorized, message, "Unauthorized")
}

func ForbiddenResponse(c *fiber.Ctx, message string) error {
	return statusResponse(c, fiber.StatusForbidden, message, "Forbidden")
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	return statusResponse(c, fiber.StatusNotFound, message, "Resource not found")
}

func ConflictResponse(c *fiber.Ctx, message string) error {
	return statusResponse(c, fiber.StatusConflict, message, "Conflict")
}

func InternalServerErrorResponse(c *fiber.Ctx) error {
	return statusResponse(c, fiber.StatusInternalServerError, "", "Internal server error")
}
