package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/models"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

// respondServiceError แปลง error จาก service เป็น HTTP response
// not found กับ not owned ตอบเหมือนกันเพื่อไม่ให้รู้ว่ามี row อยู่
func respondServiceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	case errors.As(err, &validationErr):
		return utils.ValidationErrorResponse(c, validationErr.Fields)
	default:
		logger.ErrorContext(c.UserContext(), "Request failed", "path", c.Path(), "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}

// sessionFromContext สร้าง session จาก user ที่ Protected middleware ใส่ไว้
// คืน nil ถ้าไม่มี ให้ service เป็นคนปฏิเสธ
func sessionFromContext(c *fiber.Ctx) *models.Session {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil
	}
	return &models.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}

// parseIDParam อ่าน path param เป็น unsigned integer
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func invalidIDResponse(c *fiber.Ctx, name string) error {
	return utils.ValidationErrorResponse(c, map[string]string{name: "must be a non-negative integer"})
}
