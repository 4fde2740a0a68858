package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type AdminHandler struct {
	expirySweepService services.ExpirySweepService
}

func NewAdminHandler(expirySweepService services.ExpirySweepService) *AdminHandler {
	return &AdminHandler{expirySweepService: expirySweepService}
}

// SweepExpiring รัน expiry sweep ทันทีโดยไม่รอ cron
func (h *AdminHandler) SweepExpiring(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.expirySweepService == nil {
		return utils.NotFoundResponse(c, "Expiry sweep is not available")
	}

	count, err := h.expirySweepService.Sweep(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Manual expiry sweep failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, fiber.Map{"expiringTasks": count})
}
