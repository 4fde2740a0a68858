package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/services"
	"tasklist-api/pkg/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.GetDashboard(c.UserContext(), sessionFromContext(c))
	if err != nil {
		return respondServiceError(c, err, "")
	}
	return utils.SuccessResponse(c, dashboard)
}
