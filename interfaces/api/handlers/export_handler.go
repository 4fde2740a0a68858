package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/services"
	"tasklist-api/pkg/utils"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CreateExport เขียน snapshot ของ collections ทั้งหมดของ user ลง storage
func (h *ExportHandler) CreateExport(c *fiber.Ctx) error {
	export, err := h.exportService.ExportCollections(c.UserContext(), sessionFromContext(c))
	if err != nil {
		return respondServiceError(c, err, "")
	}
	return utils.CreatedResponse(c, export)
}
