package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type CollectionHandler struct {
	collectionService services.CollectionService
}

func NewCollectionHandler(collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

func (h *CollectionHandler) CreateCollection(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateCollectionRequest
	if fields := utils.DecodeAndValidate(c.Body(), &req); fields != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", fields)
		return utils.ValidationErrorResponse(c, fields)
	}

	collection, err := h.collectionService.CreateCollection(ctx, sessionFromContext(c), &req)
	if err != nil {
		return respondServiceError(c, err, "Collection not found")
	}

	return utils.CreatedResponse(c, dto.CollectionToCollectionResponse(collection, time.Now()))
}

func (h *CollectionHandler) ListCollections(c *fiber.Ctx) error {
	collections, err := h.collectionService.ListCollections(c.UserContext(), sessionFromContext(c))
	if err != nil {
		return respondServiceError(c, err, "Collection not found")
	}

	now := time.Now()
	responses := make([]*dto.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		responses = append(responses, dto.CollectionToCollectionResponse(collection, now))
	}

	return utils.SuccessResponse(c, responses)
}

func (h *CollectionHandler) DeleteCollection(c *fiber.Ctx) error {
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDResponse(c, "id")
	}

	collection, err := h.collectionService.DeleteCollection(c.UserContext(), sessionFromContext(c), collectionID)
	if err != nil {
		return respondServiceError(c, err, "Collection not found")
	}

	return utils.SuccessResponse(c, dto.CollectionToCollectionResponse(collection, time.Now()))
}
