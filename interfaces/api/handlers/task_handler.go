package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if fields := utils.DecodeAndValidate(c.Body(), &req); fields != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", fields)
		return utils.ValidationErrorResponse(c, fields)
	}

	task, err := h.taskService.CreateTask(ctx, sessionFromContext(c), &req)
	if err != nil {
		return respondServiceError(c, err, "Collection not found")
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task, time.Now()))
}

func (h *TaskHandler) ChangeTaskStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDResponse(c, "id")
	}

	var req dto.ChangeTaskStatusRequest
	if fields := utils.DecodeAndValidate(c.Body(), &req); fields != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", fields)
		return utils.ValidationErrorResponse(c, fields)
	}

	task, err := h.taskService.ChangeTaskStatus(ctx, sessionFromContext(c), taskID, &req)
	if err != nil {
		return respondServiceError(c, err, "Task not found")
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task, time.Now()))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidIDResponse(c, "id")
	}

	task, err := h.taskService.DeleteTask(c.UserContext(), sessionFromContext(c), taskID)
	if err != nil {
		return respondServiceError(c, err, "Task not found")
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task, time.Now()))
}
