package serviceimpl

import (
	"context"
	"fmt"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo  repositories.TaskRepository
	publisher ports.EventPublisherPort
}

func NewTaskService(taskRepo repositories.TaskRepository, publisher ports.EventPublisherPort) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:  taskRepo,
		publisher: publisher,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, session *models.Session, req *dto.CreateTaskRequest) (*models.Task, error) {
	userID, err := requireSession(ctx, session, "create_task")
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, services.NewValidationError(map[string]string{"body": "is required"})
	}
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "Create task rejected", "user_id", userID, "error", err)
		return nil, err
	}

	task := dto.CreateTaskRequestToTask(req, userID)

	if err := s.taskRepo.CreateInCollection(ctx, task); err != nil {
		if isNotFound(err) {
			logger.WarnContext(ctx, "Collection not found for new task", "user_id", userID, "collection_id", task.CollectionID)
			return nil, services.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "collection_id", task.CollectionID, "error", err)
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.InfoContext(ctx, "Task created", "user_id", userID, "task_id", task.ID, "collection_id", task.CollectionID)

	publishChange(ctx, s.publisher, &ports.ChangeEvent{
		Type:         ports.EventTaskCreated,
		UserID:       userID,
		CollectionID: task.CollectionID,
		TaskID:       task.ID,
	})

	return task, nil
}

func (s *TaskServiceImpl) ChangeTaskStatus(ctx context.Context, session *models.Session, taskID uint, req *dto.ChangeTaskStatusRequest) (*models.Task, error) {
	userID, err := requireSession(ctx, session, "change_task_status")
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, services.NewValidationError(map[string]string{"done": "is required"})
	}
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "Change task status rejected", "user_id", userID, "task_id", taskID, "error", err)
		return nil, err
	}

	task, err := s.taskRepo.UpdateDone(ctx, taskID, userID, *req.Done)
	if err != nil {
		if isNotFound(err) {
			logger.WarnContext(ctx, "Task not found for status change", "user_id", userID, "task_id", taskID)
			return nil, services.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to change task status", "user_id", userID, "task_id", taskID, "error", err)
		return nil, fmt.Errorf("change task status: %w", err)
	}

	logger.InfoContext(ctx, "Task status changed", "user_id", userID, "task_id", task.ID, "done", task.Done)

	publishChange(ctx, s.publisher, &ports.ChangeEvent{
		Type:         ports.EventTaskStatusChanged,
		UserID:       userID,
		CollectionID: task.CollectionID,
		TaskID:       task.ID,
	})

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, session *models.Session, taskID uint) (*models.Task, error) {
	userID, err := requireSession(ctx, session, "delete_task")
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.DeleteByIDAndUserID(ctx, taskID, userID)
	if err != nil {
		if isNotFound(err) {
			logger.WarnContext(ctx, "Task not found for delete", "user_id", userID, "task_id", taskID)
			return nil, services.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete task", "user_id", userID, "task_id", taskID, "error", err)
		return nil, fmt.Errorf("delete task: %w", err)
	}

	logger.InfoContext(ctx, "Task deleted", "user_id", userID, "task_id", task.ID, "collection_id", task.CollectionID)

	publishChange(ctx, s.publisher, &ports.ChangeEvent{
		Type:         ports.EventTaskDeleted,
		UserID:       userID,
		CollectionID: task.CollectionID,
		TaskID:       task.ID,
	})

	return task, nil
}
