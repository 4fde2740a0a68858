package services

import (
	"context"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, session *models.Session, req *dto.CreateTaskRequest) (*models.Task, error)
	// ChangeTaskStatus sets done on a task owned by the caller. Setting the same value again succeeds.
	ChangeTaskStatus(ctx context.Context, session *models.Session, taskID uint, req *dto.ChangeTaskStatusRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, session *models.Session, taskID uint) (*models.Task, error)
}
