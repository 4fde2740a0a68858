package repositories

import (
	"context"
	"time"

	"tasklist-api/domain/models"
)

type TaskRepository interface {
	// CreateInCollection inserts the task only when task.CollectionID belongs to task.UserID.
	CreateInCollection(ctx context.Context, task *models.Task) error
	UpdateDone(ctx context.Context, id uint, userID string, done bool) (*models.Task, error)
	DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Task, error)
	// ListExpiringBetween returns open tasks whose expiry falls in (from, to].
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error)
}
