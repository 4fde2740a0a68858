package repositories

import (
	"context"

	"tasklist-api/domain/models"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	// ListByUserID returns the user's collections with their tasks preloaded.
	ListByUserID(ctx context.Context, userID string) ([]*models.Collection, error)
	// DeleteByIDAndUserID removes the collection and its tasks, returning the deleted row.
	DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Collection, error)
}
