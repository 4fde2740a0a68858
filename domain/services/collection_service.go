package services

import (
	"context"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
)

type CollectionService interface {
	CreateCollection(ctx context.Context, session *models.Session, req *dto.CreateCollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, session *models.Session, collectionID uint) (*models.Collection, error)
	ListCollections(ctx context.Context, session *models.Session) ([]*models.Collection, error)
}
