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

type CollectionServiceImpl struct {
	collectionRepo repositories.CollectionRepository
	publisher      ports.EventPublisherPort
}

func NewCollectionService(collectionRepo repositories.CollectionRepository, publisher ports.EventPublisherPort) services.CollectionService {
	return &CollectionServiceImpl{
		collectionRepo: collectionRepo,
		publisher:      publisher,
	}
}

func (s *CollectionServiceImpl) CreateCollection(ctx context.Context, session *models.Session, req *dto.CreateCollectionRequest) (*models.Collection, error) {
	userID, err := requireSession(ctx, session, "create_collection")
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, services.NewValidationError(map[string]string{"body": "is required"})
	}
	if err := validateRequest(req); err != nil {
		logger.WarnContext(ctx, "Create collection rejected", "user_id", userID, "error", err)
		return nil, err
	}

	collection := dto.CreateCollectionRequestToCollection(req, userID)

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		logger.ErrorContext(ctx, "Failed to create collection", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create collection: %w", err)
	}

	logger.InfoContext(ctx, "Collection created", "user_id", userID, "collection_id", collection.ID, "color", collection.Color)

	publishChange(ctx, s.publisher, &ports.ChangeEvent{
		Type:         ports.EventCollectionCreated,
		UserID:       userID,
		CollectionID: collection.ID,
	})

	return collection, nil
}

func (s *CollectionServiceImpl) DeleteCollection(ctx context.Context, session *models.Session, collectionID uint) (*models.Collection, error) {
	userID, err := requireSession(ctx, session, "delete_collection")
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionRepo.DeleteByIDAndUserID(ctx, collectionID, userID)
	if err != nil {
		if isNotFound(err) {
			logger.WarnContext(ctx, "Collection not found for delete", "user_id", userID, "collection_id", collectionID)
			return nil, services.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete collection", "user_id", userID, "collection_id", collectionID, "error", err)
		return nil, fmt.Errorf("delete collection: %w", err)
	}

	logger.InfoContext(ctx, "Collection deleted",
		"user_id", userID,
		"collection_id", collection.ID,
		"tasks_deleted", len(collection.Tasks),
	)

	publishChange(ctx, s.publisher, &ports.ChangeEvent{
		Type:         ports.EventCollectionDeleted,
		UserID:       userID,
		CollectionID: collection.ID,
	})

	return collection, nil
}

func (s *CollectionServiceImpl) ListCollections(ctx context.Context, session *models.Session) ([]*models.Collection, error) {
	userID, err := requireSession(ctx, session, "list_collections")
	if err != nil {
		return nil, err
	}

	collections, err := s.collectionRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list collections", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list collections: %w", err)
	}

	return collections, nil
}
