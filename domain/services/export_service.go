package services

import (
	"context"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
)

type ExportService interface {
	// ExportCollections writes a JSON snapshot of the caller's dashboard to storage.
	ExportCollections(ctx context.Context, session *models.Session) (*dto.ExportResponse, error)
}
