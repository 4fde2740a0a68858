package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
)

type ExportServiceImpl struct {
	collectionService services.CollectionService
	storage           ports.StoragePort
	now               func() time.Time
}

func NewExportService(collectionService services.CollectionService, storage ports.StoragePort) services.ExportService {
	return &ExportServiceImpl{
		collectionService: collectionService,
		storage:           storage,
		now:               time.Now,
	}
}

func (s *ExportServiceImpl) ExportCollections(ctx context.Context, session *models.Session) (*dto.ExportResponse, error) {
	collections, err := s.collectionService.ListCollections(ctx, session)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	dashboard := buildDashboard(session, collections, now)

	taskCount := 0
	for _, card := range dashboard.Collections {
		taskCount += card.TasksTotal
	}

	snapshot := dto.ExportSnapshot{
		UserID:      session.UserID,
		ExportedAt:  now,
		Collections: dashboard.Collections,
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	path := exportPath(session, now)
	url, err := s.storage.UploadFile(bytes.NewReader(body), path, "application/json")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to upload export", "user_id", session.UserID, "path", path, "error", err)
		return nil, fmt.Errorf("upload export: %w", err)
	}

	logger.InfoContext(ctx, "Collections exported",
		"user_id", session.UserID,
		"path", path,
		"provider", s.storage.GetProviderName(),
		"collections", len(dashboard.Collections),
		"tasks", taskCount,
	)

	return &dto.ExportResponse{
		URL:         url,
		Path:        path,
		Provider:    s.storage.GetProviderName(),
		Collections: len(dashboard.Collections),
		Tasks:       taskCount,
		CreatedAt:   now,
	}, nil
}

// exportPath: exports/<userId>/<slug>-<timestamp>.json
func exportPath(session *models.Session, now time.Time) string {
	name := slug.Make(strings.TrimSpace(session.FirstName + " " + session.LastName + " collections"))
	if name == "" {
		name = "collections"
	}
	return fmt.Sprintf("exports/%s/%s-%s.json", slug.Make(session.UserID), name, now.Format("20060102T150405Z"))
}
