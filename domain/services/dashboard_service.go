package services

import (
	"context"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, session *models.Session) (*dto.DashboardResponse, error)
}
