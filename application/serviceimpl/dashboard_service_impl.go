package serviceimpl

import (
	"context"
	"time"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
	"tasklist-api/domain/services"
)

type DashboardServiceImpl struct {
	collectionService services.CollectionService
	now               func() time.Time
}

func NewDashboardService(collectionService services.CollectionService) services.DashboardService {
	return &DashboardServiceImpl{
		collectionService: collectionService,
		now:               time.Now,
	}
}

func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, session *models.Session) (*dto.DashboardResponse, error) {
	collections, err := s.collectionService.ListCollections(ctx, session)
	if err != nil {
		return nil, err
	}

	return buildDashboard(session, collections, s.now()), nil
}

func buildDashboard(session *models.Session, collections []*models.Collection, now time.Time) *dto.DashboardResponse {
	cards := make([]dto.CollectionCard, 0, len(collections))
	for _, collection := range collections {
		cards = append(cards, *dto.CollectionToCollectionCard(collection, now))
	}

	return &dto.DashboardResponse{
		Welcome: dto.WelcomeMessage{
			FirstName: session.FirstName,
			LastName:  session.LastName,
		},
		IsEmpty:     len(cards) == 0,
		Collections: cards,
	}
}
