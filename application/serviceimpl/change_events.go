package serviceimpl

import (
	"context"
	"errors"
	"time"

	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

// publishChange ส่ง change event แบบ best effort
// mutation สำเร็จไปแล้ว ถ้าส่งไม่ได้ให้ log ไว้เฉยๆ
func publishChange(ctx context.Context, publisher ports.EventPublisherPort, event *ports.ChangeEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := publisher.PublishChange(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish change event",
			"type", event.Type,
			"user_id", event.UserID,
			"error", err,
		)
	}
}

// requireSession คืน user id ของ caller หรือ ErrUnauthenticated
func requireSession(ctx context.Context, session *models.Session, operation string) (string, error) {
	if !session.IsAuthenticated() {
		logger.WarnContext(ctx, "Unauthenticated call rejected", "operation", operation)
		return "", services.ErrUnauthenticated
	}
	return session.UserID, nil
}

func validateRequest(req any) error {
	if err := utils.ValidateStruct(req); err != nil {
		return services.NewValidationError(utils.GetValidationErrors(err))
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
