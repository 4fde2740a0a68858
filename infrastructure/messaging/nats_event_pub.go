package messaging

import (
	"context"
	"fmt"

	"tasklist-api/domain/ports"
	natspkg "tasklist-api/infrastructure/nats"
)

// NATSEventPublisher implements EventPublisherPort using NATS Pub/Sub
type NATSEventPublisher struct {
	publisher *natspkg.Publisher
}

// NewNATSEventPublisher สร้าง EventPublisherPort adapter สำหรับ NATS
func NewNATSEventPublisher(publisher *natspkg.Publisher) ports.EventPublisherPort {
	return &NATSEventPublisher{publisher: publisher}
}

func (p *NATSEventPublisher) PublishChange(ctx context.Context, event *ports.ChangeEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.publisher.PublishChange(toChangeMessage(event))
}

func toChangeMessage(event *ports.ChangeEvent) *natspkg.ChangeMessage {
	return &natspkg.ChangeMessage{
		Type:         string(event.Type),
		UserID:       event.UserID,
		CollectionID: event.CollectionID,
		TaskID:       event.TaskID,
		TaskIDs:      event.TaskIDs,
		OccurredAt:   event.OccurredAt.UnixMilli(),
	}
}

func fromChangeMessage(msg *natspkg.ChangeMessage) *ports.ChangeEvent {
	return &ports.ChangeEvent{
		Type:         ports.ChangeEventType(msg.Type),
		UserID:       msg.UserID,
		CollectionID: msg.CollectionID,
		TaskID:       msg.TaskID,
		TaskIDs:      msg.TaskIDs,
		OccurredAt:   msg.OccurredTime(),
	}
}
