package messaging

import (
	"context"

	"tasklist-api/domain/ports"
	natspkg "tasklist-api/infrastructure/nats"
	"tasklist-api/pkg/logger"
)

// NATSEventSubscriber implements EventSubscriberPort using NATS Pub/Sub
type NATSEventSubscriber struct {
	subscriber *natspkg.Subscriber
	cancel     context.CancelFunc
}

// NewNATSEventSubscriber สร้าง EventSubscriberPort adapter สำหรับ NATS
func NewNATSEventSubscriber(subscriber *natspkg.Subscriber) ports.EventSubscriberPort {
	return &NATSEventSubscriber{subscriber: subscriber}
}

// Subscribe เริ่ม listen change events
func (s *NATSEventSubscriber) Subscribe(ctx context.Context, handler ports.EventHandler) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.subscriber.OnChange(func(msg *natspkg.ChangeMessage) {
		if ctx.Err() != nil {
			return
		}
		if msg == nil || msg.UserID == "" {
			logger.Warn("Received change message without user_id")
			return
		}
		handler(fromChangeMessage(msg))
	})

	if !s.subscriber.IsRunning() {
		return s.subscriber.Start()
	}
	return nil
}

// Unsubscribe หยุด listen
func (s *NATSEventSubscriber) Unsubscribe() error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.subscriber.Stop()
}
