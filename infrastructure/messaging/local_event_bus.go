package messaging

import (
	"context"
	"fmt"
	"sync"

	"tasklist-api/domain/ports"
	"tasklist-api/pkg/logger"
)

// LocalEventBus ส่ง change events ภายใน process เดียว
// ใช้แทน NATS เมื่อไม่ได้ตั้ง NATS_URL (single instance)
type LocalEventBus struct {
	mu       sync.RWMutex
	handlers map[int]ports.EventHandler
	nextID   int
}

func NewLocalEventBus() *LocalEventBus {
	return &LocalEventBus{handlers: make(map[int]ports.EventHandler)}
}

func (b *LocalEventBus) PublishChange(ctx context.Context, event *ports.ChangeEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	handlers := make([]ports.EventHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		func(h ports.EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Change handler panicked", "error", r)
				}
			}()
			cp := *event
			h(&cp)
		}(handler)
	}
	return nil
}

// Subscribe ลงทะเบียน handler จนกว่า ctx จะถูก cancel หรือเรียก Unsubscribe
func (b *LocalEventBus) Subscribe(ctx context.Context, handler ports.EventHandler) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

// Unsubscribe ลบ handler ทั้งหมด
func (b *LocalEventBus) Unsubscribe() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[int]ports.EventHandler)
	return nil
}

var (
	_ ports.EventPublisherPort  = (*LocalEventBus)(nil)
	_ ports.EventSubscriberPort = (*LocalEventBus)(nil)
)
