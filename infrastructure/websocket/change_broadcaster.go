package websocket

import (
	"context"
	"sync"

	"tasklist-api/domain/ports"
	"tasklist-api/pkg/logger"
)

// Message types ที่ส่งให้ client
const (
	MessageCollectionsChanged = "collections.changed"
	MessageTasksExpiring      = "tasks.expiring"
)

// UserBroadcaster ส่ง message ไปยังทุก connection ของ user
type UserBroadcaster interface {
	BroadcastToUser(userID string, messageType string, data interface{})
}

// ChangeBroadcaster รับ change events จาก messaging แล้วบอก client ของ user ให้ re-fetch
type ChangeBroadcaster struct {
	subscriber ports.EventSubscriberPort
	target     UserBroadcaster
	running    bool
	runningMu  sync.Mutex
	cancelCtx  context.CancelFunc
}

func NewChangeBroadcaster(subscriber ports.EventSubscriberPort, target UserBroadcaster) *ChangeBroadcaster {
	if target == nil {
		target = Manager
	}
	return &ChangeBroadcaster{
		subscriber: subscriber,
		target:     target,
	}
}

// ChangeNotice payload ของ collections.changed
type ChangeNotice struct {
	Event        string `json:"event"`
	CollectionID uint   `json:"collectionId,omitempty"`
	TaskID       uint   `json:"taskId,omitempty"`
}

// ExpiringNotice payload ของ tasks.expiring
type ExpiringNotice struct {
	TaskIDs []uint `json:"taskIds"`
}

func (cb *ChangeBroadcaster) Start() error {
	cb.runningMu.Lock()
	defer cb.runningMu.Unlock()

	if cb.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := cb.subscriber.Subscribe(ctx, cb.HandleEvent); err != nil {
		cancel()
		return err
	}

	cb.cancelCtx = cancel
	cb.running = true
	logger.Info("Change broadcaster started")
	return nil
}

// HandleEvent แปลง change event เป็น websocket message ของ user เจ้าของ
func (cb *ChangeBroadcaster) HandleEvent(event *ports.ChangeEvent) {
	if event == nil || event.UserID == "" {
		logger.Warn("Invalid change event received")
		return
	}

	switch event.Type {
	case ports.EventTasksExpiring:
		cb.target.BroadcastToUser(event.UserID, MessageTasksExpiring, ExpiringNotice{TaskIDs: event.TaskIDs})
	default:
		cb.target.BroadcastToUser(event.UserID, MessageCollectionsChanged, ChangeNotice{
			Event:        string(event.Type),
			CollectionID: event.CollectionID,
			TaskID:       event.TaskID,
		})
	}
}

func (cb *ChangeBroadcaster) Stop() {
	cb.runningMu.Lock()
	defer cb.runningMu.Unlock()

	if !cb.running {
		return
	}
	cb.running = false

	if cb.cancelCtx != nil {
		cb.cancelCtx()
	}
	if err := cb.subscriber.Unsubscribe(); err != nil {
		logger.Warn("Failed to unsubscribe change events", "error", err)
	}

	logger.Info("Change broadcaster stopped")
}

func (cb *ChangeBroadcaster) IsRunning() bool {
	cb.runningMu.Lock()
	defer cb.runningMu.Unlock()
	return cb.running
}
