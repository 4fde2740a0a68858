package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Change Events - ส่งเมื่อ collection/task ของ user เปลี่ยน
// ═══════════════════════════════════════════════════════════════════════════════

type ChangeEventType string

const (
	EventCollectionCreated ChangeEventType = "collection.created"
	EventCollectionDeleted ChangeEventType = "collection.deleted"
	EventTaskCreated       ChangeEventType = "task.created"
	EventTaskStatusChanged ChangeEventType = "task.status_changed"
	EventTaskDeleted       ChangeEventType = "task.deleted"
	EventTasksExpiring     ChangeEventType = "tasks.expiring"
)

// ChangeEvent - Plain struct (ไม่มี NATS dependency)
type ChangeEvent struct {
	Type         ChangeEventType `json:"type"`
	UserID       string          `json:"userId"`
	CollectionID uint            `json:"collectionId,omitempty"`
	TaskID       uint            `json:"taskId,omitempty"`
	TaskIDs      []uint          `json:"taskIds,omitempty"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// EventPublisherPort - Interface สำหรับส่ง change events
type EventPublisherPort interface {
	PublishChange(ctx context.Context, event *ChangeEvent) error
}

// EventHandler - Callback function type
type EventHandler func(event *ChangeEvent)

// EventSubscriberPort - Interface สำหรับ subscribe change events
// รับ ctx เพื่อให้ cancel subscription ผ่าน context ได้
type EventSubscriberPort interface {
	// Subscribe เริ่ม listen change events ของทุก user
	Subscribe(ctx context.Context, handler EventHandler) error

	// Unsubscribe หยุด listen
	Unsubscribe() error
}
