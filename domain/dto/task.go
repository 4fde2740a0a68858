package dto

import (
	"time"
)

// CreateTaskRequest is the task-creation payload. Pointer fields distinguish "absent" from zero values.
type CreateTaskRequest struct {
	CollectionID *int64     `json:"collectionId" validate:"required,min=0"`
	Content      *string    `json:"content" validate:"required"`
	ExpiresAt    *time.Time `json:"expiresAt" validate:"omitempty"`
}

// ChangeTaskStatusRequest สำหรับเปลี่ยนสถานะ done ของ task
type ChangeTaskStatusRequest struct {
	Done *bool `json:"done" validate:"required"`
}

type TaskResponse struct {
	ID              uint       `json:"id"`
	UserID          string     `json:"userId"`
	CollectionID    uint       `json:"collectionId"`
	Content         string     `json:"content"`
	Done            bool       `json:"done"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	ExpirationLevel string     `json:"expirationLevel,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
