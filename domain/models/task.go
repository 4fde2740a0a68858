package models

import (
	"time"
)

// ExpirationLevel จัดระดับความเร่งด่วนของ task ตามวันหมดอายุ
type ExpirationLevel string

const (
	ExpirationNone    ExpirationLevel = ""
	ExpirationExpired ExpirationLevel = "expired"
	ExpirationUrgent  ExpirationLevel = "urgent"
	ExpirationSoon    ExpirationLevel = "soon"
	ExpirationLater   ExpirationLevel = "later"
)

const (
	urgentWindow = 3 * 24 * time.Hour
	soonWindow   = 7 * 24 * time.Hour
)

type Task struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       string     `gorm:"size:255;not null;index"`
	CollectionID uint       `gorm:"not null;index"`
	Content      string     `gorm:"type:text;not null"`
	Done         bool       `gorm:"not null;default:false"`
	ExpiresAt    *time.Time `gorm:"index"`
	CreatedAt    time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// ExpirationLevelAt classifies the task's expiry relative to now.
func (t *Task) ExpirationLevelAt(now time.Time) ExpirationLevel {
	if t.ExpiresAt == nil {
		return ExpirationNone
	}

	remaining := t.ExpiresAt.Sub(now)
	switch {
	case remaining <= 0:
		return ExpirationExpired
	case remaining <= urgentWindow:
		return ExpirationUrgent
	case remaining <= soonWindow:
		return ExpirationSoon
	default:
		return ExpirationLater
	}
}
