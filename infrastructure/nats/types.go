package nats

import (
	"strings"
	"time"
)

// Pub/Sub subjects: <prefix>.<user_id>
const (
	DefaultSubjectPrefix = "tasklist.changes"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ChangeMessage - API instance → API instance (via Pub/Sub)
// ⚠️ ทุก instance ต้องใช้โครงสร้างเดียวกัน
// ═══════════════════════════════════════════════════════════════════════════════
type ChangeMessage struct {
	Type         string `json:"type"`
	UserID       string `json:"user_id"`
	CollectionID uint   `json:"collection_id,omitempty"`
	TaskID       uint   `json:"task_id,omitempty"`
	TaskIDs      []uint `json:"task_ids,omitempty"`
	OccurredAt   int64  `json:"occurred_at"` // unix millis
}

// OccurredTime แปลง occurred_at กลับเป็น time.Time
func (m *ChangeMessage) OccurredTime() time.Time {
	return time.UnixMilli(m.OccurredAt).UTC()
}

var subjectReplacer = strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_")

// SubjectFor สร้าง subject ของ user โดยกัน wildcard/ตัวคั่นที่อาจอยู่ใน user id
func SubjectFor(prefix, userID string) string {
	return prefix + "." + subjectReplacer.Replace(userID)
}
