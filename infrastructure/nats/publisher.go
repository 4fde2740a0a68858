package nats

import (
	"encoding/json"
	"fmt"
)

// Publisher publishes change messages via core Pub/Sub
type Publisher struct {
	client *Client
}

// NewPublisher สร้าง Publisher ใหม่
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishChange ส่ง change message ไปที่ <prefix>.<user_id>
func (p *Publisher) PublishChange(msg *ChangeMessage) error {
	if msg == nil {
		return fmt.Errorf("change message cannot be nil")
	}
	if msg.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal change message: %w", err)
	}

	subject := SubjectFor(p.client.subjectPrefix, msg.UserID)
	if err := p.client.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}
