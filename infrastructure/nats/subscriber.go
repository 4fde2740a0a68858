package nats

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"tasklist-api/pkg/logger"
)

// ChangeHandler callback function เมื่อได้รับ change message
type ChangeHandler func(msg *ChangeMessage)

// Subscriber NATS Pub/Sub subscriber สำหรับ change messages ของทุก user
type Subscriber struct {
	client     *Client
	sub        *nats.Subscription
	handlers   []ChangeHandler
	handlersMu sync.RWMutex
	running    bool
	runningMu  sync.Mutex
}

// NewSubscriber สร้าง NATS Subscriber ใหม่
func NewSubscriber(client *Client) *Subscriber {
	return &Subscriber{client: client}
}

// OnChange ลงทะเบียน handler
func (s *Subscriber) OnChange(handler ChangeHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Start เริ่ม subscribe <prefix>.>
func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return nil
	}

	subject := s.client.subjectPrefix + ".>"
	sub, err := s.client.conn.Subscribe(subject, s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", subject)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var change ChangeMessage
	if err := json.Unmarshal(msg.Data, &change); err != nil {
		logger.Error("Failed to parse change message", "subject", msg.Subject, "error", err)
		return
	}

	s.handlersMu.RLock()
	handlers := s.handlers
	s.handlersMu.RUnlock()

	// sync เพื่อรักษาลำดับ message
	for _, handler := range handlers {
		func(h ChangeHandler, m ChangeMessage) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Change handler panicked", "error", r)
				}
			}()
			h(&m)
		}(handler, change)
	}

	logger.Debug("Change message received from NATS",
		"type", change.Type,
		"user_id", change.UserID,
		"handlers_count", len(handlers),
	)
}

// Stop หยุด subscriber
func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
			return err
		}
	}

	logger.Info("NATS subscriber stopped")
	return nil
}

// IsRunning ตรวจสอบว่า subscriber กำลังทำงานอยู่หรือไม่
func (s *Subscriber) IsRunning() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}
