package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"tasklist-api/pkg/logger"
)

// Client wraps a core NATS connection (no JetStream, change events are fire-and-forget)
type Client struct {
	conn          *nats.Conn
	subjectPrefix string
}

// ClientConfig configuration สำหรับ NATS Client
type ClientConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string
	Name          string
}

// NewClient เชื่อมต่อ NATS
func NewClient(cfg ClientConfig) (*Client, error) {
	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "subject_prefix", prefix)
	return &Client{conn: nc, subjectPrefix: prefix}, nil
}

// Close ปิด NATS connection (drain ก่อนเพื่อส่ง message ที่ค้างให้หมด)
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return err
	}
	logger.Info("NATS connection closed")
	return nil
}

// Ping round-trip ไปที่ server ภายในเวลาของ ctx
func (c *Client) Ping(ctx context.Context) error {
	if c.conn == nil || !c.conn.IsConnected() {
		return errors.New("nats not connected")
	}
	return c.conn.FlushWithContext(ctx)
}
