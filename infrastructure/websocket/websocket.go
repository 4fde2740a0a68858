package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"tasklist-api/pkg/logger"
)

const (
	// sendBufferSize จำนวน message ที่ค้างได้ต่อ connection ก่อนถูกตัดทิ้ง
	sendBufferSize = 16
	writeWait      = 10 * time.Second
)

// Conn คือส่วนของ *websocket.Conn ที่ manager ใช้
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// WebSocketManager เก็บ connection ของแต่ละ user (1 user เปิดได้หลาย tab)
// แต่ละ connection มี writer goroutine ของตัวเอง การ broadcast จึงไม่รอ socket ใด
type WebSocketManager struct {
	clients         map[Conn]*client
	userConnections map[string]map[Conn]*client
	mutex           sync.RWMutex
}

type client struct {
	conn   Conn
	userID string
	send   chan Message
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

var Manager = NewManager()

func NewManager() *WebSocketManager {
	return &WebSocketManager{
		clients:         make(map[Conn]*client),
		userConnections: make(map[string]map[Conn]*client),
	}
}

func (m *WebSocketManager) RegisterClient(conn Conn, userID string) {
	c := &client{conn: conn, userID: userID, send: make(chan Message, sendBufferSize)}

	m.mutex.Lock()
	m.clients[conn] = c
	if m.userConnections[userID] == nil {
		m.userConnections[userID] = make(map[Conn]*client)
	}
	m.userConnections[userID][conn] = c
	count := len(m.userConnections[userID])
	m.mutex.Unlock()

	go m.writePump(c)

	logger.Info("WebSocket client connected", "user_id", userID, "user_connections", count, "total_connections", m.GetTotalClients())
}

func (m *WebSocketManager) UnregisterClient(conn Conn) {
	m.remove(conn)
}

// writePump เป็น writer คนเดียวของ connection
func (m *WebSocketManager) writePump(c *client) {
	for message := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logger.Debug("Failed to set websocket write deadline", "user_id", c.userID, "error", err)
		}
		if err := c.conn.WriteJSON(message); err != nil {
			logger.Warn("WebSocket send failed, dropping connection", "user_id", c.userID, "type", message.Type, "error", err)
			m.remove(c.conn)
			return
		}
	}
}

// remove ปิด send channel ภายใต้ write lock ส่วน enqueue ทำภายใต้ read lock จึงไม่มีการส่งเข้า channel ที่ปิดแล้ว
func (m *WebSocketManager) remove(conn Conn) {
	m.mutex.Lock()
	c, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
		if conns := m.userConnections[c.userID]; conns != nil {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(m.userConnections, c.userID)
			}
		}
		close(c.send)
	}
	m.mutex.Unlock()

	if ok {
		// ปิด conn ด้วย เพื่อปลด WriteJSON ที่ค้างอยู่
		conn.Close()
		logger.Info("WebSocket client disconnected", "user_id", c.userID, "user_connections", m.GetUserClients(c.userID))
	}
}

// enqueue ไม่ block ถ้า buffer เต็มคืน false
func enqueue(c *client, message Message) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// BroadcastToUser ส่งให้ทุก tab ของ user โดยไม่ block client ที่ค้างจะถูกตัดทิ้ง
func (m *WebSocketManager) BroadcastToUser(userID string, messageType string, data interface{}) {
	message := Message{Type: messageType, Data: data}

	var slow []Conn
	m.mutex.RLock()
	for conn, c := range m.userConnections[userID] {
		if !enqueue(c, message) {
			slow = append(slow, conn)
		}
	}
	m.mutex.RUnlock()

	for _, conn := range slow {
		logger.Warn("WebSocket send buffer full, dropping connection", "user_id", userID, "type", messageType)
		m.remove(conn)
	}
}

func (m *WebSocketManager) GetUserClients(userID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.userConnections[userID])
}

func (m *WebSocketManager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// HandleMessage ตอบ message จาก client (ตอนนี้มีแค่ ping) ผ่าน writer ของ connection นั้น
func (m *WebSocketManager) HandleMessage(conn Conn, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Debug("Ignoring malformed websocket message", "error", err)
		return
	}

	switch message.Type {
	case "ping":
		m.mutex.RLock()
		c, ok := m.clients[conn]
		queued := ok && enqueue(c, Message{Type: "pong"})
		m.mutex.RUnlock()

		if !queued {
			logger.Debug("Dropped pong", "registered", ok)
		}
	default:
		logger.Debug("Unknown websocket message type", "type", message.Type)
	}
}
