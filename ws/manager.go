package ws

import (
	"sync"
	"time"

	"vfxhub_backend/internal/logger"
)

// Event is the envelope every live push is wrapped in.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	SentAt  time.Time   `json:"sent_at"`
}

// WebSocketManager tracks at most one live connection per user. A new
// connection for a user who already has one replaces it: the old
// connection is closed so the same filter is never served twice and a
// leaked subscription cannot double-deliver events.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *WebSocketManager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.UserID]; ok {
				close(old.send)
				old.conn.Close()
			}
			m.clients[client.UserID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			// Only drop the entry if it still points at this client;
			// a replaced connection must not evict its successor.
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.send)
				delete(m.clients, client.UserID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

// Publish implements the services event publisher. Delivery is best
// effort: no connection or a full send buffer drops the event and the
// client reconciles on its next fetch.
func (m *WebSocketManager) Publish(userID, event string, payload interface{}) {
	// The send happens under the read lock: Run only closes a send
	// channel while holding the write lock, so the channel cannot be
	// closed out from under the select.
	m.mu.RLock()
	client, ok := m.clients[userID]
	if !ok {
		m.mu.RUnlock()
		return
	}

	msg := Event{Event: event, Payload: payload, SentAt: time.Now()}
	select {
	case client.send <- msg:
		m.mu.RUnlock()
	default:
		m.mu.RUnlock()
		logger.Warn("ws send buffer full, dropping connection", "user_id", userID)
		go func() { m.unregister <- client }()
	}
}

// IsConnected reports whether a user currently holds a live connection.
func (m *WebSocketManager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

func (m *WebSocketManager) ConnectedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
