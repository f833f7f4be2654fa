package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeDeadline = 5 * time.Second

// Hub fans session events out to the WebSocket subscribers of each session
// (a trainee's quiz screen, possibly a supervisor's monitor).
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]map[uuid.UUID]*Connection // session_id -> conn_id -> conn
	logger   zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]map[uuid.UUID]*Connection),
		logger:   logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Connection wraps a websocket connection with a write lock.
type Connection struct {
	id   uuid.UUID
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewConnection wraps an upgraded websocket connection.
func NewConnection(conn *websocket.Conn) *Connection {
	return &Connection{id: uuid.New(), conn: conn}
}

func (c *Connection) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close shuts the underlying connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// Subscribe registers a connection for a session's events.
func (h *Hub) Subscribe(sessionID uuid.UUID, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.sessions[sessionID]
	if subs == nil {
		subs = make(map[uuid.UUID]*Connection)
		h.sessions[sessionID] = subs
	}
	subs[conn.id] = conn
	h.logger.Info().Str("session_id", sessionID.String()).Int("subscribers", len(subs)).Msg("subscriber joined")
}

// Unsubscribe removes and closes a connection.
func (h *Hub) Unsubscribe(sessionID uuid.UUID, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.sessions[sessionID]; ok {
		if _, exists := subs[conn.id]; exists {
			delete(subs, conn.id)
			_ = conn.Close()
		}
		if len(subs) == 0 {
			delete(h.sessions, sessionID)
		}
	}
}

// Broadcast sends an event to every subscriber of a session. Dead
// connections are dropped on write failure.
func (h *Hub) Broadcast(sessionID uuid.UUID, event Envelope) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn().Err(err).Str("type", event.Type).Msg("event marshal failed")
		return
	}

	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.sessions[sessionID]))
	for _, conn := range h.sessions[sessionID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.write(data); err != nil {
			h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("dropping dead subscriber")
			h.Unsubscribe(sessionID, conn)
		}
	}
}

// CloseSession drops every subscriber of a session.
func (h *Hub) CloseSession(sessionID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.sessions[sessionID] {
		_ = conn.Close()
	}
	delete(h.sessions, sessionID)
}
