// Package events pushes pipeline activity to dashboard clients over
// WebSocket. Broadcasting is best effort: a slow client is dropped rather
// than allowed to stall the pipeline.
package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logger"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub maintains the set of subscribed clients and fans events out to them.
type Hub struct {
	cfg    config.WebSocketConfig
	logger *logger.Logger

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]bool

	broadcast chan Event
	done      chan struct{}
	closeOnce sync.Once
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// NewHub creates the event hub. Run must be called before publishing.
func NewHub(cfg config.WebSocketConfig, log *logger.Logger) *Hub {
	h := &Hub{
		cfg:       cfg,
		logger:    log,
		clients:   make(map[*client]bool),
		broadcast: make(chan Event, 256),
		done:      make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Run drains the broadcast channel until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.broadcast:
			h.fanOut(event)
		case <-h.done:
			return
		}
	}
}

// Publish enqueues an event for delivery. It never blocks; when the hub
// is saturated the event is dropped.
func (h *Hub) Publish(eventType Type, requestID string, data any) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Data:      data,
	}
	select {
	case h.broadcast <- event:
	default:
		if h.logger != nil {
			h.logger.Warn("Event dropped, broadcast queue full", zap.String("type", string(eventType)))
		}
	}
}

func (h *Hub) fanOut(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- event:
		default:
			// Slow consumer; drop it.
			delete(h.clients, c)
			close(c.send)
			if h.logger != nil {
				h.logger.Warn("Client send buffer full, disconnecting", zap.String("client_id", c.id))
			}
		}
	}
}

// ActiveClients reports the number of connected subscribers.
func (h *Hub) ActiveClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP lets the hub be mounted directly on a router.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.HandleWS(w, r)
}

// HandleWS upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		}
		return
	}

	buffer := h.cfg.SendBuffer
	if buffer <= 0 {
		buffer = 16
	}
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, buffer),
	}

	h.mu.Lock()
	h.clients[c] = true
	active := len(h.clients)
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Info("Dashboard client connected",
			zap.String("client_id", c.id),
			zap.Int("active_connections", active),
		)
	}
	h.Publish(TypeConnection, "", ConnectionEvent{Action: "connected", ClientID: c.id, Active: active})

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.dropClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Client messages are ignored; the stream is one way.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	writeWait := h.cfg.WriteTimeout
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) dropClient(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	active := len(h.clients)
	h.mu.Unlock()

	c.conn.Close()

	if ok {
		if h.logger != nil {
			h.logger.Info("Dashboard client disconnected",
				zap.String("client_id", c.id),
				zap.Int("active_connections", active),
			)
		}
		h.Publish(TypeConnection, "", ConnectionEvent{Action: "disconnected", ClientID: c.id, Active: active})
	}
}

// Close stops the hub and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
			c.conn.Close()
		}
	})
}
