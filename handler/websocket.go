package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"lingolink/middleware"
	"lingolink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one WebSocket connection of a user.
type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	hub    *Hub

	mu     sync.Mutex
	closed bool
}

// Hub tracks online users across their devices and pushes notification
// payloads to them. Absence of a connection is never an error.
type Hub struct {
	clients map[uuid.UUID]map[uuid.UUID]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[uuid.UUID]*Client),
	}
}

// Register adds a client to the online set.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.clients[client.UserID][client.ID] = client
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[client.UserID]; ok {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	h.mu.Unlock()

	client.mu.Lock()
	if !client.closed {
		client.closed = true
		close(client.Send)
	}
	client.mu.Unlock()
}

// IsUserOnline reports whether the user has at least one live connection.
func (h *Hub) IsUserOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// SendNotification pushes a notification payload to every device of the
// user. Returns false when the user is offline.
func (h *Hub) SendNotification(userID uuid.UUID, notification interface{}) bool {
	payload, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	if err != nil {
		log.Printf("[ERROR] failed to encode notification: %v", err)
		return false
	}

	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[userID]))
	for _, c := range h.clients[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	delivered := false
	for _, client := range conns {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.Send <- payload:
				delivered = true
			default:
				// slow consumer, drop the push
			}
		}
		client.mu.Unlock()
	}
	return delivered
}

// HandleWebSocket upgrades the connection after validating the token
// query parameter and starts the client's read/write pumps.
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.Unauthorized(c, "missing token")
			return
		}

		userID, err := middleware.ValidateToken(token)
		if err != nil {
			utils.Unauthorized(c, "invalid token")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ERROR] websocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 16),
			hub:    hub,
		}
		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(1024)
	for {
		// the client never sends payloads we act on; reads only detect close
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
