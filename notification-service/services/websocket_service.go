package services

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// ErrNotConnected is returned when a message targets a user without a live connection
var ErrNotConnected = errors.New("user not connected")

// WebSocketMessage is one frame pushed to a client
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Message   string      `json:"message,omitempty"`
	EntityID  *uuid.UUID  `json:"entity_id,omitempty"`
	Entity    string      `json:"entity,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type clientConnection struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan *WebSocketMessage
}

// WebSocketManager keeps one connection per user. Registration goes through
// the Run loop; each connection has its own writer goroutine.
type WebSocketManager struct {
	clients    map[uuid.UUID]*clientConnection
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *clientConnection
	unregister chan *clientConnection
	logger     *zap.Logger
}

// NewWebSocketManager accepts connections from allowedOrigins and from
// clients that send no Origin header.
func NewWebSocketManager(allowedOrigins []string, logger *zap.Logger) *WebSocketManager {
	wsm := &WebSocketManager{
		clients:    make(map[uuid.UUID]*clientConnection),
		register:   make(chan *clientConnection, 100),
		unregister: make(chan *clientConnection, 100),
		logger:     logger,
	}
	wsm.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			logger.Warn("websocket connection rejected", zap.String("origin", origin))
			return false
		},
	}
	return wsm
}

// Run handles registration until done is closed
func (wsm *WebSocketManager) Run(done <-chan struct{}) {
	for {
		select {
		case client := <-wsm.register:
			wsm.registerClient(client)
		case client := <-wsm.unregister:
			wsm.unregisterClient(client)
		case <-done:
			wsm.closeAll()
			return
		}
	}
}

func (wsm *WebSocketManager) registerClient(client *clientConnection) {
	wsm.mutex.Lock()
	if existing, exists := wsm.clients[client.userID]; exists {
		close(existing.send)
	}
	wsm.clients[client.userID] = client
	total := len(wsm.clients)
	wsm.mutex.Unlock()

	wsm.logger.Info("websocket client connected", zap.String("user_id", client.userID.String()), zap.Int("total", total))

	client.send <- &WebSocketMessage{
		Type:      "connection",
		Message:   "WebSocket connection established",
		Timestamp: time.Now().UTC(),
	}
}

func (wsm *WebSocketManager) unregisterClient(client *clientConnection) {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	// a reconnect may already have replaced this connection
	if current, exists := wsm.clients[client.userID]; exists && current == client {
		delete(wsm.clients, client.userID)
		close(client.send)
		wsm.logger.Info("websocket client disconnected", zap.String("user_id", client.userID.String()), zap.Int("total", len(wsm.clients)))
	}
}

func (wsm *WebSocketManager) closeAll() {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	for userID, client := range wsm.clients {
		close(client.send)
		delete(wsm.clients, userID)
	}
}

// SendToUser queues message for the user's connection
func (wsm *WebSocketManager) SendToUser(userID uuid.UUID, message *WebSocketMessage) error {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()

	client, exists := wsm.clients[userID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotConnected, userID)
	}

	select {
	case client.send <- message:
		return nil
	default:
		return fmt.Errorf("send queue full for user %s", userID)
	}
}

// HandleConnection upgrades the request and serves it until the client goes away
func (wsm *WebSocketManager) HandleConnection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	conn, err := wsm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	client := &clientConnection{
		userID: userID,
		conn:   conn,
		send:   make(chan *WebSocketMessage, sendBuffer),
	}
	wsm.register <- client

	go wsm.writePump(client)
	wsm.readPump(client)
	return nil
}

// readPump answers pings and detects closed connections
func (wsm *WebSocketManager) readPump(client *clientConnection) {
	defer func() {
		wsm.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message map[string]interface{}
		if err := client.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wsm.logger.Warn("websocket read failed", zap.String("user_id", client.userID.String()), zap.Error(err))
			}
			return
		}

		if msgType, ok := message["type"].(string); ok && msgType == "ping" {
			wsm.SendToUser(client.userID, &WebSocketMessage{
				Type:      "pong",
				Message:   "pong",
				Timestamp: time.Now().UTC(),
			})
		}
	}
}

// writePump is the only writer of client.conn
func (wsm *WebSocketManager) writePump(client *clientConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(message); err != nil {
				wsm.logger.Warn("websocket write failed", zap.String("user_id", client.userID.String()), zap.Error(err))
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetConnectedUsers returns the ids of connected users
func (wsm *WebSocketManager) GetConnectedUsers() []uuid.UUID {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()

	users := make([]uuid.UUID, 0, len(wsm.clients))
	for userID := range wsm.clients {
		users = append(users, userID)
	}
	return users
}

// GetConnectionCount returns number of active connections
func (wsm *WebSocketManager) GetConnectionCount() int {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()
	return len(wsm.clients)
}
