package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
	"github.com/cleberrangel/meeting-cost-api/internal/service"
)

// Hub maintains the set of active recompute sessions and pushes report and
// metrics frames to them.
type Hub struct {
	// Registered clients by session ID
	clients map[string]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Report recomputation on inbound frames
	reports *service.ReportService

	// Mutex for thread-safe operations
	mutex sync.RWMutex

	// Logger
	logger *zerolog.Logger
}

// Client is a middleman between the websocket connection and the hub. Each
// client holds the meetings of its live session so that settings-only frames
// can recompute without resending the batch.
type Client struct {
	// The websocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	Send chan []byte

	// Session identification
	SessionID string

	// Hub reference
	Hub *Hub

	// Session state: last batch of meetings pushed by this client
	stateMu  sync.Mutex
	meetings []model.Meeting

	// Guarda do canal de saída: o close acontece exatamente uma vez e
	// nenhum envio ocorre depois dele
	closeMu sync.Mutex
	closed  bool

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time
}

// Message represents a generic WebSocket message
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// ComputePayload is the inbound frame carrying a batch of meetings and the
// settings to apply to them.
type ComputePayload struct {
	Meetings []model.Meeting `json:"meetings"`
	Settings *model.Settings `json:"settings,omitempty"`
}

// SettingsPayload is the inbound frame carrying only new settings; the hub
// recomputes over the meetings of the last compute frame.
type SettingsPayload struct {
	Settings *model.Settings `json:"settings"`
}

// outbound is the envelope for frames pushed to the client.
type outbound struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Compute frames carry whole
	// meeting batches, so the limit is generous.
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin for now
		// In production, you should validate the origin
		return true
	},
}

// NewHub creates a new WebSocket hub
func NewHub(reports *service.ReportService) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		reports:    reports,
		logger:     logger.Global(),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient registers a new client
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.clients[client.SessionID] == nil {
		h.clients[client.SessionID] = make(map[*Client]bool)
	}
	h.clients[client.SessionID][client] = true

	metrics.Get().IncrementWSConnection()

	h.logger.Info().
		Str("session_id", client.SessionID).
		Int("session_connections", len(h.clients[client.SessionID])).
		Msg("WebSocket client registered")

	client.sendFrame(outbound{
		Type:      "connection",
		Data:      map[string]string{"status": "connected", "session_id": client.SessionID},
		Timestamp: time.Now(),
	})
}

// unregisterClient unregisters a client
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.clients[client.SessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			client.closeSend()

			metrics.Get().DecrementWSConnection()

			if len(clients) == 0 {
				delete(h.clients, client.SessionID)
			}

			h.logger.Info().
				Str("session_id", client.SessionID).
				Int("remaining_connections", len(clients)).
				Msg("WebSocket client unregistered")
		}
	}
}

// BroadcastMetrics pushes the current metrics snapshot to every connected
// client. Driven by a ticker in main. Takes the write lock because slow
// clients are removed from the registry inline.
func (h *Hub) BroadcastMetrics() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if len(h.clients) == 0 {
		return
	}

	frame := outbound{
		Type:      "metrics",
		Data:      metrics.Get().Snapshot(),
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal metrics frame")
		return
	}

	for sessionID, clients := range h.clients {
		for client := range clients {
			if client.trySend(data) {
				metrics.Get().IncrementWSMessageOut()
				continue
			}

			h.logger.Warn().
				Str("session_id", sessionID).
				Msg("Failed to send message to client, closing connection")
			client.closeSend()
			delete(clients, client)
			metrics.Get().DecrementWSConnection()
			if len(clients) == 0 {
				delete(h.clients, sessionID)
			}
		}
	}
}

// GetConnectionCount returns the total number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}

// GetSessionConnectionCount returns the number of connections for a session
func (h *Hub) GetSessionConnectionCount(sessionID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if clients, exists := h.clients[sessionID]; exists {
		return len(clients)
	}
	return 0
}

// RegisterClient is a public method to register a client (for testing)
func (h *Hub) RegisterClient(client *Client) {
	h.registerClient(client)
}

// UnregisterClient is a public method to unregister a client (for testing)
func (h *Hub) UnregisterClient(client *Client) {
	h.unregisterClient(client)
}
