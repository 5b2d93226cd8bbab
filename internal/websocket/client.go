package websocket

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// ServeWS handles websocket requests from the peer. Each connection gets its
// own recompute session.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := &Client{
		conn:        conn,
		Send:        make(chan []byte, 256),
		SessionID:   uuid.NewString(),
		Hub:         h,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub
//
// The application runs readPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.LastPing = time.Now()
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Error().
					Err(err).
					Str("session_id", c.SessionID).
					Msg("WebSocket connection closed unexpectedly")
			}
			break
		}

		metrics.Get().IncrementWSMessageIn()
		c.handleMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain queued frames into the same websocket message
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
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

// handleMessage processes incoming messages from the client
func (c *Client) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.Hub.logger.Error().
			Err(err).
			Str("session_id", c.SessionID).
			Msg("Failed to unmarshal client message")
		c.sendError("invalid message frame")
		return
	}

	switch msg.Type {
	case "ping":
		c.sendFrame(outbound{
			Type:      "pong",
			Timestamp: time.Now(),
		})

	case "compute":
		var payload ComputePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError("invalid compute payload")
			return
		}
		c.stateMu.Lock()
		c.meetings = payload.Meetings
		c.stateMu.Unlock()
		c.recompute(payload.Settings)

	case "settings":
		var payload SettingsPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError("invalid settings payload")
			return
		}
		c.recompute(payload.Settings)

	default:
		c.Hub.logger.Debug().
			Str("session_id", c.SessionID).
			Str("message_type", msg.Type).
			Msg("Unknown message type received from client")
		c.sendError("unknown message type: " + msg.Type)
	}
}

// recompute runs the engine over the session's meetings with the given
// settings and pushes the resulting report frame.
func (c *Client) recompute(settings *model.Settings) {
	c.stateMu.Lock()
	meetings := c.meetings
	c.stateMu.Unlock()

	report := c.Hub.reports.Recompute(meetings, settings)

	c.sendFrame(outbound{
		Type:      "report",
		Data:      report,
		Timestamp: time.Now(),
	})
}

func (c *Client) sendError(msg string) {
	c.sendFrame(outbound{
		Type:      "error",
		Error:     msg,
		Timestamp: time.Now(),
	})
}

// sendFrame sends a frame to this specific client
func (c *Client) sendFrame(frame outbound) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.Hub.logger.Error().
			Err(err).
			Str("session_id", c.SessionID).
			Msg("Failed to marshal frame for client")
		return
	}

	if c.trySend(data) {
		metrics.Get().IncrementWSMessageOut()
		return
	}

	c.Hub.logger.Warn().
		Str("session_id", c.SessionID).
		Msg("Client send channel is full, closing connection")
	c.closeSend()
}

// trySend enfileira um frame sem bloquear. Retorna false quando o canal já
// foi fechado ou o buffer está cheio.
func (c *Client) trySend(data []byte) bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// closeSend fecha o canal de saída exatamente uma vez, independente de quem
// chega primeiro (hub ou overflow do próprio cliente).
func (c *Client) closeSend() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// IsConnected returns true if the client connection is still active
func (c *Client) IsConnected() bool {
	return c.conn != nil
}

// GetConnectionInfo returns information about this client connection
func (c *Client) GetConnectionInfo() map[string]interface{} {
	return map[string]interface{}{
		"session_id":   c.SessionID,
		"connected_at": c.ConnectedAt,
		"last_ping":    c.LastPing,
	}
}
