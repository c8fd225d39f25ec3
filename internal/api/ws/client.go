package ws

import (
	"encoding/json"
	"errors"
	"time"

	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/service"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBufSize    = 256
	processBufSize = 100
)

// locationIngest gates and persists location reports before they may be
// broadcast. Satisfied by *service.LocationService.
type locationIngest interface {
	SubmitReport(report *request.LocationReport) (*models.LocationLog, error)
}

// Client represents one live subscriber connection.
type Client struct {
	ID         string
	EmployeeID uint
	Name       string

	hub    *Hub
	conn   *websocket.Conn
	ingest locationIngest

	// Send is the per-connection FIFO the hub enqueues events into
	Send chan Event

	// processQueue serializes this client's location submissions so its
	// reports are persisted and broadcast in the order they were sent
	processQueue chan request.LocationReport

	logger zerolog.Logger
}

// inboundMessage is a command from a field client.
type inboundMessage struct {
	Action string          `json:"action"` // "submitLocation" | "sendMessage"
	Data   json.RawMessage `json:"data"`
}

func NewClient(id string, employeeID uint, name string, hub *Hub, conn *websocket.Conn, ingest locationIngest, logger zerolog.Logger) *Client {
	client := &Client{
		ID:           id,
		EmployeeID:   employeeID,
		Name:         name,
		hub:          hub,
		conn:         conn,
		ingest:       ingest,
		Send:         make(chan Event, sendBufSize),
		processQueue: make(chan request.LocationReport, processBufSize),
		logger:       logger,
	}

	go client.processWorker()

	return client
}

// ReadPump reads commands from the WebSocket connection until it fails or
// closes, then unregisters the client exactly once.
func (c *Client) ReadPump() {
	defer func() {
		close(c.processQueue)
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error().Err(err).Str("connId", c.ID).Msg("WebSocket read error")
			}
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			c.logger.Warn().Err(err).Str("connId", c.ID).Msg("Failed to unmarshal inbound message")
			continue
		}

		switch msg.Action {
		case "submitLocation":
			var report request.LocationReport
			if err := json.Unmarshal(msg.Data, &report); err != nil {
				c.logger.Warn().Err(err).Str("connId", c.ID).Msg("Malformed location report")
				continue
			}

			// Queue for sequential processing; persists and broadcasts
			// in submission order without blocking the read loop
			select {
			case c.processQueue <- report:
			default:
				c.logger.Warn().
					Str("connId", c.ID).
					Msg("Process queue full, dropping location report")
			}

		case "sendMessage":
			var chat ChatPayload
			if err := json.Unmarshal(msg.Data, &chat); err != nil {
				c.logger.Warn().Err(err).Str("connId", c.ID).Msg("Malformed chat message")
				continue
			}
			if chat.User == "" {
				chat.User = c.Name
			}
			// Fast path: no persistence, broadcast immediately
			c.hub.Publish(NewChatEvent(chat.User, chat.Message))

		default:
			c.logger.Warn().Str("action", msg.Action).Str("connId", c.ID).Msg("Unknown action")
		}
	}
}

// WritePump writes hub events to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				c.logger.Error().Err(err).Str("event", string(event.Name)).Msg("Failed to marshal event")
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

// processWorker drains this client's location submissions sequentially.
// A rejected or failed report is logged and skipped; it never reaches the
// broadcast channel and never terminates the connection.
func (c *Client) processWorker() {
	for report := range c.processQueue {
		entry, err := c.ingest.SubmitReport(&report)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidReport) {
				c.logger.Error().
					Err(err).
					Str("connId", c.ID).
					Msg("Failed to process location report")
			}
			continue
		}

		// Persistence completed; now fan out the stored entry
		c.hub.Publish(NewLocationUpdateEvent(entry))
	}
}
