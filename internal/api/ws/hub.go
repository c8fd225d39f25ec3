package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub is the connection registry and broadcast channel in one: it owns the set
// of live connections and fans every published event out to all of them.
// One Hub instance is created at process start and shared by every handler.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register adds a connection to the live set and announces it on the presence
// channel. The new connection receives its own UserConnected event.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("connId", client.ID).
		Uint("employeeId", client.EmployeeID).
		Int("totalClients", total).
		Msg("Client registered")

	h.Publish(NewUserConnectedEvent(client.ID))
}

// Unregister removes a connection and announces the departure. It is
// idempotent: unregistering an unknown or already-removed connection is a
// no-op and emits nothing.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current, exists := h.clients[client.ID]
	if !exists || current != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("connId", client.ID).
		Int("totalClients", total).
		Msg("Client unregistered")

	h.Publish(NewUserDisconnectedEvent(client.ID))
}

// Publish fans an event out to every registered connection. Delivery is
// fire-and-forget: each client gets exactly one enqueue attempt, and a client
// whose send buffer is full is skipped with a warning rather than stalling
// the rest. Two Publish calls from the same goroutine reach every client's
// buffer in call order.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- event:
		default:
			h.logger.Warn().
				Str("connId", client.ID).
				Str("event", string(event.Name)).
				Msg("Client send buffer full, event dropped")
		}
	}
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ConnectionIDs returns the ids of all live connections
func (h *Hub) ConnectionIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}
