package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/hydroapp/hydro/internal/app"
)

// envelope is the single frame type pushed to clients: a full state
// snapshot. Clients replace, never patch, so a dropped frame is healed
// by the next one.
type envelope struct {
	Type  string    `json:"type"`
	State app.State `json:"state"`
}

// Hub maintains the set of active WebSocket clients and pushes every new
// state snapshot to all of them. A freshly connected client immediately
// receives the latest snapshot.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  []byte
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client and hands it the latest snapshot, if any.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		select {
		case c.send <- latest:
		default:
		}
	}
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// BroadcastState pushes a state snapshot to all connected clients.
func (h *Hub) BroadcastState(state app.State) {
	data, err := json.Marshal(envelope{Type: "state", State: state})
	if err != nil {
		h.logger.Error("marshal state broadcast", "error", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop; the next snapshot supersedes it
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
