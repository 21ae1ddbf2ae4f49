// Package live streams simulation frames to websocket viewers.
package live

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Hub tracks connected viewers and fans simulation frames out to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
	}
}

// Run processes register/unregister events.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the encoded frame on every connected client. Clients too
// slow to drain their send buffer skip frames instead of blocking the
// simulation loop.
func (h *Hub) Broadcast(frame Frame) error {
	data, err := msgpack.Marshal(frame)
	if err != nil {
		return errors.Wrap(err, "encoding frame")
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
		}
	}
	return nil
}

var upgrader = websocket.Upgrader{
	// The stream is broadcast-only, no state can be changed through it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades the connection and starts the client pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Msgf("websocket upgrade: %v", err)
		return
	}
	client := NewClient(h, conn)
	h.register <- client
	go client.WritePump()
	go client.ReadPump()
}
