// Package spectate streams engine frames to websocket clients and accepts
// named direction requests over HTTP and websocket.
package spectate

import (
	"context"
	"encoding/json"
	"sync"

	"snake/internal/engine"
	"snake/internal/logging"
)

// Hub fans frames out to connected clients and forwards steering requests
// to the game loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu     sync.RWMutex
	latest []byte

	steer chan<- engine.Direction
	log   *logging.Logger
}

// NewHub returns a hub that sends steering requests on steer. The game loop
// should read steer as its input channel.
func NewHub(steer chan<- engine.Direction, log *logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		steer:      steer,
		log:        log,
	}
}

// Run handles registration and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.log.Info("spectator hub shutting down")
			return

		case client := <-h.register:
			h.clients[client] = true
			if latest := h.Latest(); latest != nil {
				client.send <- latest
			}
			h.log.Info("spectator connected (%d watching)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("spectator disconnected (%d watching)", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.log.Warn("dropped slow spectator")
				}
			}
		}
	}
}

// Draw publishes a frame. It never blocks the game loop: when the broadcast
// queue is full the frame is only kept as the latest.
func (h *Hub) Draw(f engine.Frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		h.log.Error("failed to encode frame: %v", err)
		return
	}

	h.mu.Lock()
	h.latest = payload
	h.mu.Unlock()

	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("broadcast queue full, frame for round %d skipped", f.Round)
	}
}

// Latest returns the most recently drawn frame as JSON, or nil.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Steer forwards d to the game loop. It gives up when ctx ends or the hub
// has stopped.
func (h *Hub) Steer(ctx context.Context, d engine.Direction) error {
	select {
	case h.steer <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return errHubStopped
	}
}
