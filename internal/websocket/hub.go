// Live dashboard updates: readings and alerts are broadcast to every
// connected client as they happen.
package websocket

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Hub maintains the set of active clients and broadcasts messages.
// The clients map is owned by the Run goroutine; all access goes
// through the channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client is blocked or gone; drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Stop terminates the Run loop and disconnects every client.
func (h *Hub) Stop() {
	close(h.quit)
}

// BroadcastReading pushes a new sensor reading to all dashboards.
func (h *Hub) BroadcastReading(sessionID string, reading interface{}) {
	h.send("reading", map[string]interface{}{"session_id": sessionID, "reading": reading})
}

// BroadcastAlert pushes an alert notification to all dashboards.
func (h *Hub) BroadcastAlert(sessionID, title, body string) {
	h.send("alert", map[string]interface{}{"session_id": sessionID, "title": title, "body": body})
}

func (h *Hub) send(kind string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{"type": kind, "payload": payload})
	if err != nil {
		h.log.Error("Failed to marshal broadcast message", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("Broadcast channel full, dropping message", zap.String("type", kind))
	}
}
