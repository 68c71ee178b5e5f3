// internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type Client struct {
	ID     string
	UserID string
	Conn   *WebSocketConn
	Send   chan []byte
}

// Hub fans order events out to connected management panels.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.Named("hub"),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastJSON queues v for every connected client; it never blocks the caller.
func (h *Hub) BroadcastJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal broadcast payload", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- b:
	default:
		h.log.Warn("broadcast queue full, event dropped")
	}
}

func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			return nil

		case client := <-h.register:
			h.clients[client.ID] = client
			h.log.Debug("client registered", zap.String("client", client.ID), zap.String("user", client.UserID))

		case client := <-h.unregister:
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				h.log.Debug("client unregistered", zap.String("client", client.ID))
			}

		case message := <-h.broadcast:
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// slow client, drop it
					close(client.Send)
					delete(h.clients, id)
				}
			}
		}
	}
}
