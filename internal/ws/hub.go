package ws

import (
	"context"
	"log"
	"sync"
)

type outbound struct {
	eventType string
	payload   []byte
}

// Hub fans events out to subscribed clients. A client whose buffer is full
// is dropped rather than allowed to stall the others.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				h.removeLocked(c)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Printf("[WS] connected total_clients=%d topics=%s", total, client.topicList())

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeLocked(client)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Printf("[WS] disconnected total_clients=%d", total)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg outbound) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent, dropped := 0, 0
	for c := range h.clients {
		if !c.wants(msg.eventType) {
			continue
		}
		select {
		case c.send <- msg.payload:
			sent++
		default:
			h.removeLocked(c)
			dropped++
		}
	}
	h.logger.Printf("[WS] broadcast type=%s sent=%d dropped=%d", msg.eventType, sent, dropped)
}

// removeLocked must be called with h.mutex held.
func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast sends a raw message to every client regardless of topics.
func (h *Hub) Broadcast(message []byte) {
	h.publish("", message)
}

func (h *Hub) publish(eventType string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- outbound{eventType: eventType, payload: payload}:
	default:
		h.logger.Printf("[WS] broadcast dropped type=%s reason=buffer_full", eventType)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
