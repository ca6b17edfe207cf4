package ws

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notify delivers a typed event to clients subscribed to eventType.
func (h *Hub) Notify(eventType string, payload any) {
	if h == nil || eventType == "" {
		return
	}
	b, err := json.Marshal(Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Printf("[WS] event encode error type=%s err=%v", eventType, err)
		return
	}
	h.publish(eventType, b)
}
