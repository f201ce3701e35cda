package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"devlink/backend/internal/models"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a single stream connection. The SSE handler drains it.
type Client chan []byte

// Hub fans notifications out to the open streams of their recipient.
type Hub struct {
	users map[uint]map[Client]bool
	mu    sync.RWMutex
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		users: make(map[uint]map[Client]bool),
		log:   log,
	}
}

// Subscribe registers a stream for userID.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]bool)
	}
	h.users[userID][client] = true
}

// Unsubscribe removes the stream and closes it.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.users, userID)
			}
		}
	}
}

// Publish sends a notification event to every stream of its recipient.
func (h *Hub) Publish(n models.Notification) {
	h.Broadcast(n.RecipientID, Event{Type: "notification", Payload: n})
}

// Broadcast sends an event to all streams of userID. Slow streams drop the event.
func (h *Hub) Broadcast(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.users[userID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		h.log.Error("Cannot encode hub event", slog.String("type", event.Type), slog.Any("error", err))
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
			h.log.Warn("Dropping event for slow stream", slog.Uint64("user_id", uint64(userID)))
		}
	}
}
