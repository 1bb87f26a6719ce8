package ws

import (
	"sync"

	"github.com/y122132/pet-trainer-sub000/internal/logging"
)

// Hub tracks the connected clients and their room membership. Deliveries
// are fire-and-forget: a slow or dead connection never blocks a broadcast
// to the other combatant.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // user id -> client
	rooms   map[string]map[string]*Client // room id -> user id -> client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// Register adds a client, replacing any previous connection for the same
// user id (the old one is closed).
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.userID]
	h.clients[c.userID] = c
	h.mu.Unlock()
	if old != nil && old != c {
		old.Close()
	}
}

// Unregister removes a client and its room membership. A newer connection
// for the same user id is left in place.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	for _, members := range h.rooms {
		if members[c.userID] == c {
			delete(members, c.userID)
		}
	}
	h.mu.Unlock()
}

// JoinRoom adds the user's current connection to a room roster.
func (h *Hub) JoinRoom(roomID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[userID]
	if !ok {
		return
	}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][userID] = c
}

// DropRoom forgets a room's local roster (the persisted aggregate is
// deleted separately by the driver).
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	delete(h.rooms, roomID)
	h.mu.Unlock()
}

// SendToUser delivers one event to a single connection, if present.
func (h *Hub) SendToUser(userID, eventType string, payload interface{}) {
	h.mu.RLock()
	c := h.clients[userID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	c.trySend(Event{Type: eventType, Payload: payload})
}

// RoomBroadcast delivers one event to every connection in a room. A failed
// delivery to one member does not abort delivery to the others.
func (h *Hub) RoomBroadcast(roomID, eventType string, payload interface{}) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for _, c := range h.rooms[roomID] {
		members = append(members, c)
	}
	h.mu.RUnlock()
	for _, c := range members {
		c.trySend(Event{Type: eventType, Payload: payload})
	}
	if len(members) == 0 {
		logging.Info("broadcast to empty room", logging.Fields{"room_id": roomID, "event": eventType})
	}
}
