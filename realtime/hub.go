package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks every live observer connection and, per match id, the set of
// connections that joined that match's room. Membership is ephemeral: it
// exists only while the connection is alive and is rebuilt by clients
// re-joining after a reconnect.
type Hub struct {
	clients map[*Client]bool
	rooms   map[int]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[int]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run serializes connection registration and teardown. Broadcasts and room
// joins lock the maps directly; only lifecycle changes flow through here.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("client %s connected, total clients: %d", client.ID, h.ClientCount())

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.removeFromRoomsLocked(client)
				client.closeSend()
			}
			h.mu.Unlock()
			log.Printf("client %s disconnected, total clients: %d", client.ID, h.ClientCount())
		}
	}
}

// JoinRoom adds the client to the room for matchID. Joining a room the
// client is already in is a no-op, so duplicate join-match messages never
// cause duplicate delivery.
func (h *Hub) JoinRoom(client *Client, matchID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[matchID]; !ok {
		h.rooms[matchID] = make(map[*Client]bool)
	}
	if h.rooms[matchID][client] {
		return
	}
	h.rooms[matchID][client] = true
	client.rooms[matchID] = true
	log.Printf("client %s joined match %d, room size: %d", client.ID, matchID, len(h.rooms[matchID]))
}

// LeaveRoom removes the client from the room for matchID. Safe to call for
// a room the client never joined.
func (h *Hub) LeaveRoom(client *Client, matchID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	delete(room, client)
	delete(client.rooms, matchID)
	if len(room) == 0 {
		delete(h.rooms, matchID)
	}
}

func (h *Hub) removeFromRoomsLocked(client *Client) {
	for matchID := range client.rooms {
		if room, ok := h.rooms[matchID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, matchID)
			}
		}
	}
	client.rooms = make(map[int]bool)
}

// BroadcastToRoom delivers the event to every current member of the match
// room. Delivery is best-effort: a member whose send buffer is full is
// skipped and logged, the rest still receive the event.
func (h *Hub) BroadcastToRoom(matchID int, event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshalling %s event for match %d: %v", event.Type, matchID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	for client := range room {
		if !client.enqueue(messageBytes) {
			log.Printf("client %s send buffer full, dropping %s for match %d", client.ID, event.Type, matchID)
		}
	}
}

// BroadcastAll delivers the event to every connected client regardless of
// room membership. Used for generic change notifications.
func (h *Hub) BroadcastAll(event Event) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshalling %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.enqueue(messageBytes) {
			log.Printf("client %s send buffer full, dropping %s", client.ID, event.Type)
		}
	}
}

// RoomSize returns the number of current members of the match room.
func (h *Hub) RoomSize(matchID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
