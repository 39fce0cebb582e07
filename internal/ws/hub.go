// Package ws implements the realtime conversation transport: JSON event
// frames over a WebSocket, with per-conversation rooms. A client joins a
// room, sends message events, and every room member (including the sender)
// receives the assistant's reply.
//
// The hub serializes room membership behind a mutex; message fan-out copies
// the member list under the lock and writes outside it, so a slow client
// never blocks the hub.
package ws

import "sync"

// Hub tracks which clients are subscribed to which conversation room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Join subscribes c to the room. A client may be in several rooms at once.
func (h *Hub) Join(room string, c *Client) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

// Leave removes c from every room it joined. Empty rooms are dropped.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast queues frame to every member of the room, including the sender.
// Clients whose send buffer is full are skipped; the write pump closes them
// eventually.
func (h *Hub) Broadcast(room string, frame Frame) {
	h.mu.Lock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.Unlock()

	for _, c := range members {
		c.enqueue(frame)
	}
}

// members returns the current size of a room. Test helper.
func (h *Hub) members(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
