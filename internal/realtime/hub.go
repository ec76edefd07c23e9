// Package realtime broadcasts project events over websockets. Clients
// subscribe to per-project rooms; task changes and membership events are
// fanned out to everyone in the room.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"taskboard/internal/domain/models"
)

// Event types pushed to subscribers.
const (
	EventTaskUpdated = "task-updated"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
)

// Envelope is the wire format for every outbound event.
type Envelope struct {
	Type      string      `json:"type"`
	ProjectID string      `json:"projectId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type subscription struct {
	client *Client
	room   string
}

type event struct {
	room string
	data []byte
}

// Hub owns all room state. A single goroutine (Run) serializes every
// mutation, so no locks are needed.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	join       chan subscription
	leave      chan subscription
	broadcast  chan event

	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
}

// NewHub creates a hub; call Run before registering clients.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan subscription),
		leave:      make(chan subscription),
		broadcast:  make(chan event, 64),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func roomName(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

// Run processes hub events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("websocket client connected", "user_id", client.userID)

		case client := <-h.unregister:
			if h.clients[client] {
				for room := range client.rooms {
					h.leaveRoom(client, room)
				}
				h.drop(client)
			}

		case sub := <-h.join:
			h.joinRoom(sub.client, sub.room)

		case sub := <-h.leave:
			h.leaveRoom(sub.client, sub.room)

		case ev := <-h.broadcast:
			h.sendToRoom(ev.room, ev.data, nil)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) joinRoom(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	if h.rooms[room][client] {
		return
	}
	h.rooms[room][client] = true
	client.rooms[room] = true

	data, err := json.Marshal(Envelope{
		Type: EventUserJoined,
		Data: map[string]string{"username": client.username},
	})
	if err != nil {
		return
	}
	h.sendToRoom(room, data, client)
}

func (h *Hub) leaveRoom(client *Client, room string) {
	members := h.rooms[room]
	if members == nil || !members[client] {
		return
	}
	delete(members, client)
	delete(client.rooms, room)
	if len(members) == 0 {
		delete(h.rooms, room)
	}

	data, err := json.Marshal(Envelope{
		Type: EventUserLeft,
		Data: map[string]string{"username": client.username},
	})
	if err != nil {
		return
	}
	h.sendToRoom(room, data, client)
}

// sendToRoom fans data out to every room member except skip. Clients
// that cannot keep up are dropped rather than blocking the hub.
func (h *Hub) sendToRoom(room string, data []byte, skip *Client) {
	for client := range h.rooms[room] {
		if client == skip {
			continue
		}
		select {
		case client.send <- data:
		default:
			for r := range client.rooms {
				delete(h.rooms[r], client)
			}
			h.drop(client)
		}
	}
}

// BroadcastTaskEvent pushes a task change to the project's room. Safe to
// call from any goroutine; drops the event if the hub's queue is full.
func (h *Hub) BroadcastTaskEvent(projectID, action string, task *models.Task) {
	h.publishTaskEvent(projectID, map[string]interface{}{
		"action": action,
		"task":   task,
	})
}

// publishTaskEvent fans a task event out to the project's room. Used for
// both server-side changes and client-originated relays.
func (h *Hub) publishTaskEvent(projectID string, payload interface{}) {
	data, err := json.Marshal(Envelope{
		Type:      EventTaskUpdated,
		ProjectID: projectID,
		Data:      payload,
	})
	if err != nil {
		h.logger.Error("failed to marshal task event", "error", err)
		return
	}

	select {
	case h.broadcast <- event{room: roomName(projectID), data: data}:
	default:
		h.logger.Warn("event queue full, dropping task event", "project_id", projectID)
	}
}
