package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"sokoni/pkg/logger"
)

// Event is the envelope for every frame pushed to a client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage     = "new_message"
	EventNewChat        = "new_chat"
	EventChatListUpdate = "chat_list_update"
	EventNotification   = "notification"
	EventTyping         = "typing"
	EventError          = "error"
)

// ChatAuthorizer decides whether a user may subscribe to a chat room.
type ChatAuthorizer interface {
	CanAccessChat(ctx context.Context, userID, chatID string) (bool, error)
}

// Manager tracks one connection per user plus per-chat rooms. A client
// is in at most one room at a time; joining a room leaves the previous
// one, so closed conversations never receive frames.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	register   chan *Client
	unregister chan *Client
	authorizer ChatAuthorizer
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) SetAuthorizer(a ChatAuthorizer) {
	m.authorizer = a
}

func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case client := <-m.unregister:
			m.removeClient(client)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) Register(client *Client) {
	m.register <- client
}

func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// One live connection per user; a newer one replaces the old.
	if existing, ok := m.clients[client.UserID]; ok && existing != client {
		m.detachLocked(existing)
	}
	m.clients[client.UserID] = client
	logger.Info("WebSocket client connected: %s", client.UserID)
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.clients[client.UserID]; !ok || current != client {
		return
	}
	m.detachLocked(client)
	logger.Info("WebSocket client disconnected: %s", client.UserID)
}

func (m *Manager) detachLocked(client *Client) {
	if client.activeRoom != "" {
		m.leaveRoomLocked(client)
	}
	delete(m.clients, client.UserID)
	client.shutdown()
}

// JoinRoom subscribes the client to a chat room after authorization,
// tearing down its previous subscription first.
func (m *Manager) JoinRoom(ctx context.Context, client *Client, chatID string) error {
	if m.authorizer != nil {
		ok, err := m.authorizer.CanAccessChat(ctx, client.UserID, chatID)
		if err != nil {
			return err
		}
		if !ok {
			logger.Warn("User %s denied access to chat room %s", client.UserID, chatID)
			return nil
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if client.activeRoom == chatID {
		return nil
	}
	if client.activeRoom != "" {
		m.leaveRoomLocked(client)
	}

	if m.rooms[chatID] == nil {
		m.rooms[chatID] = make(map[string]*Client)
	}
	m.rooms[chatID][client.UserID] = client
	client.activeRoom = chatID
	logger.Debug("User %s joined chat room %s", client.UserID, chatID)
	return nil
}

func (m *Manager) LeaveRoom(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveRoomLocked(client)
}

func (m *Manager) leaveRoomLocked(client *Client) {
	if client.activeRoom == "" {
		return
	}
	if room, ok := m.rooms[client.activeRoom]; ok {
		delete(room, client.UserID)
		if len(room) == 0 {
			delete(m.rooms, client.activeRoom)
		}
	}
	client.activeRoom = ""
}

// SendToUser pushes an event to the user's connection, if any. Offline
// users are skipped; durable delivery is the notification store's job.
func (m *Manager) SendToUser(userID string, event Event) bool {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return m.deliver(client, event)
}

// BroadcastToRoom pushes an event to every room subscriber except
// excludeUserID.
func (m *Manager) BroadcastToRoom(chatID string, event Event, excludeUserID string) {
	m.mu.RLock()
	room := m.rooms[chatID]
	targets := make([]*Client, 0, len(room))
	for userID, client := range room {
		if userID == excludeUserID {
			continue
		}
		targets = append(targets, client)
	}
	m.mu.RUnlock()

	for _, client := range targets {
		m.deliver(client, event)
	}
}

// IsInRoom reports whether the user currently subscribes to the room.
func (m *Manager) IsInRoom(userID, chatID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[chatID][userID]
	return ok
}

func (m *Manager) deliver(client *Client, event Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal websocket event: %v", err)
		return false
	}

	// A sender may hold a reference to a client detached in the
	// meantime; its send channel stays open, so the worst case is a
	// frame nobody drains, never a panic.
	select {
	case <-client.done:
		return false
	default:
	}

	select {
	case client.send <- data:
		return true
	default:
		// Slow consumer; drop the connection rather than block.
		logger.Warn("Dropping slow websocket client: %s", client.UserID)
		go m.Unregister(client)
		return false
	}
}
