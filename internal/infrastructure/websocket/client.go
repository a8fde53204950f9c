package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sokoni/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type Client struct {
	UserID     string
	conn       *websocket.Conn
	manager    *Manager
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	activeRoom string
}

// inboundMessage is what clients send upstream: room subscription
// changes and typing indicators. Chat content goes over REST.
type inboundMessage struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id,omitempty"`
}

func NewClient(userID string, conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		UserID:  userID,
		conn:    conn,
		manager: manager,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

// shutdown signals the pumps and any in-flight deliver to stop. The
// send channel is never closed; detached senders may still hold a
// reference to it.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.manager.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("Ignoring malformed websocket message from %s", c.UserID)
			continue
		}
		c.handleInbound(ctx, msg)
	}
}

func (c *Client) handleInbound(ctx context.Context, msg inboundMessage) {
	switch msg.Type {
	case "join_chat_room":
		if msg.ChatID == "" {
			return
		}
		if err := c.manager.JoinRoom(ctx, c, msg.ChatID); err != nil {
			logger.Error("Failed to join chat room %s: %v", msg.ChatID, err)
		}
	case "leave_chat_room":
		c.manager.LeaveRoom(c)
	case "typing":
		if msg.ChatID != "" && c.manager.IsInRoom(c.UserID, msg.ChatID) {
			c.manager.BroadcastToRoom(msg.ChatID, Event{
				Type: EventTyping,
				Payload: map[string]string{
					"chat_id": msg.ChatID,
					"user_id": c.UserID,
				},
			}, c.UserID)
		}
	default:
		logger.Debug("Unknown websocket message type %q from %s", msg.Type, c.UserID)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
