package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, userID string) *Client {
	c := &Client{
		UserID:  userID,
		manager: m,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
	m.addClient(c)
	return c
}

func drainOne(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	default:
		t.Fatalf("expected an event for %s, got none", c.UserID)
		return Event{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected frame for %s: %s", c.UserID, data)
	default:
	}
}

func TestSendToUserOnlyReachesThatUser(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")
	bob := newTestClient(m, "bob")

	delivered := m.SendToUser("alice", Event{Type: EventNotification})
	assert.True(t, delivered)
	assert.False(t, m.SendToUser("nobody", Event{Type: EventNotification}))

	event := drainOne(t, alice)
	assert.Equal(t, EventNotification, event.Type)
	assertNoFrame(t, bob)
}

func TestBroadcastToRoomExcludesSender(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")
	bob := newTestClient(m, "bob")

	require.NoError(t, m.JoinRoom(context.Background(), alice, "chat-1"))
	require.NoError(t, m.JoinRoom(context.Background(), bob, "chat-1"))

	m.BroadcastToRoom("chat-1", Event{Type: EventNewMessage}, "alice")

	assertNoFrame(t, alice)
	event := drainOne(t, bob)
	assert.Equal(t, EventNewMessage, event.Type)
}

func TestJoiningAnotherRoomTearsDownTheFirst(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")
	bob := newTestClient(m, "bob")

	require.NoError(t, m.JoinRoom(context.Background(), alice, "chat-1"))
	require.NoError(t, m.JoinRoom(context.Background(), bob, "chat-1"))

	// Bob switches conversations.
	require.NoError(t, m.JoinRoom(context.Background(), bob, "chat-2"))
	assert.False(t, m.IsInRoom("bob", "chat-1"))
	assert.True(t, m.IsInRoom("bob", "chat-2"))

	// Frames for the old conversation no longer reach him.
	m.BroadcastToRoom("chat-1", Event{Type: EventNewMessage}, "alice")
	assertNoFrame(t, bob)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")
	bob := newTestClient(m, "bob")

	require.NoError(t, m.JoinRoom(context.Background(), alice, "chat-1"))
	require.NoError(t, m.JoinRoom(context.Background(), bob, "chat-1"))

	m.LeaveRoom(bob)
	m.BroadcastToRoom("chat-1", Event{Type: EventNewMessage}, "alice")
	assertNoFrame(t, bob)

	// Direct events still arrive; leaving a room is not disconnecting.
	assert.True(t, m.SendToUser("bob", Event{Type: EventChatListUpdate}))
}

type denyAll struct{}

func (denyAll) CanAccessChat(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func TestJoinRoomHonorsAuthorizer(t *testing.T) {
	m := NewManager()
	m.SetAuthorizer(denyAll{})
	alice := newTestClient(m, "alice")

	require.NoError(t, m.JoinRoom(context.Background(), alice, "chat-1"))
	assert.False(t, m.IsInRoom("alice", "chat-1"))
}

func TestDisconnectLeavesRoom(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")

	require.NoError(t, m.JoinRoom(context.Background(), alice, "chat-1"))
	m.removeClient(alice)

	assert.False(t, m.IsInRoom("alice", "chat-1"))
	assert.False(t, m.SendToUser("alice", Event{Type: EventNotification}))
}

func TestDeliverToDetachedClientDoesNotPanic(t *testing.T) {
	m := NewManager()
	alice := newTestClient(m, "alice")

	// A notification goroutine can capture the client just before the
	// disconnect lands; the late deliver must drop the frame, not blow
	// up the process.
	m.removeClient(alice)

	assert.NotPanics(t, func() {
		assert.False(t, m.deliver(alice, Event{Type: EventNotification}))
	})
	assertNoFrame(t, alice)
}

func TestReplacedConnectionIsDetached(t *testing.T) {
	m := NewManager()
	stale := newTestClient(m, "alice")
	fresh := newTestClient(m, "alice")

	assert.False(t, m.deliver(stale, Event{Type: EventNotification}))
	assert.True(t, m.SendToUser("alice", Event{Type: EventNotification}))
	drainOne(t, fresh)
}
