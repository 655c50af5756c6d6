package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitTimeout = 2 * time.Second
	waitTick    = 10 * time.Millisecond
)

func newTestClient(hub *Hub) *Client {
	// No pumps are started: tests read from Send directly.
	return NewClient(hub, nil)
}

func drain(t *testing.T, c *Client) []Event {
	t.Helper()
	events := []Event{}
	for {
		select {
		case raw := <-c.Send:
			var event Event
			require.NoError(t, json.Unmarshal(raw, &event))
			events = append(events, event)
		default:
			return events
		}
	}
}

func register(h *Hub, c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func TestJoinRoomIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	register(hub, client)

	hub.JoinRoom(client, 7)
	hub.JoinRoom(client, 7)
	require.Equal(t, 1, hub.RoomSize(7))

	hub.BroadcastToRoom(7, Event{Type: EventScoreUpdate})
	events := drain(t, client)
	assert.Len(t, events, 1, "duplicate join must not cause duplicate delivery")
}

func TestBroadcastToRoomTargetsOnlyMembers(t *testing.T) {
	hub := NewHub()
	member := newTestClient(hub)
	outsider := newTestClient(hub)
	register(hub, member)
	register(hub, outsider)

	hub.JoinRoom(member, 3)
	hub.JoinRoom(outsider, 4)

	hub.BroadcastToRoom(3, Event{Type: EventScoreUpdate})

	assert.Len(t, drain(t, member), 1)
	assert.Empty(t, drain(t, outsider), "observer must not receive updates for matches it has not joined")
}

func TestBroadcastAllReachesEveryClient(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	register(hub, a)
	register(hub, b)
	hub.JoinRoom(a, 1)

	hub.BroadcastAll(Event{Type: EventMatchUpdate})

	assert.Len(t, drain(t, a), 1)
	assert.Len(t, drain(t, b), 1)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	register(hub, client)

	hub.JoinRoom(client, 9)
	hub.LeaveRoom(client, 9)
	require.Equal(t, 0, hub.RoomSize(9))

	// Leaving a room never joined is safe.
	hub.LeaveRoom(client, 42)

	hub.BroadcastToRoom(9, Event{Type: EventScoreUpdate})
	assert.Empty(t, drain(t, client))
}

func TestUnregisterTearsDownAllMemberships(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	hub.Register <- client
	hub.JoinRoom(client, 1)
	hub.JoinRoom(client, 2)

	hub.Unregister <- client

	require.Eventuallyf(t, func() bool {
		return hub.ClientCount() == 0 && hub.RoomSize(1) == 0 && hub.RoomSize(2) == 0
	}, waitTimeout, waitTick, "disconnect must remove the client from every room")

	// Send is closed; enqueue reports failure instead of panicking.
	assert.False(t, client.enqueue([]byte("{}")))
}

func TestPerMatchDeliveryOrder(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	register(hub, client)
	hub.JoinRoom(client, 5)

	for i := 0; i < 10; i++ {
		hub.BroadcastToRoom(5, Event{Type: EventScoreUpdate, Payload: i})
	}

	events := drain(t, client)
	require.Len(t, events, 10)
	for i, event := range events {
		assert.EqualValues(t, i, event.Payload.(float64))
	}
}

func TestFullSendBufferIsSkippedNotBlocking(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub)
	slow.Send = make(chan []byte, 1)
	healthy := newTestClient(hub)
	register(hub, slow)
	register(hub, healthy)
	hub.JoinRoom(slow, 6)
	hub.JoinRoom(healthy, 6)

	hub.BroadcastToRoom(6, Event{Type: EventScoreUpdate, Payload: 1})
	hub.BroadcastToRoom(6, Event{Type: EventScoreUpdate, Payload: 2})

	assert.Len(t, drain(t, slow), 1, "overflow for one observer is dropped")
	assert.Len(t, drain(t, healthy), 2, "other observers still get every event")
}

func TestParseMatchIDAcceptsNumberAndString(t *testing.T) {
	id, err := parseMatchID(json.RawMessage(`12`))
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	id, err = parseMatchID(json.RawMessage(`"34"`))
	require.NoError(t, err)
	assert.Equal(t, 34, id)

	_, err = parseMatchID(json.RawMessage(`{"bad":true}`))
	assert.Error(t, err)
}
